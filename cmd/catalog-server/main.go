// Package main is the entry point for the catalog server: an in-memory
// user and product management API. All state lives for the lifetime of the
// process and starts empty, optionally pre-seeded with fixture entities.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rrivasl/catalog/internal/config"
	"github.com/rrivasl/catalog/internal/handler"
	"github.com/rrivasl/catalog/internal/seed"
	"github.com/rrivasl/catalog/internal/service"
	"github.com/rrivasl/catalog/internal/validation"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg.Logging)
	logger.Info().
		Str("version", Version).
		Str("git_commit", GitCommit).
		Msg("starting catalog server")

	validator, err := validation.NewEngine(cfg.Validation.PhonePattern)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build validation engine")
	}

	users := service.NewUserService(validator, logger)
	products := service.NewProductService(validator, logger)

	if cfg.Seed.Enabled {
		if err := seed.Users(users, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed users")
		}
		if err := seed.Products(products, cfg.Seed.Products, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed products")
		}
	}

	router := handler.NewRouter(handler.RouterConfig{
		UserHandler:    handler.NewUserHandler(users, logger),
		ProductHandler: handler.NewProductHandler(products, cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize, logger),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
}

// newLogger builds the root logger from the logging configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
