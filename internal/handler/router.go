package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterConfig contains everything the router needs.
type RouterConfig struct {
	UserHandler    *UserHandler
	ProductHandler *ProductHandler
	MetricsEnabled bool
	MetricsPath    string
	Logger         zerolog.Logger
}

// NewRouter assembles the HTTP routes for the catalog API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(RequestID)
	r.Use(Logging(cfg.Logger))
	r.Use(Metrics)

	r.Get("/health", handleHealth)
	if cfg.MetricsEnabled {
		r.Handle(cfg.MetricsPath, promhttp.Handler())
	}

	r.Route("/users", func(r chi.Router) {
		r.Post("/", cfg.UserHandler.Create)
		r.Get("/", cfg.UserHandler.List)
		r.Get("/{id}", cfg.UserHandler.GetByID)
		r.Put("/{id}", cfg.UserHandler.Update)
		r.Delete("/{id}", cfg.UserHandler.Deactivate)
		r.Get("/username/{username}", cfg.UserHandler.GetByUsername)
	})

	r.Post("/login", cfg.UserHandler.ValidateCredentials)

	r.Route("/products", func(r chi.Router) {
		r.Post("/", cfg.ProductHandler.Create)
		r.Get("/", cfg.ProductHandler.List)
		r.Get("/{id}", cfg.ProductHandler.GetByID)
		r.Put("/{id}", cfg.ProductHandler.Update)
		r.Delete("/{id}", cfg.ProductHandler.Delete)
		r.Patch("/{id}/stock", cfg.ProductHandler.AdjustStock)
		r.Get("/code/{code}", cfg.ProductHandler.GetByCode)
	})

	return r
}

// handleHealth handles health check requests.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
