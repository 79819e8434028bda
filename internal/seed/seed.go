// Package seed creates the fixture entities the catalog starts with when
// seeding is enabled. The fixtures match the acceptance-test expectations
// of the system this replaces: a known admin account, a second account for
// duplicate-key scenarios, and an optional batch of sample products.
package seed

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rrivasl/catalog/internal/domain"
	"github.com/rrivasl/catalog/internal/service"
)

// Users creates the two fixture accounts. Safe to call on a non-empty
// catalog: existing usernames and emails are left alone.
func Users(users *service.UserService, logger zerolog.Logger) error {
	fixtures := []service.CreateUserInput{
		{
			Username:  "rrivasl",
			FirstName: "Roberto",
			LastName:  "Rivas López",
			Email:     "rrivasl@test.com",
			Password:  "MiClave123!",
		},
		{
			Username:  "existente",
			FirstName: "Usuario",
			LastName:  "Existente",
			Email:     "existente@test.com",
			Password:  "Password123!",
		},
	}

	for _, f := range fixtures {
		if users.ExistsByUsername(f.Username) || users.ExistsByEmail(f.Email) {
			continue
		}
		if _, err := users.Create(f); err != nil {
			return fmt.Errorf("seed user %q: %w", f.Username, err)
		}
	}

	logger.Info().Int("count", len(fixtures)).Msg("fixture users seeded")
	return nil
}

// Products creates n sample products with codes PROD-001 through PROD-n,
// rotating through three categories. Codes that already exist are skipped.
func Products(products *service.ProductService, n int, logger zerolog.Logger) error {
	created := 0
	for i := 1; i <= n; i++ {
		code := fmt.Sprintf("PROD-%03d", i)
		if _, err := products.FindByCode(code); err == nil {
			continue
		}

		p := domain.NewProductBuilder().
			Name(fmt.Sprintf("Product %d", i)).
			Description(fmt.Sprintf("Description of product %d", i)).
			Price(100.00).
			Category(fmt.Sprintf("CATEGORY_%d", i%3+1)).
			Stock(10).
			Code(code).
			Build()

		if _, err := products.Create(p); err != nil {
			return fmt.Errorf("seed product %q: %w", code, err)
		}
		created++
	}

	logger.Info().Int("count", created).Msg("fixture products seeded")
	return nil
}
