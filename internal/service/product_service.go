package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/rrivasl/catalog/internal/domain"
	"github.com/rrivasl/catalog/internal/metrics"
	"github.com/rrivasl/catalog/internal/store"
	"github.com/rrivasl/catalog/internal/validation"
)

// productIndexCode is the uniqueness index over the product code.
const productIndexCode = "code"

// ProductService manages the product catalog.
type ProductService struct {
	store     *store.Store[domain.Product]
	validator *validation.Engine
	logger    zerolog.Logger
}

// NewProductService creates a ProductService with an empty backing store.
func NewProductService(validator *validation.Engine, logger zerolog.Logger) *ProductService {
	st := store.New(store.Options[domain.Product]{
		ID:    func(p *domain.Product) int64 { return p.ID },
		SetID: func(p *domain.Product, id int64) { p.ID = id },
		Indexes: []store.Index[domain.Product]{
			{Name: productIndexCode, Key: func(p *domain.Product) string { return p.Code }},
		},
	})
	return &ProductService{
		store:     st,
		validator: validator,
		logger:    logger.With().Str("service", "product").Logger(),
	}
}

// Create validates the product, enforces code uniqueness and stores it.
// Returns the stored product including its assigned identifier. A failed
// create leaves the catalog untouched.
func (s *ProductService) Create(product *domain.Product) (*domain.Product, error) {
	violations := s.validator.Product(validation.ProductFields{
		Name:  product.Name,
		Code:  product.Code,
		Price: product.Price,
		Stock: product.Stock,
	})
	if len(violations) > 0 {
		metrics.CatalogOperations.WithLabelValues("create", "product", "validation_failed").Inc()
		return nil, domain.NewValidationError(violations)
	}

	if _, found, _ := s.store.FindByIndex(productIndexCode, product.Code); found {
		metrics.CatalogOperations.WithLabelValues("create", "product", "duplicate").Inc()
		return nil, domain.NewDuplicateValueError(domain.ErrDuplicateProductCode, product.Code)
	}

	created, err := s.store.Insert(product)
	if err != nil {
		return nil, mapProductStoreError(err)
	}

	metrics.CatalogOperations.WithLabelValues("create", "product", "ok").Inc()
	metrics.EntityCount.WithLabelValues("product").Set(float64(s.store.Count()))

	s.logger.Info().
		Int64("product_id", created.ID).
		Str("code", created.Code).
		Msg("product created")

	return created, nil
}

// FindByID retrieves a product by identifier.
func (s *ProductService) FindByID(id int64) (*domain.Product, error) {
	product, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// FindByCode retrieves a product by its exact code.
func (s *ProductService) FindByCode(code string) (*domain.Product, error) {
	product, found, err := s.store.FindByIndex(productIndexCode, code)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// ListPaginated returns the page-th slice (zero-based) of size pageSize
// from the catalog in stored order. Pages past the end, as well as
// non-positive page sizes, yield an empty slice.
func (s *ProductService) ListPaginated(page, pageSize int) []*domain.Product {
	if page < 0 || pageSize <= 0 {
		return []*domain.Product{}
	}

	all := s.store.List()
	// Comparing against the last page index avoids overflowing
	// page*pageSize for huge page values.
	if len(all) == 0 || page > (len(all)-1)/pageSize {
		return []*domain.Product{}
	}
	start := page * pageSize
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// ListAll returns a snapshot of every product in insertion order.
func (s *ProductService) ListAll() []*domain.Product {
	return s.store.List()
}

// Update replaces all mutable fields of an existing product with the ones
// from product; the identifier is preserved. The new field values are
// validated like on create, and a changed code is re-checked for
// uniqueness.
func (s *ProductService) Update(id int64, product *domain.Product) (*domain.Product, error) {
	violations := s.validator.Product(validation.ProductFields{
		Name:  product.Name,
		Code:  product.Code,
		Price: product.Price,
		Stock: product.Stock,
	})
	if len(violations) > 0 {
		metrics.CatalogOperations.WithLabelValues("update", "product", "validation_failed").Inc()
		return nil, domain.NewValidationError(violations)
	}

	updated, err := s.store.Update(id, func(p *domain.Product) {
		p.Name = product.Name
		p.Description = product.Description
		p.Price = product.Price
		p.Category = product.Category
		p.Stock = product.Stock
		p.Code = product.Code
	})
	if err != nil {
		metrics.CatalogOperations.WithLabelValues("update", "product", "error").Inc()
		return nil, mapProductStoreError(err)
	}

	metrics.CatalogOperations.WithLabelValues("update", "product", "ok").Inc()

	s.logger.Info().
		Int64("product_id", updated.ID).
		Msg("product updated")

	return updated, nil
}

// AdjustStock adds delta (which may be negative) to the stored stock
// count. An adjustment that would drive the stock below zero fails with
// ErrNegativeStock and leaves the product unchanged.
func (s *ProductService) AdjustStock(id int64, delta int) (*domain.Product, error) {
	// The check runs inside the mutator so it sees the stock value that is
	// actually committed, not a stale snapshot.
	var adjustErr error
	updated, err := s.store.Update(id, func(p *domain.Product) {
		if p.Stock+delta < 0 {
			adjustErr = domain.ErrNegativeStock
			return
		}
		p.Stock += delta
	})
	if err != nil {
		return nil, mapProductStoreError(err)
	}
	if adjustErr != nil {
		return nil, adjustErr
	}

	metrics.CatalogOperations.WithLabelValues("adjust_stock", "product", "ok").Inc()

	s.logger.Info().
		Int64("product_id", updated.ID).
		Int("stock", updated.Stock).
		Msg("product stock adjusted")

	return updated, nil
}

// Delete removes the product from the catalog immediately. There is no
// soft-delete flag for products: a deleted product is gone and its code
// becomes available again.
func (s *ProductService) Delete(id int64) error {
	if err := s.store.Remove(id); err != nil {
		return mapProductStoreError(err)
	}

	metrics.CatalogOperations.WithLabelValues("delete", "product", "ok").Inc()
	metrics.EntityCount.WithLabelValues("product").Set(float64(s.store.Count()))

	s.logger.Info().
		Int64("product_id", id).
		Msg("product deleted")

	return nil
}

// Count returns the number of products in the catalog.
func (s *ProductService) Count() int {
	return s.store.Count()
}

// mapProductStoreError translates store-level errors into the product
// catalog's error taxonomy, carrying the colliding code on duplicates.
func mapProductStoreError(err error) error {
	var dup *store.DuplicateKeyError
	if errors.As(err, &dup) && dup.Index == productIndexCode {
		return domain.NewDuplicateValueError(domain.ErrDuplicateProductCode, dup.Key)
	}
	if errors.Is(err, store.ErrNotFound) {
		return domain.ErrProductNotFound
	}
	return err
}
