package service

import (
	"fmt"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrivasl/catalog/internal/domain"
	"github.com/rrivasl/catalog/internal/validation"
)

func newProductService(t *testing.T) *ProductService {
	t.Helper()
	validator, err := validation.NewEngine("")
	require.NoError(t, err)
	return NewProductService(validator, zerolog.Nop())
}

func sampleProduct(code string) *domain.Product {
	return domain.NewProductBuilder().
		Name("Sample product").
		Description("A sample product").
		Price(100.00).
		Category("CATEGORY_1").
		Stock(10).
		Code(code).
		Build()
}

func createProducts(t *testing.T, svc *ProductService, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := svc.Create(sampleProduct(fmt.Sprintf("PROD-%03d", i)))
		require.NoError(t, err)
	}
}

func TestProductService_Create(t *testing.T) {
	svc := newProductService(t)

	created, err := svc.Create(sampleProduct("PROD-001"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, created.ID)

	got, err := svc.FindByCode("PROD-001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 100.00, got.Price)
	assert.Equal(t, 10, got.Stock)
}

func TestProductService_CreateValidationFailed(t *testing.T) {
	svc := newProductService(t)

	p := sampleProduct("PROD-001")
	p.Name = ""
	p.Price = 0
	_, err := svc.Create(p)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{
		"product name is required",
		"price must be greater than zero",
	}, ve.Violations)

	assert.Zero(t, svc.Count())
}

func TestProductService_CreateDuplicateCode(t *testing.T) {
	svc := newProductService(t)

	original, err := svc.Create(sampleProduct("PROD-001"))
	require.NoError(t, err)

	dup := sampleProduct("PROD-001")
	dup.Name = "Another product"
	_, err = svc.Create(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateProductCode)

	// The error names the colliding code.
	var dve *domain.DuplicateValueError
	require.ErrorAs(t, err, &dve)
	assert.Equal(t, "PROD-001", dve.Value)

	// The original is unchanged and still the only product.
	assert.Equal(t, 1, svc.Count())
	got, err := svc.FindByCode("PROD-001")
	require.NoError(t, err)
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, "Sample product", got.Name)
}

func TestProductService_ListPaginated(t *testing.T) {
	svc := newProductService(t)
	createProducts(t, svc, 25)

	tests := []struct {
		name     string
		page     int
		size     int
		wantLen  int
		wantCode string // code of the first item, when any
	}{
		{"first page", 0, 10, 10, "PROD-001"},
		{"middle page", 1, 10, 10, "PROD-011"},
		{"short last page", 2, 10, 5, "PROD-021"},
		{"past the end", 3, 10, 0, ""},
		{"far past the end", 100, 10, 0, ""},
		{"exact boundary", 5, 5, 0, ""},
		{"whole catalog in one page", 0, 100, 25, "PROD-001"},
		{"negative page", -1, 10, 0, ""},
		{"zero size", 0, 0, 0, ""},
		{"huge page index", 1 << 62, 4, 0, ""},
		{"page times size overflows", 1 << 61, 4, 0, ""},
		{"max page index", math.MaxInt, 10, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.ListPaginated(tt.page, tt.size)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantCode, got[0].Code)
			}
		})
	}
}

func TestProductService_ListPaginatedEmptyCatalog(t *testing.T) {
	svc := newProductService(t)

	assert.Empty(t, svc.ListPaginated(0, 10))
	assert.Empty(t, svc.ListPaginated(1<<62, 10))

	// A single product must never surface on a page index whose start
	// offset wraps around.
	_, err := svc.Create(sampleProduct("PROD-001"))
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		assert.Empty(t, svc.ListPaginated(1<<61, 4))
		assert.Empty(t, svc.ListPaginated(1<<62, 4))
	})
}

func TestProductService_PaginationReconstructsThatCatalog(t *testing.T) {
	svc := newProductService(t)
	createProducts(t, svc, 25)

	var paged []*domain.Product
	for page := 0; ; page++ {
		chunk := svc.ListPaginated(page, 10)
		if len(chunk) == 0 {
			break
		}
		assert.LessOrEqual(t, len(chunk), 10)
		paged = append(paged, chunk...)
	}

	all := svc.ListAll()
	require.Len(t, paged, len(all))
	for i := range all {
		assert.Equal(t, all[i].ID, paged[i].ID)
	}
}

func TestProductService_Update(t *testing.T) {
	svc := newProductService(t)

	created, err := svc.Create(sampleProduct("PROD-001"))
	require.NoError(t, err)

	replacement := domain.NewProductBuilder().
		Name("Renamed product").
		Description("New description").
		Price(250.50).
		Category("CATEGORY_2").
		Stock(3).
		Code("PROD-XXL").
		Build()

	updated, err := svc.Update(created.ID, replacement)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID, "identifier must be preserved")
	assert.Equal(t, "Renamed product", updated.Name)
	assert.Equal(t, 250.50, updated.Price)
	assert.Equal(t, "PROD-XXL", updated.Code)

	// The old code was released.
	_, err = svc.FindByCode("PROD-001")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductService_UpdateNotFound(t *testing.T) {
	svc := newProductService(t)
	_, err := svc.Update(42, sampleProduct("PROD-001"))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductService_UpdateDuplicateCode(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.Create(sampleProduct("PROD-001"))
	require.NoError(t, err)
	second, err := svc.Create(sampleProduct("PROD-002"))
	require.NoError(t, err)

	_, err = svc.Update(second.ID, sampleProduct("PROD-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicateProductCode)

	// Nothing committed.
	got, err := svc.FindByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, "PROD-002", got.Code)
}

func TestProductService_AdjustStock(t *testing.T) {
	svc := newProductService(t)

	created, err := svc.Create(sampleProduct("PROD-001"))
	require.NoError(t, err)

	updated, err := svc.AdjustStock(created.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Stock)

	updated, err = svc.AdjustStock(created.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 16, updated.Stock)

	// Draining to exactly zero is allowed.
	updated, err = svc.AdjustStock(created.ID, -16)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)

	// Going below zero is not, and leaves the stock untouched.
	_, err = svc.AdjustStock(created.ID, -1)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	got, err := svc.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	_, err = svc.AdjustStock(999, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductService_Delete(t *testing.T) {
	svc := newProductService(t)

	created, err := svc.Create(sampleProduct("PROD-001"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))
	assert.Zero(t, svc.Count())

	_, err = svc.FindByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// The code is free again after a hard delete.
	_, err = svc.Create(sampleProduct("PROD-001"))
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(999), domain.ErrProductNotFound)
}

func TestProductService_ListAllInsertionOrder(t *testing.T) {
	svc := newProductService(t)
	createProducts(t, svc, 5)

	all := svc.ListAll()
	require.Len(t, all, 5)
	for i, p := range all {
		assert.Equal(t, fmt.Sprintf("PROD-%03d", i+1), p.Code)
	}
}
