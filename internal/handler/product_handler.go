package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rrivasl/catalog/internal/domain"
	"github.com/rrivasl/catalog/internal/service"
)

// ProductHandler handles product management requests.
type ProductHandler struct {
	products        *service.ProductService
	defaultPageSize int
	maxPageSize     int
	logger          zerolog.Logger
}

// NewProductHandler creates a new ProductHandler. Page-size bounds come
// from configuration.
func NewProductHandler(products *service.ProductService, defaultPageSize, maxPageSize int, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products:        products,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		logger:          logger.With().Str("handler", "product").Logger(),
	}
}

// productRequest is the JSON body for creating or updating a product.
type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Code        string  `json:"code"`
}

func (req productRequest) toProduct() *domain.Product {
	return domain.NewProductBuilder().
		Name(req.Name).
		Description(req.Description).
		Price(req.Price).
		Category(req.Category).
		Stock(req.Stock).
		Code(req.Code).
		Build()
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.Create(req.toProduct())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// List handles GET /products with optional zero-based page and size query
// parameters. Without parameters the first page of the configured default
// size is returned; "all=true" returns the whole catalog.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if all, _ := strconv.ParseBool(q.Get("all")); all {
		writeJSON(w, http.StatusOK, h.products.ListAll())
		return
	}

	page := 0
	if raw := q.Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 0 {
			writeError(w, http.StatusBadRequest, "page must be a non-negative integer")
			return
		}
		page = p
	}

	size := h.defaultPageSize
	if raw := q.Get("size"); raw != "" {
		s, err := strconv.Atoi(raw)
		if err != nil || s < 1 {
			writeError(w, http.StatusBadRequest, "size must be a positive integer")
			return
		}
		size = s
	}
	if size > h.maxPageSize {
		size = h.maxPageSize
	}

	writeJSON(w, http.StatusOK, h.products.ListPaginated(page, size))
}

// GetByID handles GET /products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.products.FindByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// GetByCode handles GET /products/code/{code}.
func (h *ProductHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.FindByCode(chi.URLParam(r, "code"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Update handles PUT /products/{id}. All mutable fields are replaced.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.Update(id, req.toProduct())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// stockRequest is the JSON body for a stock adjustment.
type stockRequest struct {
	Delta int `json:"delta"`
}

// AdjustStock handles PATCH /products/{id}/stock.
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req stockRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.AdjustStock(id, req.Delta)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /products/{id}. Products are removed outright.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.products.Delete(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
