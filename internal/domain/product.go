// Package domain contains the core business entities for the catalog service.
package domain

// Product represents an item in the product catalog.
type Product struct {
	// ID is the unique identifier for the product (assigned by the store,
	// immutable once set).
	ID int64 `json:"id"`

	// Name is the display name. Required.
	Name string `json:"name"`

	// Description is an optional free-form description.
	Description string `json:"description,omitempty"`

	// Price is the unit price. Must be strictly positive.
	Price float64 `json:"price"`

	// Category is an optional grouping label.
	Category string `json:"category,omitempty"`

	// Stock is the number of units on hand. Never negative.
	Stock int `json:"stock"`

	// Code is the unique product code (e.g. "PROD-001"). Required.
	Code string `json:"code"`
}

// ProductBuilder builds a Product field by field. It mirrors the
// construction idiom of the system this replaces; validation happens in
// the catalog, not here.
type ProductBuilder struct {
	p Product
}

// NewProductBuilder returns an empty builder.
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{}
}

// Name sets the display name.
func (b *ProductBuilder) Name(name string) *ProductBuilder {
	b.p.Name = name
	return b
}

// Description sets the description.
func (b *ProductBuilder) Description(description string) *ProductBuilder {
	b.p.Description = description
	return b
}

// Price sets the unit price.
func (b *ProductBuilder) Price(price float64) *ProductBuilder {
	b.p.Price = price
	return b
}

// Category sets the category label.
func (b *ProductBuilder) Category(category string) *ProductBuilder {
	b.p.Category = category
	return b
}

// Stock sets the stock count.
func (b *ProductBuilder) Stock(stock int) *ProductBuilder {
	b.p.Stock = stock
	return b
}

// Code sets the product code.
func (b *ProductBuilder) Code(code string) *ProductBuilder {
	b.p.Code = code
	return b
}

// Build returns the assembled product.
func (b *ProductBuilder) Build() *Product {
	p := b.p
	return &p
}
