package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductSearchFilter holds search and filter criteria for product queries
type ProductSearchFilter struct {
	Query     string   `json:"query,omitempty"`      // Full-text search across name, SKU, description
	Active    *bool    `json:"active,omitempty"`     // Filter by active flag
	MinPrice  *float64 `json:"min_price,omitempty"`  // Minimum unit price
	MaxPrice  *float64 `json:"max_price,omitempty"`  // Maximum unit price
	MinStock  *int     `json:"min_stock,omitempty"`  // Minimum stock count
	MaxStock  *int     `json:"max_stock,omitempty"`  // Maximum stock count
	SortBy    string   `json:"sort_by,omitempty"`    // Sort field: name, created_at, stock, unit_price
	SortOrder string   `json:"sort_order,omitempty"` // Sort order: asc, desc
	Limit     int      `json:"limit,omitempty"`      // Page size (default: 50)
	Offset    int      `json:"offset,omitempty"`     // Page offset
}

type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	SKU         string    `json:"sku" db:"sku"`
	Description *string   `json:"description" db:"description"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price"`
	Stock       int       `json:"stock" db:"stock"`
	MinStock    int       `json:"min_stock" db:"min_stock"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsLowStock reports whether the product is at or below its reorder threshold.
// min_stock is a reporting threshold only; zero is the hard floor enforced by sales.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
