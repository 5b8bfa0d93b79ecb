package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale statuses
const (
	SaleStatusPending   = "pending"
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
	SaleStatusRefunded  = "refunded"
)

// Payment methods
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
	PaymentMethodOther    = "other"
)

// SaleSearchFilter holds search and filter criteria for sale queries.
// All fields are optional; zero values mean "not filtered".
type SaleSearchFilter struct {
	Query         string     `json:"query,omitempty"`          // Full-text search across customer name/email and sale notes
	Status        *string    `json:"status,omitempty"`         // Status filter (pending, completed, cancelled, refunded)
	PaymentMethod *string    `json:"payment_method,omitempty"` // Payment method filter (cash, card, transfer, other)
	DateFrom      *time.Time `json:"date_from,omitempty"`      // Sale date from
	DateTo        *time.Time `json:"date_to,omitempty"`        // Sale date to
	MinAmount     *float64   `json:"min_amount,omitempty"`     // Minimum sale amount
	MaxAmount     *float64   `json:"max_amount,omitempty"`     // Maximum sale amount
	Page          int        `json:"page,omitempty"`           // Page number (1-based, default: 1)
	Limit         int        `json:"limit,omitempty"`          // Page size (default: 10)
}

// SalePage is one page of sale listing results with pagination metadata
type SalePage struct {
	Sales      []*Sale `json:"sales"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

// SaleStats aggregates sales over a date range
type SaleStats struct {
	TotalSales      int            `json:"total_sales"`
	TotalRevenue    float64        `json:"total_revenue"`
	AverageSale     float64        `json:"average_sale"`
	ByStatus        map[string]int `json:"by_status"`
	ByPaymentMethod map[string]int `json:"by_payment_method"`
	DateFrom        time.Time      `json:"date_from"`
	DateTo          time.Time      `json:"date_to"`
}

type Sale struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	CustomerID    uuid.UUID   `json:"customer_id" db:"customer_id"`
	Customer      *Customer   `json:"customer,omitempty"`
	Amount        float64     `json:"amount" db:"amount"`
	SaleDate      time.Time   `json:"sale_date" db:"sale_date"`
	Status        string      `json:"status" db:"status"`
	PaymentMethod string      `json:"payment_method" db:"payment_method"`
	Notes         *string     `json:"notes" db:"notes"`
	Items         []*SaleItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// SaleItem is one product line within a sale. Unit and total price are
// captured at the time of sale and never recomputed afterwards, so
// historical sales are insulated from later price changes.
type SaleItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	SaleID     uuid.UUID `json:"sale_id" db:"sale_id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
	Product    *Product  `json:"product,omitempty"`
	Quantity   int       `json:"quantity" db:"quantity"`
	UnitPrice  float64   `json:"unit_price" db:"unit_price"`
	TotalPrice float64   `json:"total_price" db:"total_price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ValidSaleStatus reports whether s is a known sale status
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled, SaleStatusRefunded:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a known payment method
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}
