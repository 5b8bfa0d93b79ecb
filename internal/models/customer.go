package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerSearchFilter holds search and filter criteria for customer queries
type CustomerSearchFilter struct {
	Query  string `json:"query,omitempty"`  // Full-text search across name and email
	Active *bool  `json:"active,omitempty"` // Filter by active flag
	Limit  int    `json:"limit,omitempty"`  // Page size (default: 50)
	Offset int    `json:"offset,omitempty"` // Page offset
}

type Customer struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	FirstName string     `json:"first_name" db:"first_name"`
	LastName  string     `json:"last_name" db:"last_name"`
	Email     string     `json:"email" db:"email"`
	Phone     *string    `json:"phone" db:"phone"`
	Active    bool       `json:"active" db:"active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
