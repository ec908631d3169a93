package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Validation errors for Customer
var (
	ErrEmptyCustomerName = fmt.Errorf("%w: customer name cannot be empty", ErrValidation)
	ErrEmptyPhoneNumber  = fmt.Errorf("%w: customer phone number cannot be empty", ErrValidation)
)

// Customer is a registered customer. The phone number is the natural
// deduplication key: at most one customer is accepted per phone number.
// An ID of uuid.Nil means no identity has been assigned yet.
type Customer struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
}

// NewCustomer creates a Customer without an identity. The registration
// service assigns one when the customer is admitted.
func NewCustomer(name, phoneNumber string) *Customer {
	return &Customer{
		Name:        name,
		PhoneNumber: phoneNumber,
	}
}

// HasID reports whether an identity has been assigned.
func (c *Customer) HasID() bool {
	return c.ID != uuid.Nil
}

// Validate checks the fields required for a customer to be stored.
func (c *Customer) Validate() error {
	if c.Name == "" {
		return ErrEmptyCustomerName
	}

	if c.PhoneNumber == "" {
		return ErrEmptyPhoneNumber
	}

	return nil
}
