package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
)

// CustomerStore defines the interface for customer data persistence.
// The store exclusively owns durable customer records.
type CustomerStore interface {
	// GetByPhoneNumber retrieves the customer registered under phoneNumber.
	// Returns ErrCustomerNotFound if no customer uses the number.
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Customer, error)

	// GetByID retrieves a customer by their unique ID.
	// Returns ErrCustomerNotFound if the customer does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)

	// Save persists a customer. The customer must already carry an ID.
	// Returns ErrInvalidEntity if the name or phone number is missing.
	// Returns ErrPhoneNumberExists if another customer holds the phone number.
	Save(ctx context.Context, customer *domain.Customer) error
}
