package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/paycore-api/internal/domain"
)

// PaymentStore defines the interface for payment data persistence.
type PaymentStore interface {
	// GetByID retrieves a payment by its unique ID.
	// Returns ErrPaymentNotFound if the payment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// Save persists a payment, assigning a new ID when payment.ID is uuid.Nil.
	// Returns ErrInvalidEntity if the customer ID, amount, currency or
	// source is missing.
	Save(ctx context.Context, payment *domain.Payment) error
}
