package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint, e.g. a second customer with the same phone number.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is the data-integrity violation: the entity is missing
	// a required field or breaks a storage constraint. Check the wrapped
	// error for details.
	ErrInvalidEntity = errors.New("data integrity violation")

	// ErrCustomerNotFound indicates that the requested customer does not exist.
	ErrCustomerNotFound = fmt.Errorf("%w: customer", ErrNotFound)

	// ErrPaymentNotFound indicates that the requested payment does not exist.
	ErrPaymentNotFound = fmt.Errorf("%w: payment", ErrNotFound)

	// ErrPhoneNumberExists indicates that a customer with the phone number
	// is already stored.
	ErrPhoneNumberExists = fmt.Errorf("%w: phone number", ErrDuplicate)

	// ErrCustomerIDExists indicates that a customer with the id is already
	// stored. Customer records are insert-only.
	ErrCustomerIDExists = fmt.Errorf("%w: customer id", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "customer", "payment")
	Operation string // The operation that failed (e.g., "save", "get")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NotNullViolation builds the data-integrity error for a missing required field.
func NotNullViolation(entity, field string) error {
	return NewStoreError(
		entity,
		"save",
		fmt.Sprintf("not-null property references a null value: %s.%s", entity, field),
		ErrInvalidEntity,
	)
}

// InvalidEntity wraps an entity-level validation failure as a data-integrity
// violation, keeping the cause reachable through errors.Is.
func InvalidEntity(entity string, cause error) error {
	return NewStoreError(entity, "save", "validation failed", fmt.Errorf("%w: %w", ErrInvalidEntity, cause))
}
