package service

import (
	"errors"
	"fmt"
)

// Business rule errors. Every *RuleError returned by a service unwraps to one
// of these, so callers use errors.Is to branch on the kind of failure.
// The API layer maps each of them to an HTTP status code.
var (
	// ErrInvalidPhoneNumber indicates that the phone number policy rejected
	// the number. API layer should map this to HTTP 400 Bad Request.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")

	// ErrPhoneNumberTaken indicates that the phone number is registered under
	// a different name. API layer should map this to HTTP 409 Conflict.
	ErrPhoneNumberTaken = errors.New("phone number already taken")

	// ErrCustomerIDTaken indicates that a new customer was submitted with the
	// ID of an existing one. API layer should map this to HTTP 409 Conflict.
	ErrCustomerIDTaken = errors.New("customer id already taken")

	// ErrCustomerNotFound indicates that the referenced customer has no record.
	// API layer should map this to HTTP 404 Not Found.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrCurrencyNotSupported indicates that the payment currency is outside
	// the accepted set. API layer should map this to HTTP 422.
	ErrCurrencyNotSupported = errors.New("currency not supported")

	// ErrChargeDeclined indicates that the gateway did not approve the charge.
	// API layer should map this to HTTP 402 Payment Required.
	ErrChargeDeclined = errors.New("card not debited")

	// ErrPaymentNotFound indicates that the requested payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")
)

// RuleError reports a business rule violation for a specific input value.
type RuleError struct {
	// Kind is the sentinel describing the violated rule.
	Kind error
	// Value is the offending input (phone number, customer id or currency).
	Value string
	// Message is the human-readable description returned to the caller.
	Message string
}

// Error implements the error interface for RuleError.
func (e *RuleError) Error() string {
	return e.Message
}

// Unwrap returns the rule sentinel to support errors.Is/errors.As.
func (e *RuleError) Unwrap() error {
	return e.Kind
}

func invalidPhoneNumber(phone string) error {
	return &RuleError{
		Kind:    ErrInvalidPhoneNumber,
		Value:   phone,
		Message: fmt.Sprintf("Phone Number %s is not valid", phone),
	}
}

func phoneNumberTaken(phone string) error {
	return &RuleError{
		Kind:    ErrPhoneNumberTaken,
		Value:   phone,
		Message: fmt.Sprintf("phone number [%s] is already taken", phone),
	}
}

func customerIDTaken(id string) error {
	return &RuleError{
		Kind:    ErrCustomerIDTaken,
		Value:   id,
		Message: fmt.Sprintf("Customer with id [%s] already exists", id),
	}
}

func customerNotFound(id string) error {
	return &RuleError{
		Kind:    ErrCustomerNotFound,
		Value:   id,
		Message: fmt.Sprintf("Customer with id [%s] not found", id),
	}
}

func currencyNotSupported(currency string) error {
	return &RuleError{
		Kind:    ErrCurrencyNotSupported,
		Value:   currency,
		Message: fmt.Sprintf("Currency[%s] not supported", currency),
	}
}

func chargeDeclined(customerID string) error {
	return &RuleError{
		Kind:    ErrChargeDeclined,
		Value:   customerID,
		Message: fmt.Sprintf("Card not debited for customer %s", customerID),
	}
}

// ServiceError wraps unexpected collaborator failures with the operation that
// was running when they happened.
type ServiceError struct {
	// Service is the service that failed (e.g., "customer_registration", "payment")
	Service string
	// Operation is the operation that failed (e.g., "register", "charge_card")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError. Rule errors are returned
// unchanged so their message reaches the caller intact.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return err
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
