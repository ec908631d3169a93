package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/service"
	"github.com/phrazzld/paycore-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrPhoneNumberTaken),
		errors.Is(err, service.ErrCustomerIDTaken),
		store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrInvalidPhoneNumber),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidCurrency):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrCurrencyNotSupported):
		return http.StatusUnprocessableEntity

	case errors.Is(err, service.ErrChargeDeclined):
		return http.StatusPaymentRequired

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Business rule messages only echo the caller's own
// input, so they are returned as-is.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var ruleErr *service.RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Message
	}

	switch {
	case errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, store.ErrPaymentNotFound):
		return "Payment not found"

	case errors.Is(err, store.ErrCustomerNotFound):
		return "Customer not found"

	case errors.Is(err, store.ErrPhoneNumberExists):
		return "Phone number already exists"

	case errors.Is(err, store.ErrCustomerIDExists):
		return "Customer id already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidCurrency):
		return "Invalid currency code"

	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid format"

	case errors.Is(err, domain.ErrValidation):
		return SanitizeValidationError(err)

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// validator output looks like:
	// "Key: 'PaymentPayload.Currency' Error:Field validation for 'Currency' failed on the 'len' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Domain validation errors carry a fixed description after the sentinel text.
	prefix := domain.ErrValidation.Error() + ": "
	if errors.Is(err, domain.ErrValidation) {
		if i := strings.LastIndex(errMsg, prefix); i >= 0 {
			return "Validation error: " + errMsg[i+len(prefix):]
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "uuid":
		return "invalid identifier format"
	case "len":
		return "invalid length"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
