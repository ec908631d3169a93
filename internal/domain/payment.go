package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Validation errors for Payment
var (
	ErrNonPositiveAmount  = fmt.Errorf("%w: payment amount must be greater than zero", ErrValidation)
	ErrAmountPrecision    = fmt.Errorf("%w: payment amount has too many decimal places", ErrValidation)
	ErrEmptyCurrency      = fmt.Errorf("%w: payment currency cannot be empty", ErrValidation)
	ErrEmptySource        = fmt.Errorf("%w: payment source cannot be empty", ErrValidation)
	ErrEmptyPaymentCustID = fmt.Errorf("%w: payment customer ID cannot be empty", ErrValidation)
)

// Payment is a card charge recorded for a customer. It is only stored after
// the card charge gateway has confirmed the charge.
type Payment struct {
	ID          uuid.UUID       `json:"paymentId"`
	CustomerID  uuid.UUID       `json:"customerId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	Source      string          `json:"source"`
	Description string          `json:"description"`
}

// Validate checks the payment fields a caller must supply: a positive amount
// with no more precision than the currency allows, a currency and a source.
// The customer ID is not checked here because the payment service attaches it.
func (p *Payment) Validate() error {
	if !p.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	if p.Currency == "" {
		return ErrEmptyCurrency
	}

	if !p.Amount.Equal(p.Amount.Truncate(p.Currency.MinorUnits())) {
		return ErrAmountPrecision
	}

	if p.Source == "" {
		return ErrEmptySource
	}

	return nil
}

// ValidateForStorage checks everything Validate does plus the owning customer.
func (p *Payment) ValidateForStorage() error {
	if p.CustomerID == uuid.Nil {
		return ErrEmptyPaymentCustID
	}

	return p.Validate()
}

// WithCustomer returns a copy of the payment owned by customerID.
func (p Payment) WithCustomer(customerID uuid.UUID) *Payment {
	p.CustomerID = customerID
	return &p
}

// CardCharge is the outcome of a single charge attempt at the gateway.
type CardCharge struct {
	Success bool
}
