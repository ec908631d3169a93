package api

import (
	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/shopspring/decimal"
)

// CustomerRegistrationBody is the payload for PUT /api/v1/customer-registration.
type CustomerRegistrationBody struct {
	Customer *CustomerPayload `json:"customer" validate:"required"`
}

// CustomerPayload carries the customer being registered. ID is optional.
type CustomerPayload struct {
	ID          string `json:"id,omitempty" validate:"omitempty,uuid"`
	Name        string `json:"name"         validate:"required,max=255"`
	PhoneNumber string `json:"phoneNumber"  validate:"required,max=32"`
}

// CustomerResponse is the registered customer, including its identity.
type CustomerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// PaymentBody is the payload for POST /api/v1/payment.
type PaymentBody struct {
	Payment *PaymentPayload `json:"payment" validate:"required"`
}

// PaymentPayload describes the card charge to perform. Amount accepts
// either a JSON string ("100.00") or a number.
type PaymentPayload struct {
	CustomerID  string          `json:"customerId"  validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"    validate:"required,len=3"`
	Source      string          `json:"source"      validate:"required,max=255"`
	Description string          `json:"description" validate:"max=1000"`
}

// PaymentResponse is a persisted payment. The card source token is never
// echoed back.
type PaymentResponse struct {
	PaymentID   string `json:"paymentId"`
	CustomerID  string `json:"customerId"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

func customerToResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
	}
}

func paymentToResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.ID.String(),
		CustomerID:  p.CustomerID.String(),
		Amount:      p.Amount.StringFixed(p.Currency.MinorUnits()),
		Currency:    p.Currency.String(),
		Description: p.Description,
	}
}
