package service

import "time"

// Outcome labels reported to the metrics recorders.
const (
	OutcomeRegistered        = "registered"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeInvalidPhone      = "invalid_phone"
	OutcomePhoneTaken        = "phone_taken"
	OutcomeIDTaken           = "id_taken"

	OutcomeApproved             = "approved"
	OutcomeDeclined             = "declined"
	OutcomeCustomerNotFound     = "customer_not_found"
	OutcomeCurrencyNotSupported = "currency_not_supported"
	OutcomeInvalidPayment       = "invalid_payment"

	OutcomeError = "error"
)

// RegistrationMetrics records the outcome of registration attempts.
type RegistrationMetrics interface {
	RegistrationCompleted(outcome string)
}

// PaymentMetrics records the outcome of charge attempts and gateway latency.
type PaymentMetrics interface {
	ChargeCompleted(outcome string, currency string)
	GatewayCallObserved(duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RegistrationCompleted(string) {}
func (noopMetrics) ChargeCompleted(string, string) {}
func (noopMetrics) GatewayCallObserved(time.Duration) {}
