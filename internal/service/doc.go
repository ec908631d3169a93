// Package service contains the business rules of customer onboarding and card
// payments. It orchestrates the domain types with the store interfaces
// (defined in internal/store) and the card charge gateway.
//
// Two services live here:
//
//   - CustomerRegistrationService admits or rejects a registration, using the
//     phone number as the deduplication key.
//   - PaymentService authorizes a card charge for an existing customer and
//     records the payment only after the gateway approves it.
//
// Services receive their collaborators through constructor injection and hold
// no mutable state of their own, so a single instance is safe for concurrent
// use. Rule violations are reported as *RuleError values that unwrap to the
// sentinel errors in errors.go; callers branch with errors.Is.
package service
