// Package stripe implements the card charge gateway on top of the Stripe API.
//
// Charger performs one synchronous charge per call. Card declines reported by
// Stripe are an unsuccessful domain.CardCharge, not an error; every other API
// or transport failure is returned as an error. ApprovingCharger stands in for
// Stripe when no API key is configured.
package stripe
