package domain

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 alphabetic currency code.
type Currency string

// Known currency codes
const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
)

// ParseCurrency normalizes s to an upper-case three-letter code.
// Returns ErrInvalidCurrency if s is not three ASCII letters.
func ParseCurrency(s string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}

	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
		}
	}

	return Currency(code), nil
}

// MinorUnits returns the number of decimal places used by the currency.
// Every currency the service handles uses two.
func (c Currency) MinorUnits() int32 {
	return 2
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}
