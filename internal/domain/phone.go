package domain

// MaxPhoneNumberLength is the longest accepted phone number, including the
// leading plus sign.
const MaxPhoneNumberLength = 13

// PhoneNumberValidator decides whether a phone number is acceptable.
// Implementations must be pure and never panic on malformed input.
type PhoneNumberValidator func(candidate string) bool

// ValidPhoneNumber reports whether candidate is a plus sign followed only by
// digits, with a total length of at most MaxPhoneNumberLength.
func ValidPhoneNumber(candidate string) bool {
	if len(candidate) < 2 || len(candidate) > MaxPhoneNumberLength {
		return false
	}

	if candidate[0] != '+' {
		return false
	}

	for i := 1; i < len(candidate); i++ {
		if candidate[i] < '0' || candidate[i] > '9' {
			return false
		}
	}

	return true
}
