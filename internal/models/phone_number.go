package models

import "regexp"

const phoneDigits = 10

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// PhoneNumber is a validated 10-digit phone number.
type PhoneNumber struct {
	value string
}

func NewPhoneNumber(raw string) (PhoneNumber, error) {
	if !phonePattern.MatchString(raw) {
		return PhoneNumber{}, validationError("phone", "Phone number must contain exactly 10 digits.")
	}
	return PhoneNumber{value: raw}, nil
}

func (p PhoneNumber) String() string {
	return p.value
}
