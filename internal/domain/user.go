package domain

import (
	"fmt"
	"time"
	"unicode"
)

// User is a registered farmer account. Phone is the login identifier.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	phoneDigits       = 10
	passwordMinLength = 6
)

// ValidatePhone accepts exactly ten digits, the common Indian mobile format
// without a country prefix.
func ValidatePhone(phone string) error {
	if len(phone) != phoneDigits {
		return fmt.Errorf("%w: phone number must be %d digits", ErrInvalidQuery, phoneDigits)
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%w: phone number must contain only digits", ErrInvalidQuery)
		}
	}
	return nil
}

// ValidatePassword enforces the minimum length.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidQuery, passwordMinLength)
	}
	return nil
}
