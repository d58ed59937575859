package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors collects validation failures keyed by field name
type FieldErrors map[string]string

// Add records the first reason reported for a field
func (f FieldErrors) Add(field, reason string) {
	if _, exists := f[field]; !exists {
		f[field] = reason
	}
}

// Check records err under field when it is not nil
func (f FieldErrors) Check(field string, err error) {
	if err != nil {
		f.Add(field, err.Error())
	}
}

// Err returns a ValidationFailed error carrying every field, or nil
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return NewFieldValidationError(f)
}

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositive checks if a number is positive
func ValidatePositive(value float64, fieldName string) error {
	if value <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateOneOf checks that value is one of the allowed options
func ValidateOneOf(value string, allowed []string, fieldName string) error {
	for _, option := range allowed {
		if value == option {
			return nil
		}
	}
	return NewValidationError(fmt.Sprintf("%s must be one of %s", fieldName, strings.Join(allowed, ", ")))
}

// ValidateName requires a non-empty name made of letters only
func ValidateName(name, fieldName string) error {
	if err := ValidateRequired(name, fieldName); err != nil {
		return err
	}
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsDigit(r):
			return NewValidationError(fmt.Sprintf("%s must not contain digits", fieldName))
		case unicode.IsLetter(r), unicode.IsSpace(r), unicode.Is(unicode.Mn, r), r == '\'', r == '-', r == '.':
		default:
			return NewValidationError(fmt.Sprintf("%s contains invalid characters", fieldName))
		}
	}
	return nil
}

// ValidateCPF checks an 11 digit national ID, masked or not
func ValidateCPF(value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError("national ID is required")
	}
	if !IsValidCPF(OnlyDigits(value)) {
		return NewValidationError("national ID is invalid")
	}
	return nil
}

// IsValidCPF runs the two check digit algorithm over an 11 digit string.
// Sequences of one repeated digit are rejected.
func IsValidCPF(digits string) bool {
	if len(digits) != 11 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	if strings.Count(digits, digits[:1]) == 11 {
		return false
	}

	return cpfCheckDigit(digits[:9], 10) == int(digits[9]-'0') &&
		cpfCheckDigit(digits[:10], 11) == int(digits[10]-'0')
}

// cpfCheckDigit weights the digits from startWeight down to 2
func cpfCheckDigit(digits string, startWeight int) int {
	sum := 0
	for i, r := range digits {
		sum += int(r-'0') * (startWeight - i)
	}
	remainder := (sum * 10) % 11
	if remainder == 10 {
		remainder = 0
	}
	return remainder
}

// ValidatePhone accepts 10 or 11 digits, masked or not
func ValidatePhone(value string) error {
	digits := OnlyDigits(value)
	if len(digits) == 0 {
		return NewValidationError("phone is required")
	}
	if len(digits) != 10 && len(digits) != 11 {
		return NewValidationError("phone must have 10 or 11 digits")
	}
	return nil
}

// ValidateEmail checks the local@domain.tld shape; empty is allowed
func ValidateEmail(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if !emailPattern.MatchString(value) {
		return NewValidationError("email is invalid")
	}
	return nil
}

// ValidateDate requires a non-zero calendar date
func ValidateDate(value time.Time, fieldName string) error {
	if value.IsZero() {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}
