package services

import "errors"

// ValidationError reports input rejected before any store or network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation reasons returned by AuthService.Login.
const (
	ReasonMissingFields = "please fill in all fields"
	ReasonInvalidEmail  = "invalid email format"
	ReasonShortPassword = "password must be at least 6 characters"
)

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
