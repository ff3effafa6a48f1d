package types

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidSession     = errors.New("session not found or expired")
)

// InvalidInputError carries a human-readable reason for a validation failure.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

func NewInvalidInputError(reason string) error {
	return &InvalidInputError{Reason: reason}
}

// IsInvalidInput reports whether err is a validation failure.
func IsInvalidInput(err error) bool {
	var iie *InvalidInputError
	return errors.As(err, &iie)
}
