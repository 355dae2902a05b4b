package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Session Errors
var (
	ErrMissingSession     = errors.New("missing admin session")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func NewMissingSessionError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("%w: %w", ErrUnauthorized, ErrMissingSession),
		Details:    "Admin session required",
		Field:      "admin_session",
	}
}

func NewInvalidCredentialsError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidCredentials),
	}
}

func IsMissingSessionError(err error) bool {
	return errors.Is(err, ErrMissingSession)
}

func IsInvalidCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
