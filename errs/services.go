package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API Errors
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrServiceDisabled    = errors.New("service not configured")
)

func NewServiceUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrServiceUnavailable,
		message:    fmt.Sprintf("%s request failed", service),
		Cause:      cause,
	}
}

func NewServiceDisabledError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceDisabled,
		message:    fmt.Sprintf("%s is not configured", service),
	}
}

func IsServiceDisabled(err error) bool {
	return errors.Is(err, ErrServiceDisabled)
}

