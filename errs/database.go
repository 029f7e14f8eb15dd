package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrAlreadyExists    = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// NewNotFound builds the "<Kind> not found" error returned for unknown external ids.
func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrNotFound,
		message:    fmt.Sprintf("%s not found", entity),
	}
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause != nil {
		errStr := strings.ToLower(cause.Error())
		switch {
		case strings.Contains(errStr, "duplicate key"), strings.Contains(errStr, "unique constraint"):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        ErrAlreadyExists,
				message:    fmt.Sprintf("%s already exists", entity),
				Details:    details,
				Cause:      cause,
			}
		}
	}

	return NewStoreUnavailableError(operation, entity, cause)
}

// NewStoreUnavailableError reports a store failure. It is never downgraded to an empty result.
func NewStoreUnavailableError(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStoreUnavailable,
		message:    "Internal Server Error",
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
