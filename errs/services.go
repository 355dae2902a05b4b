package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// External Service Errors
var (
	ErrBlobStore          = errors.New("blob store operation failed")
	ErrBlobStoreDisabled  = errors.New("blob store not configured")
	ErrForeignBlob        = errors.New("blob not owned by this store")
	ErrNotificationFailed = errors.New("notification failed")
	ErrPartialFailure     = errors.New("partial failure")
	ErrConfig             = errors.New("configuration error")
)

func NewBlobStoreError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrBlobStore,
		Details:    fmt.Sprintf("Blob store failed to %s", operation),
		Cause:      cause,
	}
}

func NewBlobStoreDisabledError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrBlobStoreDisabled,
		Details:    "Set BLOB_PROVIDER to enable media uploads",
	}
}

func NewNotificationError(channel string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrNotificationFailed,
		Details:    fmt.Sprintf("Failed to deliver %s notification", channel),
		Cause:      cause,
	}
}

// NewPartialFailureError reports an operation whose side effects only partly completed.
func NewPartialFailureError(operation string, failedSteps []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrPartialFailure,
		Details:    fmt.Sprintf("%s partially failed at: %s", operation, strings.Join(failedSteps, ", ")),
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfig,
		Details:    fmt.Sprintf("Invalid configuration: %s", configName),
		Cause:      cause,
	}
}

func IsBlobStoreError(err error) bool {
	return errors.Is(err, ErrBlobStore)
}

func IsBlobStoreDisabledError(err error) bool {
	return errors.Is(err, ErrBlobStoreDisabled)
}

func IsForeignBlobError(err error) bool {
	return errors.Is(err, ErrForeignBlob)
}

func IsPartialFailureError(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}
