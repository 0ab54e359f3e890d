package dto

import (
	"errors"

	"github.com/smartsplit/smartsplit-backend/internal/application/service"
	"github.com/smartsplit/smartsplit-backend/internal/domain/engine"
)

// APIError represents a structured error response.
// All error responses from the API use this format for consistency.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// ActualSum is set for percentage_mismatch errors so the client can
	// show how far off the split was.
	ActualSum *float64 `json:"actualSum,omitempty"`
}

// Common error codes
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeBadRequest    = "bad_request"
	ErrCodeInternalError = "internal_error"
)

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// NotFoundError creates a not found error response.
func NotFoundError(resource string) APIError {
	return NewAPIError(ErrCodeNotFound, resource+" not found")
}

// BadRequestError creates a bad request error response.
func BadRequestError(message string) APIError {
	return NewAPIError(ErrCodeBadRequest, message)
}

// InternalError creates an internal server error response.
func InternalError() APIError {
	return NewAPIError(ErrCodeInternalError, "an internal error occurred")
}

// FromError maps a service or engine error to an APIError and HTTP status.
// Engine error kinds pass through as stable API codes.
func FromError(err error) (int, APIError) {
	if verr, ok := engine.AsValidation(err); ok {
		apiErr := NewAPIError(string(verr.Kind), verr.Message)
		if verr.Kind == engine.ErrPercentageMismatch {
			sum := verr.ActualSum
			apiErr.ActualSum = &sum
		}
		return 400, apiErr
	}

	switch {
	case errors.Is(err, service.ErrBillNotFound):
		return 404, NotFoundError("bill")
	case errors.Is(err, service.ErrNoDraft):
		return 404, NotFoundError("draft")
	case errors.Is(err, service.ErrNothingToComplete):
		return 400, BadRequestError(err.Error())
	default:
		return 500, InternalError()
	}
}
