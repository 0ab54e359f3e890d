package engine

import "errors"

// ErrorKind classifies a validation failure. The string values double as
// stable API error codes.
type ErrorKind string

const (
	ErrInvalidName        ErrorKind = "invalid_name"
	ErrInvalidPrice       ErrorKind = "invalid_price"
	ErrInvalidAssignment  ErrorKind = "invalid_assignment"
	ErrPercentageMismatch ErrorKind = "percentage_mismatch"
	ErrEmptyItemList      ErrorKind = "empty_item_list"
)

// ValidationError is returned by mutators when input is rejected. The
// engine never panics on bad input; every failure comes back as one of
// these.
type ValidationError struct {
	Kind    ErrorKind
	Message string

	// ActualSum carries the computed percentage total when Kind is
	// ErrPercentageMismatch.
	ActualSum float64
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func validationErr(kind ErrorKind, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Message: msg}
}
