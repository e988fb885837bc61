package store

import (
	"errors"
	"fmt"
)

// QueryError reports a query that could not be run or whose result did not
// have the expected cardinality.
type QueryError struct {
	// Code identifies the error category.
	Code QueryErrorCode

	// Placeholder names the placeholder involved, if any.
	Placeholder string

	// Message is a human-readable description.
	Message string
}

// QueryErrorCode categorizes query errors.
type QueryErrorCode string

const (
	// ErrCodeArgument indicates a malformed query: mixed positional and named
	// arguments, or more than one Where clause.
	ErrCodeArgument QueryErrorCode = "ARGUMENT_ERROR"

	// ErrCodePlaceholder indicates positional arguments that do not line up
	// with the query's positional placeholders.
	ErrCodePlaceholder QueryErrorCode = "PLACEHOLDER_ERROR"

	// ErrCodeUnknownPlaceholder indicates a named argument with no matching
	// placeholder.
	ErrCodeUnknownPlaceholder QueryErrorCode = "UNKNOWN_PLACEHOLDER"

	// ErrCodeUnboundPlaceholder indicates a placeholder with no argument and
	// no default.
	ErrCodeUnboundPlaceholder QueryErrorCode = "UNBOUND_PLACEHOLDER"

	// ErrCodeNotFound indicates GetUnique found no facts.
	ErrCodeNotFound QueryErrorCode = "NOT_FOUND"

	// ErrCodeMultipleResults indicates GetUnique found more than one fact.
	ErrCodeMultipleResults QueryErrorCode = "MULTIPLE_RESULTS"
)

// Sentinel errors for use with errors.Is. They match any *QueryError with
// the same Code.
var (
	ErrArgument           = &QueryError{Code: ErrCodeArgument}
	ErrPlaceholder        = &QueryError{Code: ErrCodePlaceholder}
	ErrUnknownPlaceholder = &QueryError{Code: ErrCodeUnknownPlaceholder}
	ErrUnboundPlaceholder = &QueryError{Code: ErrCodeUnboundPlaceholder}
	ErrNotFound           = &QueryError{Code: ErrCodeNotFound}
	ErrMultipleResults    = &QueryError{Code: ErrCodeMultipleResults}
)

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Placeholder != "" {
		return fmt.Sprintf("%s: %s (placeholder=%s)", e.Code, e.Message, e.Placeholder)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches another *QueryError with the same Code.
func (e *QueryError) Is(target error) bool {
	t, ok := target.(*QueryError)
	return ok && t.Code == e.Code
}

// CodeOf returns the Code of the first *QueryError in err's chain, or "".
func CodeOf(err error) QueryErrorCode {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ""
}

// IsNotFound returns true if GetUnique found no facts.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsMultipleResults returns true if GetUnique found more than one fact.
// Uses errors.As to handle wrapped errors.
func IsMultipleResults(err error) bool {
	return CodeOf(err) == ErrCodeMultipleResults
}

// IsBindingError returns true for any placeholder binding failure.
func IsBindingError(err error) bool {
	switch CodeOf(err) {
	case ErrCodeArgument, ErrCodePlaceholder, ErrCodeUnknownPlaceholder, ErrCodeUnboundPlaceholder:
		return true
	}
	return false
}

func queryErrorf(code QueryErrorCode, format string, args ...any) *QueryError {
	return &QueryError{Code: code, Message: fmt.Sprintf(format, args...)}
}
