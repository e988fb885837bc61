package predicate

import (
	"errors"
	"fmt"
)

// Error reports a failure to declare a schema or to construct, encode or
// decode a fact.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Schema is the name of the schema involved, if any.
	Schema string

	// Field is the name of the field involved, if any.
	Field string

	// Symbol is the ASP text of the offending symbol for unify/decode errors.
	Symbol string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes predicate errors.
type ErrorCode string

const (
	// CodeSchema indicates an invalid schema declaration or an unknown field name.
	CodeSchema ErrorCode = "SCHEMA_ERROR"

	// CodeArity indicates a positional construction with the wrong number of values.
	CodeArity ErrorCode = "ARITY_ERROR"

	// CodeMissingField indicates a field with no value and no default.
	CodeMissingField ErrorCode = "MISSING_FIELD"

	// CodeEncode indicates a value that does not fit its field type.
	CodeEncode ErrorCode = "ENCODE_ERROR"

	// CodeDecode indicates a symbol that could not be decoded into a value.
	CodeDecode ErrorCode = "DECODE_ERROR"

	// CodeUnify indicates a symbol that does not match a schema's shape.
	CodeUnify ErrorCode = "UNIFY_ERROR"
)

// Sentinel errors for use with errors.Is. They match any *Error with the
// same Code.
var (
	ErrSchema       = &Error{Code: CodeSchema}
	ErrArity        = &Error{Code: CodeArity}
	ErrMissingField = &Error{Code: CodeMissingField}
	ErrEncode       = &Error{Code: CodeEncode}
	ErrDecode       = &Error{Code: CodeDecode}
	ErrUnify        = &Error{Code: CodeUnify}
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Code)
	switch {
	case e.Schema != "" && e.Field != "":
		msg += fmt.Sprintf(": %s.%s", e.Schema, e.Field)
	case e.Schema != "":
		msg += ": " + e.Schema
	case e.Field != "":
		msg += ": " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Symbol != "" {
		msg += fmt.Sprintf(" (symbol=%s)", e.Symbol)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the Code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsSchemaError returns true if err is a schema declaration or field name error.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsUnifyError returns true if err reports a symbol that does not match a schema.
// Matches wrapped errors.
func IsUnifyError(err error) bool {
	return errors.Is(err, ErrUnify)
}

func schemaErrorf(schema, format string, args ...any) *Error {
	return &Error{Code: CodeSchema, Schema: schema, Message: fmt.Sprintf(format, args...)}
}
