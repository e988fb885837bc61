package compiler

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/symbol"
)

// Validation error codes (E100-E199)
const (
	ErrNameAndTuple     = "E101" // name and tuple both set
	ErrInvalidName      = "E102" // predicate name is not a constant identifier
	ErrInvalidFieldName = "E103" // field name empty, reserved or underscored
	ErrDuplicateField   = "E104" // field name repeated within a predicate
	ErrUnknownType      = "E105" // field type is neither builtin nor declared
	ErrInvalidDefault   = "E106" // default does not fit the field type
	ErrComplexDefault   = "E107" // default on a complex field
	ErrReferenceCycle   = "E108" // complex fields refer back to their predicate
)

var reservedFieldNames = map[string]bool{"meta": true, "symbol": true, "clone": true}

// ValidationError represents a declaration validation error.
type ValidationError struct {
	Field   string    `json:"field"`
	Message string    `json:"message"`
	Code    string    `json:"code"`
	Pos     token.Pos `json:"-"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("[%s] %s:%d:%d: %s: %s", e.Code, e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors is every problem Validate found, in declaration order.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks a set of declarations against the naming and typing
// rules. Returns all errors found (does not fail-fast).
func Validate(decls []*Decl) []ValidationError {
	var errs []ValidationError

	declared := make(map[string]bool, len(decls))
	for _, d := range decls {
		declared[d.Label] = true
	}

	for _, d := range decls {
		errs = append(errs, validateDecl(d, declared)...)
	}

	_, cycles := analyze(decls)
	byLabel := make(map[string]*Decl, len(decls))
	for _, d := range decls {
		byLabel[d.Label] = d
	}
	for _, c := range cycles {
		errs = append(errs, ValidationError{
			Field:   c.Path[0],
			Message: fmt.Sprintf("reference cycle: %s", c),
			Code:    ErrReferenceCycle,
			Pos:     byLabel[c.Path[0]].Pos,
		})
	}

	return errs
}

func validateDecl(d *Decl, declared map[string]bool) []ValidationError {
	var errs []ValidationError

	switch {
	case d.Tuple && d.Name != "":
		errs = append(errs, ValidationError{
			Field:   d.Label,
			Message: "name and tuple are mutually exclusive",
			Code:    ErrNameAndTuple,
			Pos:     d.Pos,
		})
	case !d.Tuple && !symbol.IsConstantName(predicateName(d)):
		errs = append(errs, ValidationError{
			Field:   d.Label,
			Message: fmt.Sprintf("invalid predicate name %q", predicateName(d)),
			Code:    ErrInvalidName,
			Pos:     d.Pos,
		})
	}

	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		path := fmt.Sprintf("%s.fields[%d]", d.Label, i)

		switch {
		case f.Name == "" || strings.HasPrefix(f.Name, "_") || reservedFieldNames[f.Name]:
			errs = append(errs, ValidationError{
				Field:   path + ".name",
				Message: fmt.Sprintf("invalid field name %q", f.Name),
				Code:    ErrInvalidFieldName,
				Pos:     f.Pos,
			})
		case seen[f.Name]:
			errs = append(errs, ValidationError{
				Field:   path + ".name",
				Message: fmt.Sprintf("duplicate field name %q", f.Name),
				Code:    ErrDuplicateField,
				Pos:     f.Pos,
			})
		}
		seen[f.Name] = true

		if !f.IsBuiltin() && !declared[f.Type] {
			errs = append(errs, ValidationError{
				Field:   path + ".type",
				Message: fmt.Sprintf("unknown type %q", f.Type),
				Code:    ErrUnknownType,
				Pos:     f.Pos,
			})
			continue
		}

		if !f.HasDefault {
			continue
		}
		if !f.IsBuiltin() {
			errs = append(errs, ValidationError{
				Field:   path + ".default",
				Message: "complex fields cannot have a default",
				Code:    ErrComplexDefault,
				Pos:     f.Pos,
			})
			continue
		}
		if _, err := builtinType(f.Type).Encode(f.Default); err != nil {
			errs = append(errs, ValidationError{
				Field:   path + ".default",
				Message: fmt.Sprintf("default %v is not a valid %s: %v", f.Default, f.Type, err),
				Code:    ErrInvalidDefault,
				Pos:     f.Pos,
			})
		}
	}

	return errs
}

// predicateName is the name the declaration's schema will carry.
func predicateName(d *Decl) string {
	switch {
	case d.Tuple:
		return ""
	case d.Name != "":
		return d.Name
	default:
		return predicate.DefaultName(d.Label)
	}
}

func builtinType(name string) predicate.FieldType {
	switch name {
	case TypeInteger:
		return predicate.Integer()
	case TypeString:
		return predicate.String()
	case TypeConstant:
		return predicate.Constant()
	}
	return nil
}
