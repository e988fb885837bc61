package queryir

import (
	"fmt"

	"github.com/roach88/factbase/internal/predicate"
)

// ValidationResult reports conditions of a comparator that can never do
// useful work against a given schema.
//
// Such comparators are legal: evaluation is total, so they simply match
// nothing (or everything). Warnings exist to surface likely mistakes.
type ValidationResult struct {
	// OK is true when no warnings were found.
	OK bool

	// Warnings lists the suspicious conditions in encounter order.
	Warnings []string
}

// Validate checks c against the schema it will be evaluated on.
//
// Warnings are produced for:
//  1. Field references to another schema - the comparison is always false
//  2. Literals the field's type cannot encode - = never matches, != always does
//  3. Comparisons of a field with itself - the result is constant
//
// Validate is a pure function with no side effects.
func Validate(c Comparator, schema *predicate.Schema) ValidationResult {
	v := &validator{
		schema:   schema,
		warnings: []string{},
	}
	if c != nil {
		v.validateComparator(c)
	}

	return ValidationResult{
		OK:       len(v.warnings) == 0,
		Warnings: v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	schema   *predicate.Schema
	warnings []string
}

// addWarning appends a warning message.
func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validateComparator(c Comparator) {
	switch n := c.(type) {
	case StaticValue:
		// Always valid
	case *FieldCompare:
		v.validateCompare(n)
	case *BoolOp:
		for _, child := range n.Children {
			v.validateComparator(child)
		}
	default:
		v.addWarning("unknown comparator type: %T", c)
	}
}

func (v *validator) validateCompare(c *FieldCompare) {
	if c.isSelfCompare() {
		v.addWarning("%s compares a field with itself", c)
		return
	}

	for _, side := range []Operand{c.Left, c.Right} {
		if ref, ok := side.(FieldRef); ok && ref.Field.Schema() != v.schema {
			v.addWarning("%s references field %s of another schema", c, ref.Field)
		}
	}

	f, ok := c.Field()
	if !ok || f.Schema() != v.schema {
		return
	}
	if lit, ok := c.Right.(Literal); ok {
		if _, err := f.Type().Encode(lit.Value); err != nil {
			v.addWarning("%s: literal does not fit field type %s", c, f.Type().Kind())
		}
	}
}
