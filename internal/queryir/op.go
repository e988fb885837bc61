package queryir

import (
	"fmt"

	"github.com/roach88/factbase/internal/predicate"
)

// Op is a comparison operator.
type Op string

const (
	Eq Op = "="
	Ne Op = "!="
	Lt Op = "<"
	Le Op = "<="
	Gt Op = ">"
	Ge Op = ">="
)

// ParseOp parses an operator token. "==" is accepted as an alias for "=".
func ParseOp(s string) (Op, error) {
	switch s {
	case "=", "==":
		return Eq, nil
	case "!=":
		return Ne, nil
	case "<":
		return Lt, nil
	case "<=":
		return Le, nil
	case ">":
		return Gt, nil
	case ">=":
		return Ge, nil
	}
	return "", fmt.Errorf("unknown comparison operator %q", s)
}

// Flip returns the operator with its operands swapped: a < b is b > a.
func (o Op) Flip() Op {
	switch o {
	case Lt:
		return Gt
	case Le:
		return Ge
	case Gt:
		return Lt
	case Ge:
		return Le
	}
	return o
}

// Test applies the operator to two values.
//
// = and != use predicate.EqualValues, so values of different kinds are
// unequal. Ordering operators on values predicate.CompareValues cannot
// order are false.
func (o Op) Test(a, b any) bool {
	switch o {
	case Eq:
		return predicate.EqualValues(a, b)
	case Ne:
		return !predicate.EqualValues(a, b)
	}
	c, ok := predicate.CompareValues(a, b)
	if !ok {
		return false
	}
	return o.apply(c)
}

// apply interprets a three-way comparison result.
func (o Op) apply(c int) bool {
	switch o {
	case Eq:
		return c == 0
	case Ne:
		return c != 0
	case Lt:
		return c < 0
	case Le:
		return c <= 0
	case Gt:
		return c > 0
	case Ge:
		return c >= 0
	default:
		panic(fmt.Sprintf("queryir: unknown operator %q", string(o)))
	}
}

func (o Op) String() string { return string(o) }

func (o Op) valid() bool {
	switch o {
	case Eq, Ne, Lt, Le, Gt, Ge:
		return true
	}
	return false
}
