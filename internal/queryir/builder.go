package queryir

import (
	"fmt"

	"github.com/roach88/factbase/internal/predicate"
)

// FieldExpr builds comparisons against one field.
type FieldExpr struct {
	field *predicate.Field
}

// On starts a comparison on field f.
func On(f *predicate.Field) FieldExpr {
	if f == nil {
		panic("queryir: On requires a field")
	}
	return FieldExpr{field: f}
}

// Eq returns field = x.
func (e FieldExpr) Eq(x any) Comparator { return Compare(Eq, e.field, x) }

// Ne returns field != x.
func (e FieldExpr) Ne(x any) Comparator { return Compare(Ne, e.field, x) }

// Lt returns field < x.
func (e FieldExpr) Lt(x any) Comparator { return Compare(Lt, e.field, x) }

// Le returns field <= x.
func (e FieldExpr) Le(x any) Comparator { return Compare(Le, e.field, x) }

// Gt returns field > x.
func (e FieldExpr) Gt(x any) Comparator { return Compare(Gt, e.field, x) }

// Ge returns field >= x.
func (e FieldExpr) Ge(x any) Comparator { return Compare(Ge, e.field, x) }

// Compare builds lhs op rhs. Each side may be a *predicate.Field, a
// *Placeholder, an Operand, or any other value, which becomes a Literal.
//
// If only rhs references a field the sides are swapped and op flipped, so
// the field is always on the left.
func Compare(op Op, lhs, rhs any) Comparator {
	if !op.valid() {
		panic(fmt.Sprintf("queryir: unknown operator %q", string(op)))
	}
	l, r := operand(lhs), operand(rhs)
	_, lfield := l.(FieldRef)
	_, rfield := r.(FieldRef)
	if rfield && !lfield {
		l, r, op = r, l, op.Flip()
	}
	return &FieldCompare{Op: op, Left: l, Right: r}
}

func operand(x any) Operand {
	switch v := x.(type) {
	case *predicate.Field:
		if v == nil {
			panic("queryir: nil field")
		}
		return FieldRef{Field: v}
	case FieldExpr:
		return FieldRef{Field: v.field}
	case *Placeholder:
		if v == nil {
			panic("queryir: nil placeholder")
		}
		return v
	case Operand:
		return v
	case Comparator:
		panic("queryir: a comparator cannot be an operand")
	default:
		return Literal{Value: predicate.Normalize(v)}
	}
}

// Static returns a condition that is always v.
func Static(v bool) Comparator { return StaticValue{Value: v} }

// Not negates c.
func Not(c ...Comparator) Comparator {
	if len(c) != 1 {
		panic(fmt.Sprintf("queryir: NOT takes exactly one argument, got %d", len(c)))
	}
	return &BoolOp{Kind: KindNot, Children: checkChildren(c)}
}

// And is true when every child is true. It requires at least two children.
func And(c ...Comparator) Comparator {
	if len(c) < 2 {
		panic(fmt.Sprintf("queryir: AND takes at least two arguments, got %d", len(c)))
	}
	return &BoolOp{Kind: KindAnd, Children: checkChildren(c)}
}

// Or is true when any child is true. It requires at least two children.
func Or(c ...Comparator) Comparator {
	if len(c) < 2 {
		panic(fmt.Sprintf("queryir: OR takes at least two arguments, got %d", len(c)))
	}
	return &BoolOp{Kind: KindOr, Children: checkChildren(c)}
}

func checkChildren(c []Comparator) []Comparator {
	for i, child := range c {
		if child == nil {
			panic(fmt.Sprintf("queryir: nil comparator at argument %d", i))
		}
	}
	return append([]Comparator(nil), c...)
}
