package queryir

import (
	"fmt"
	"strings"

	"github.com/roach88/factbase/internal/predicate"
)

// Comparator is a boolean condition over a fact.
//
// This is a sealed interface - only StaticValue, *FieldCompare and *BoolOp
// implement it.
type Comparator interface {
	comparatorNode() // Marker method - seals interface to this package

	// Eval reports whether f satisfies the condition under bindings b.
	// It never fails; unresolvable comparisons are false.
	Eval(f *predicate.Fact, b Bindings) bool

	String() string
}

// Operand is one side of a FieldCompare.
//
// This is a sealed interface - only FieldRef, *Placeholder and Literal
// implement it.
type Operand interface {
	operandNode() // Marker method - seals interface to this package

	String() string
}

// FieldRef references a field of the fact under evaluation.
type FieldRef struct {
	Field *predicate.Field
}

func (FieldRef) operandNode() {}

func (r FieldRef) String() string { return r.Field.String() }

// Literal is a constant operand.
type Literal struct {
	Value any
}

func (Literal) operandNode() {}

func (l Literal) String() string { return formatValue(l.Value) }

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Resolve returns the value of operand o for fact f under bindings b.
// f may be nil when o is not a FieldRef. ok is false when the value cannot
// be resolved.
func Resolve(o Operand, f *predicate.Fact, b Bindings) (v any, ok bool) {
	switch x := o.(type) {
	case FieldRef:
		if f == nil {
			return nil, false
		}
		return f.Value(x.Field)
	case *Placeholder:
		return b.Lookup(x)
	case Literal:
		return x.Value, true
	default:
		return nil, false
	}
}

// StaticValue is a condition that does not depend on the fact.
type StaticValue struct {
	Value bool
}

func (StaticValue) comparatorNode() {}

// Eval returns the static value.
func (s StaticValue) Eval(*predicate.Fact, Bindings) bool { return s.Value }

func (s StaticValue) String() string {
	if s.Value {
		return "true"
	}
	return "false"
}

// FieldCompare compares two operands with Op.
//
// Builders normalise the node so that when exactly one side is a field
// reference it is Left.
type FieldCompare struct {
	Op    Op
	Left  Operand
	Right Operand
}

func (*FieldCompare) comparatorNode() {}

// Field returns the field referenced by Left, if any.
func (c *FieldCompare) Field() (*predicate.Field, bool) {
	ref, ok := c.Left.(FieldRef)
	if !ok {
		return nil, false
	}
	return ref.Field, true
}

// IsStatic reports whether the comparison is independent of any fact:
// neither side is a field reference, or both sides reference the same field.
func (c *FieldCompare) IsStatic() bool {
	l, lok := c.Left.(FieldRef)
	r, rok := c.Right.(FieldRef)
	if lok && rok {
		return l.Field == r.Field
	}
	return !lok && !rok
}

// isSelfCompare reports whether both sides reference the same field.
func (c *FieldCompare) isSelfCompare() bool {
	l, lok := c.Left.(FieldRef)
	r, rok := c.Right.(FieldRef)
	return lok && rok && l.Field == r.Field
}

// hasPlaceholder reports whether either side is a placeholder.
func (c *FieldCompare) hasPlaceholder() bool {
	_, l := c.Left.(*Placeholder)
	_, r := c.Right.(*Placeholder)
	return l || r
}

// Eval resolves both sides and applies Op.
func (c *FieldCompare) Eval(f *predicate.Fact, b Bindings) bool {
	if c.isSelfCompare() {
		// x op x is op(1,1), even for facts of another schema.
		return c.Op.apply(0)
	}
	lv, ok := Resolve(c.Left, f, b)
	if !ok {
		return false
	}
	rv, ok := Resolve(c.Right, f, b)
	if !ok {
		return false
	}
	return c.Op.Test(lv, rv)
}

func (c *FieldCompare) String() string {
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
}

// BoolKind is the connective of a BoolOp.
type BoolKind string

const (
	KindNot BoolKind = "NOT"
	KindAnd BoolKind = "AND"
	KindOr  BoolKind = "OR"
)

// BoolOp combines child conditions.
// NOT has exactly one child; AND and OR have at least two.
type BoolOp struct {
	Kind     BoolKind
	Children []Comparator
}

func (*BoolOp) comparatorNode() {}

// Eval evaluates the connective with short-circuiting.
func (o *BoolOp) Eval(f *predicate.Fact, b Bindings) bool {
	switch o.Kind {
	case KindNot:
		return !o.Children[0].Eval(f, b)
	case KindAnd:
		for _, c := range o.Children {
			if !c.Eval(f, b) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range o.Children {
			if c.Eval(f, b) {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("queryir: unknown bool kind %q", o.Kind))
	}
}

func (o *BoolOp) String() string {
	if o.Kind == KindNot {
		return "NOT " + o.Children[0].String()
	}
	parts := make([]string, len(o.Children))
	for i, c := range o.Children {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " "+string(o.Kind)+" ") + ")"
}
