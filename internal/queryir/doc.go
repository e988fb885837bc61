// Package queryir provides the comparator algebra used to express query
// conditions over facts.
//
// A Comparator is a boolean predicate over a *predicate.Fact. There are
// three node kinds:
//
//	StaticValue   a constant true/false
//	FieldCompare  lhs op rhs, each side a field reference, placeholder or literal
//	BoolOp        NOT (one child), AND / OR (two or more children)
//
// Comparators are built with explicit builder functions instead of operator
// overloading:
//
//	x := point.Field("x")
//	cond := queryir.And(
//	    queryir.On(x).Lt(3),
//	    queryir.On(point.Field("y")).Eq(queryir.Ph1),
//	)
//
// SEALED INTERFACES:
//
// Comparator and Operand are sealed interfaces using the marker method
// pattern. Only types in this package implement them, so type switches in
// the store's planner are exhaustive.
//
// PLACEHOLDERS:
//
// A Placeholder is a query parameter: named (Ph, PhDefault) or positional
// (Ph1..Ph4, PhN). Placeholders themselves are immutable. Values are
// supplied per evaluation through a Bindings map, so one comparator tree can
// be evaluated with different arguments without resetting shared state.
//
// EVALUATION:
//
// Eval is total. Any failure to resolve a side (unbound placeholder, field
// of another schema) or to order two values of different kinds makes the
// FieldCompare evaluate to false instead of returning an error. Equality
// across kinds is false and inequality true.
//
// SIMPLIFICATION:
//
// Simplify folds static sub-expressions: literal-only comparisons and
// comparisons of a field with itself become StaticValue, AND/OR short-circuit
// on an absorbing static child, identity children are dropped, and a
// single remaining child replaces its AND/OR parent. For every fact f and
// bindings b, Simplify(c).Eval(f, b) == c.Eval(f, b).
//
// INDEX SELECTION:
//
// Drivable finds at most one leaf of the form indexed-field op
// (placeholder|literal) that can drive an index lookup. Only the top-level
// node and chains of nested AND nodes are searched; OR and NOT are never
// drivable.
package queryir
