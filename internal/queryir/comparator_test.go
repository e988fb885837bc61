package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factbase/internal/predicate"
)

func pointSchema() *predicate.Schema {
	return predicate.MustSchema("point", []predicate.FieldDef{
		predicate.Def("x", predicate.Integer(), predicate.Indexed()),
		predicate.Def("y", predicate.Integer()),
	})
}

func TestFieldCompareEval(t *testing.T) {
	point := pointSchema()
	x, y := point.Field("x"), point.Field("y")
	f := point.MustNew(2, 4)

	tests := []struct {
		name string
		cond Comparator
		want bool
	}{
		{"eq", On(x).Eq(2), true},
		{"ne", On(x).Ne(2), false},
		{"lt", On(x).Lt(3), true},
		{"le", On(x).Le(2), true},
		{"gt", On(x).Gt(2), false},
		{"ge", On(y).Ge(4), true},
		{"field vs field", Compare(Lt, x, y), true},
		{"type mismatch eq", On(x).Eq("2"), false},
		{"type mismatch ne", On(x).Ne("2"), true},
		{"type mismatch lt", On(x).Lt("2"), false},
		{"flipped literal", Compare(Gt, 3, x), true},
		{"self compare eq", Compare(Eq, x, x), true},
		{"self compare lt", Compare(Lt, x, x), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.Eval(f, nil))
		})
	}
}

func TestCompareNormalisesFieldToLeft(t *testing.T) {
	point := pointSchema()
	x := point.Field("x")

	c := Compare(Gt, 3, x).(*FieldCompare)
	f, ok := c.Field()
	require.True(t, ok)
	assert.Same(t, x, f)
	assert.Equal(t, Lt, c.Op)
	assert.Equal(t, Literal{Value: int64(3)}, c.Right)
}

func TestFieldCompareForeignSchemaIsFalse(t *testing.T) {
	a, b := pointSchema(), pointSchema()
	f := a.MustNew(1, 1)

	assert.False(t, On(b.Field("x")).Eq(1).Eval(f, nil))
	assert.False(t, On(b.Field("x")).Ne(1).Eval(f, nil))
}

func TestPlaceholderEval(t *testing.T) {
	point := pointSchema()
	x := point.Field("x")
	f := point.MustNew(2, 4)
	cond := On(x).Eq(Ph1)

	assert.True(t, cond.Eval(f, Bindings{"#0": int64(2)}))
	assert.False(t, cond.Eval(f, Bindings{"#0": int64(3)}))
	assert.False(t, cond.Eval(f, nil), "unbound placeholder evaluates false")
	assert.False(t, On(x).Ne(Ph1).Eval(f, nil), "unbound placeholder evaluates false for != too")
}

func TestIsStatic(t *testing.T) {
	point := pointSchema()
	x, y := point.Field("x"), point.Field("y")

	assert.True(t, Compare(Eq, 1, 1).(*FieldCompare).IsStatic())
	assert.True(t, Compare(Eq, Ph1, 1).(*FieldCompare).IsStatic())
	assert.True(t, Compare(Eq, x, x).(*FieldCompare).IsStatic())
	assert.False(t, Compare(Eq, x, y).(*FieldCompare).IsStatic())
	assert.False(t, On(x).Eq(1).(*FieldCompare).IsStatic())
}

func TestBoolOpEval(t *testing.T) {
	point := pointSchema()
	x, y := point.Field("x"), point.Field("y")
	f := point.MustNew(2, 4)

	assert.True(t, And(On(x).Eq(2), On(y).Eq(4)).Eval(f, nil))
	assert.False(t, And(On(x).Eq(2), On(y).Eq(5)).Eval(f, nil))
	assert.True(t, Or(On(x).Eq(9), On(y).Eq(4)).Eval(f, nil))
	assert.False(t, Or(On(x).Eq(9), On(y).Eq(9)).Eval(f, nil))
	assert.True(t, Not(On(x).Eq(9)).Eval(f, nil))
}

func TestBoolOpArityPanics(t *testing.T) {
	point := pointSchema()
	c := On(point.Field("x")).Eq(1)

	assert.Panics(t, func() { And(c) })
	assert.Panics(t, func() { Or() })
	assert.Panics(t, func() { Not() })
	assert.Panics(t, func() { Not(c, c) })
	assert.Panics(t, func() { And(c, nil) })
	assert.Panics(t, func() { Compare(Op("~"), 1, 2) })
	assert.Panics(t, func() { Compare(Eq, c, 1) })
}

func TestComparatorString(t *testing.T) {
	point := pointSchema()
	x, y := point.Field("x"), point.Field("y")

	cond := And(On(x).Lt(3), Or(On(y).Eq(Ph("target")), Not(On(y).Ne("a"))))
	assert.Equal(t, `(point.x < 3 AND (point.y = ph_(target) OR NOT point.y != "a"))`, cond.String())
	assert.Equal(t, "point.x >= ph2_", On(x).Ge(Ph2).String())
	assert.Equal(t, "true", Static(true).String())
}

func TestParseOp(t *testing.T) {
	for _, s := range []string{"=", "==", "!=", "<", "<=", ">", ">="} {
		_, err := ParseOp(s)
		assert.NoError(t, err, s)
	}
	op, _ := ParseOp("==")
	assert.Equal(t, Eq, op)

	_, err := ParseOp("=>")
	assert.Error(t, err)
}

func TestOpFlip(t *testing.T) {
	assert.Equal(t, Gt, Lt.Flip())
	assert.Equal(t, Ge, Le.Flip())
	assert.Equal(t, Lt, Gt.Flip())
	assert.Equal(t, Le, Ge.Flip())
	assert.Equal(t, Eq, Eq.Flip())
	assert.Equal(t, Ne, Ne.Flip())
}
