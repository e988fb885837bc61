package predicate

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factbase/internal/symbol"
)

func TestNewFact(t *testing.T) {
	s := pointSchema(t)

	f, err := s.New(1, int32(2))
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.Get("x"))
	assert.Equal(t, int64(2), f.At(1))
	assert.Equal(t, []any{int64(1), int64(2)}, f.Values())
	assert.Equal(t, "point(1,2)", f.String())
	assert.Same(t, s, f.Schema())

	v, ok := f.Value(s.Field("y"))
	assert.True(t, ok)
	assert.Equal(t, int64(2), v)
}

func TestNewFactArity(t *testing.T) {
	s := pointSchema(t)

	_, err := s.New(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArity)
}

func TestNewNamed(t *testing.T) {
	s := pointSchema(t)

	f, err := s.NewNamed(map[string]any{"x": 4})
	require.NoError(t, err)
	assert.Equal(t, "point(4,0)", f.String())

	_, err = s.NewNamed(map[string]any{"y": 4})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "x", perr.Field)

	_, err = s.NewNamed(map[string]any{"x": 1, "z": 2, "w": 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), "[w z]")
}

func TestNewFactEncodeError(t *testing.T) {
	s := MustSchema("item", []FieldDef{Def("name", Constant()), Def("label", String())})

	_, err := s.New("Bad Name", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncode)
	assert.Contains(t, err.Error(), "item.name")

	_, err = s.New("ok", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncode)
}

func TestFactValueForeignField(t *testing.T) {
	a := pointSchema(t)
	b := pointSchema(t)
	f := a.MustNew(1, 2)

	_, ok := f.Value(b.Field("x"))
	assert.False(t, ok)
	_, ok = f.Value(nil)
	assert.False(t, ok)
}

func TestFactEqualityByCanonicalForm(t *testing.T) {
	a := pointSchema(t)
	b := pointSchema(t)

	fa := a.MustNew(1, 2)
	fb := b.MustNew(1, 2)
	assert.True(t, fa.Equal(fb))
	assert.Equal(t, 0, Compare(fa, fb))

	assert.False(t, fa.Equal(a.MustNew(1, 3)))
	assert.Equal(t, -1, Compare(fa, a.MustNew(1, 3)))
	assert.Equal(t, 1, Compare(a.MustNew(2, 0), fa))
}

func TestClone(t *testing.T) {
	s := pointSchema(t)
	f := s.MustNew(1, 2)

	g, err := f.Clone(map[string]any{"y": 5})
	require.NoError(t, err)
	assert.Equal(t, "point(1,5)", g.String())
	assert.Equal(t, "point(1,2)", f.String(), "source fact must be unchanged")

	_, err = f.Clone(map[string]any{"z": 1})
	assert.ErrorIs(t, err, ErrSchema)
}

func TestFactSymbolIsACopy(t *testing.T) {
	s := pointSchema(t)
	f := s.MustNew(1, 2)

	sym := f.Symbol()
	sym.Args[0] = symbol.NewNumber(99)
	assert.Equal(t, "point(1,2)", f.String())
	assert.True(t, f.Equal(s.MustNew(1, 2)))
}

func TestUnifyDoesNotAliasInput(t *testing.T) {
	s := pointSchema(t)
	in := symbol.NewFunction("point", symbol.NewNumber(3), symbol.NewNumber(9))

	f, err := s.Unify(in)
	require.NoError(t, err)
	in.Args[0] = symbol.NewNumber(99)
	assert.Equal(t, "point(3,9)", f.String())
	assert.Equal(t, int64(3), f.Get("x"))
}

func TestUnify(t *testing.T) {
	s := pointSchema(t)

	f, err := s.Unify(symbol.MustParse("point(3,9)"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.Get("x"))
	assert.Equal(t, int64(9), f.Get("y"))

	bad := []string{"point(1)", "pt(1,2)", `point("a",2)`, "point(1,2,3)", "42"}
	for _, text := range bad {
		_, err := s.Unify(symbol.MustParse(text))
		require.Error(t, err, text)
		assert.True(t, IsUnifyError(err), text)

		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, text, perr.Symbol)
	}
}

// Round-trip and unify soundness for every field type.
func TestFieldTypeRoundTrip(t *testing.T) {
	point := pointSchema(t)
	upper := Transform(String(),
		func(v any) (any, error) { return strings.ToLower(v.(string)), nil },
		func(v any) (any, error) { return strings.ToUpper(v.(string)), nil },
	)

	tests := []struct {
		name  string
		typ   FieldType
		value any
	}{
		{"integer", Integer(), int64(-42)},
		{"string", String(), "hello \"world\""},
		{"constant", Constant(), "red"},
		{"complex", Complex(point), point.MustNew(1, 2)},
		{"transform", upper, "ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, err := tt.typ.Encode(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.typ.Unifies(sym))

			got, err := tt.typ.Decode(sym)
			require.NoError(t, err)
			assert.True(t, EqualValues(tt.value, got), "got %v", got)
		})
	}
}

func TestFieldTypeDecodeErrors(t *testing.T) {
	point := pointSchema(t)
	tests := []struct {
		name string
		typ  FieldType
		sym  string
	}{
		{"integer", Integer(), `"1"`},
		{"string", String(), "1"},
		{"constant", Constant(), "f(1)"},
		{"complex", Complex(point), "point(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym := symbol.MustParse(tt.sym)
			assert.False(t, tt.typ.Unifies(sym))
			_, err := tt.typ.Decode(sym)
			assert.Error(t, err)
		})
	}
}

func TestComplexFieldRejectsForeignSchema(t *testing.T) {
	a := pointSchema(t)
	b := pointSchema(t)

	_, err := Complex(a).Encode(b.MustNew(1, 2))
	assert.Error(t, err)
	_, err = Complex(a).Encode(nil)
	assert.Error(t, err)
}

func TestNestedSchema(t *testing.T) {
	point := pointSchema(t)
	line := MustSchema("line", []FieldDef{
		Def("from", Complex(point)),
		Def("to", Complex(point)),
		Def("colour", Constant(), WithDefault("black")),
	})

	f, err := line.NewNamed(map[string]any{
		"from": point.MustNew(0, 0),
		"to":   point.MustNew(3, 4),
	})
	require.NoError(t, err)
	assert.Equal(t, "line(point(0,0),point(3,4),black)", f.String())

	back, err := line.Unify(f.Symbol())
	require.NoError(t, err)
	assert.True(t, back.Equal(f))

	to := back.Get("to").(*Fact)
	assert.Same(t, point, to.Schema())
	assert.Equal(t, int64(4), to.Get("y"))
}

func TestTransformErrors(t *testing.T) {
	failing := Transform(Integer(), func(any) (any, error) {
		return nil, fmt.Errorf("boom")
	}, nil)

	s := MustSchema("p", []FieldDef{Def("a", failing)})
	_, err := s.New(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncode)
	assert.Contains(t, err.Error(), "boom")

	outFail := Transform(Integer(), nil, func(any) (any, error) {
		return nil, fmt.Errorf("bad out")
	})
	s2 := MustSchema("q", []FieldDef{Def("a", outFail)})
	_, err = s2.Unify(symbol.MustParse("q(1)"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestZeroArityFact(t *testing.T) {
	s := MustSchema("done", nil)
	f := s.MustNew()
	assert.Equal(t, "done", f.String())
	assert.True(t, s.Unifies(symbol.MustParse("done")))
}
