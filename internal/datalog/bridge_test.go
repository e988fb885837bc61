package datalog

import (
	"testing"

	"github.com/google/mangle/ast"
	"github.com/google/mangle/factstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/store"
	"github.com/roach88/factbase/internal/testutil"
)

func TestToAtom(t *testing.T) {
	point := testutil.PointSchema()
	colour := testutil.ColourSchema()

	atom, err := ToAtom(point.MustNew(1, -2))
	require.NoError(t, err)
	assert.Equal(t, "point", atom.Predicate.Symbol)
	assert.Equal(t, 2, atom.Predicate.Arity)
	assert.Equal(t, ast.Number(1), atom.Args[0])
	assert.Equal(t, ast.Number(-2), atom.Args[1])

	atom, err = ToAtom(colour.MustNew("red", "dark"))
	require.NoError(t, err)
	name, ok := atom.Args[0].(ast.Constant)
	require.True(t, ok)
	assert.Equal(t, ast.NameType, name.Type)
	assert.Equal(t, "/red", name.Symbol)
	assert.Equal(t, ast.String("dark"), atom.Args[1])
}

func TestToAtomRejectsNestedTerms(t *testing.T) {
	point := testutil.PointSchema()
	line := predicate.MustSchema("line", []predicate.FieldDef{
		predicate.Def("from", predicate.Complex(point)),
		predicate.Def("to", predicate.Complex(point)),
	})

	_, err := ToAtom(line.MustNew(point.MustNew(0, 0), point.MustNew(1, 1)))
	require.Error(t, err)
	assert.Equal(t, predicate.CodeEncode, predicate.CodeOf(err))
}

func TestToAtomRejectsTupleSchema(t *testing.T) {
	pair := predicate.MustSchema("pair", []predicate.FieldDef{
		predicate.Def("a", predicate.Integer()),
		predicate.Def("b", predicate.Integer()),
	}, predicate.AsTuple())

	_, err := ToAtom(pair.MustNew(1, 2))
	require.Error(t, err)
	assert.Equal(t, predicate.CodeEncode, predicate.CodeOf(err))
}

func TestFromAtom(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"numbers", "point(1, 2)", "point(1,2)"},
		{"name and string", `colour(/red, "dark")`, `colour(red,"dark")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atom, err := ParseAtom(tt.in)
			require.NoError(t, err)
			sym, err := FromAtom(atom)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sym.String())
		})
	}
}

func TestFromAtomRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"variable", "point(X, 2)"},
		{"multi-segment name", "colour(/red/dark)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atom, err := ParseAtom(tt.in)
			require.NoError(t, err)
			_, err = FromAtom(atom)
			assert.Error(t, err)
		})
	}
}

func TestParseAtomError(t *testing.T) {
	_, err := ParseAtom("point(1,")
	assert.Error(t, err)
}

func TestLoadAndReadBack(t *testing.T) {
	point := testutil.PointSchema()
	colour := testutil.ColourSchema()

	fb := store.New(store.WithLogger(testutil.DiscardLogger()))
	fb.Add(testutil.Points(point, 3, 9, 1, 1, 2, 4)...)
	fb.Add(colour.MustNew("red", "dark"), colour.MustNew("blue", "plain"))

	fs, err := Load(fb)
	require.NoError(t, err)
	assert.Equal(t, 5, fs.EstimateFactCount())

	facts, err := Facts(fs, point, colour)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"point(1,1)", "point(2,4)", "point(3,9)",
		`colour(blue,"plain")`, `colour(red,"dark")`,
	}, testutil.Strings(facts))
}

func TestLoadFailsOnNestedFacts(t *testing.T) {
	point := testutil.PointSchema()
	boxed := predicate.MustSchema("boxed", []predicate.FieldDef{
		predicate.Def("p", predicate.Complex(point)),
	})

	fb := store.New(store.WithLogger(testutil.DiscardLogger()))
	fb.Add(boxed.MustNew(point.MustNew(1, 2)))

	_, err := Load(fb)
	assert.Error(t, err)
}

func TestFactsSkipsAtomsThatDoNotUnify(t *testing.T) {
	point := testutil.PointSchema()

	var fs factstore.FactStore = factstore.NewSimpleInMemoryStore()
	for _, text := range []string{"point(1, 2)", `point("a", 2)`, "point(/b, 3)"} {
		atom, err := ParseAtom(text)
		require.NoError(t, err)
		fs.Add(atom)
	}

	facts, err := Facts(fs, point)
	require.NoError(t, err)
	assert.Equal(t, []string{"point(1,2)"}, testutil.Strings(facts))
}
