package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema("point", []FieldDef{
		Def("x", Integer(), Indexed()),
		Def("y", Integer(), WithDefault(0)),
	}, WithLabel("Point"))
	require.NoError(t, err)
	return s
}

func TestNewSchema(t *testing.T) {
	s := pointSchema(t)

	assert.Equal(t, "point", s.Name())
	assert.Equal(t, "Point", s.Label())
	assert.Equal(t, 2, s.Arity())
	assert.False(t, s.IsTuple())
	assert.Equal(t, "Point/2", s.String())

	x := s.Field("x")
	assert.Equal(t, "x", x.Name())
	assert.Equal(t, 0, x.Index())
	assert.True(t, x.Indexed())
	assert.Same(t, s, x.Schema())
	assert.Equal(t, "Point.x", x.String())
	assert.Equal(t, "integer", x.Type().Kind())

	def, ok := s.Field("y").Default()
	assert.True(t, ok)
	assert.Equal(t, int64(0), def)

	assert.Len(t, s.Fields(), 2)
	assert.Equal(t, []*Field{x}, s.IndexedFields())
	assert.Same(t, x, s.FieldAt(0))
}

func TestSchemaNominalIdentity(t *testing.T) {
	a := pointSchema(t)
	b := pointSchema(t)

	assert.NotSame(t, a, b)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSchemaFieldPanicsOnUnknown(t *testing.T) {
	s := pointSchema(t)
	assert.Panics(t, func() { s.Field("z") })

	_, ok := s.LookupField("z")
	assert.False(t, ok)
}

func TestNewSchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		pred   string
		defs   []FieldDef
		opts   []SchemaOption
		code   ErrorCode
		substr string
	}{
		{"invalid name", "Point", nil, nil, CodeSchema, "invalid predicate name"},
		{"empty name", "", nil, nil, CodeSchema, "invalid predicate name"},
		{"named tuple", "pair", nil, []SchemaOption{AsTuple()}, CodeSchema, "cannot have a name"},
		{"reserved", "p", []FieldDef{Def("meta", Integer())}, nil, CodeSchema, "reserved"},
		{"underscore", "p", []FieldDef{Def("_x", Integer())}, nil, CodeSchema, "must not start with '_'"},
		{"not identifier", "p", []FieldDef{Def("a-b", Integer())}, nil, CodeSchema, "not an identifier"},
		{"duplicate", "p", []FieldDef{Def("a", Integer()), Def("a", String())}, nil, CodeSchema, "duplicate"},
		{"no type", "p", []FieldDef{Def("a", nil)}, nil, CodeSchema, "has no type"},
		{"bad default", "p", []FieldDef{Def("a", Integer(), WithDefault("x"))}, nil, CodeEncode, "invalid default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.pred, tt.defs, tt.opts...)
			require.Error(t, err)
			assert.Equal(t, tt.code, CodeOf(err))
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestTupleSchema(t *testing.T) {
	s, err := NewSchema("", []FieldDef{Def("a", Constant()), Def("b", Integer())}, AsTuple())
	require.NoError(t, err)

	assert.True(t, s.IsTuple())
	assert.Equal(t, "tuple", s.Label())

	f, err := s.New("red", 3)
	require.NoError(t, err)
	assert.Equal(t, "(red,3)", f.String())
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "point", DefaultName("Point"))
	assert.Equal(t, "aBC", DefaultName("ABC"))
	assert.Equal(t, "x", DefaultName("x"))
	assert.Equal(t, "", DefaultName(""))
}

func TestMustSchemaPanics(t *testing.T) {
	assert.Panics(t, func() { MustSchema("Bad", nil) })
}

func TestSchemaErrorSentinels(t *testing.T) {
	_, err := NewSchema("p", []FieldDef{Def("symbol", Integer())})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
	assert.True(t, IsSchemaError(err))
	assert.False(t, IsUnifyError(err))
}
