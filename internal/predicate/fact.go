package predicate

import (
	"fmt"
	"slices"
	"sort"

	"github.com/roach88/factbase/internal/symbol"
)

// Fact is an instance of a Schema.
//
// A Fact is immutable: its values and canonical symbol are fixed at
// construction. Equality and ordering are those of the canonical symbol.
type Fact struct {
	schema *Schema
	values []any
	sym    symbol.Function
}

// New constructs a fact from positional values.
// The number of values must equal the schema's arity.
func (s *Schema) New(values ...any) (*Fact, error) {
	if len(values) != len(s.fields) {
		return nil, &Error{
			Code:    CodeArity,
			Schema:  s.label,
			Message: fmt.Sprintf("expected %d values, got %d", len(s.fields), len(values)),
		}
	}
	return s.build(values)
}

// MustNew is like New but panics on error.
func (s *Schema) MustNew(values ...any) *Fact {
	f, err := s.New(values...)
	if err != nil {
		panic(err)
	}
	return f
}

// NewNamed constructs a fact from named values. Fields missing from values
// take their default; a missing field without a default is an error.
func (s *Schema) NewNamed(values map[string]any) (*Fact, error) {
	if err := s.checkNames(values); err != nil {
		return nil, err
	}

	positional := make([]any, len(s.fields))
	for i, f := range s.fields {
		v, ok := values[f.name]
		if !ok {
			if !f.hasDefault {
				return nil, &Error{Code: CodeMissingField, Schema: s.label, Field: f.name, Message: "no value and no default"}
			}
			v = f.def
		}
		positional[i] = v
	}
	return s.build(positional)
}

// checkNames rejects names that are not fields of s.
// Unknown names are reported in sorted order so the error is deterministic.
func (s *Schema) checkNames(values map[string]any) error {
	var unknown []string
	for name := range values {
		if _, ok := s.byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return schemaErrorf(s.label, "unknown field(s) %v", unknown)
}

func (s *Schema) build(values []any) (*Fact, error) {
	args := make([]symbol.Symbol, len(values))
	stored := make([]any, len(values))
	for i, f := range s.fields {
		sym, err := f.typ.Encode(values[i])
		if err != nil {
			return nil, &Error{Code: CodeEncode, Schema: s.label, Field: f.name, Message: "cannot encode value", Err: err}
		}
		args[i] = sym
		stored[i] = Normalize(values[i])
	}
	return &Fact{
		schema: s,
		values: stored,
		sym:    symbol.Function{Name: s.name, Args: args},
	}, nil
}

// Unify decodes sym into a fact of this schema. It fails with a UNIFY_ERROR
// if sym does not have the schema's name, arity and field shapes.
func (s *Schema) Unify(sym symbol.Symbol) (*Fact, error) {
	if !s.Unifies(sym) {
		return nil, &Error{
			Code:    CodeUnify,
			Schema:  s.label,
			Symbol:  symbolText(sym),
			Message: fmt.Sprintf("symbol does not match %s", s),
		}
	}

	fn := sym.(symbol.Function).Clone()
	values := make([]any, len(s.fields))
	for i, f := range s.fields {
		v, err := f.typ.Decode(fn.Args[i])
		if err != nil {
			return nil, &Error{Code: CodeDecode, Schema: s.label, Field: f.name, Symbol: fn.Args[i].String(), Err: err}
		}
		values[i] = v
	}
	return &Fact{schema: s, values: values, sym: fn}, nil
}

func symbolText(sym symbol.Symbol) string {
	if sym == nil {
		return "<nil>"
	}
	return sym.String()
}

// Schema returns the fact's schema.
func (f *Fact) Schema() *Schema { return f.schema }

// Get returns the value of the named field.
// It panics if the schema has no such field.
func (f *Fact) Get(name string) any {
	return f.values[f.schema.Field(name).index]
}

// At returns the value at position i.
func (f *Fact) At(i int) any { return f.values[i] }

// Value returns the value of field fd. ok is false if fd belongs to a
// different schema.
func (f *Fact) Value(fd *Field) (v any, ok bool) {
	if fd == nil || fd.schema != f.schema {
		return nil, false
	}
	return f.values[fd.index], true
}

// Values returns a copy of the field values in positional order.
func (f *Fact) Values() []any {
	return slices.Clone(f.values)
}

// Symbol returns a copy of the canonical encoded form.
func (f *Fact) Symbol() symbol.Function { return f.sym.Clone() }

// String renders the canonical form in ASP text.
func (f *Fact) String() string { return f.sym.String() }

// Clone returns a new fact of the same schema with the named fields replaced.
func (f *Fact) Clone(overrides map[string]any) (*Fact, error) {
	if err := f.schema.checkNames(overrides); err != nil {
		return nil, err
	}
	values := slices.Clone(f.values)
	for name, v := range overrides {
		values[f.schema.byName[name].index] = v
	}
	return f.schema.build(values)
}

// Equal reports whether f and other have equal canonical forms.
func (f *Fact) Equal(other *Fact) bool {
	if f == nil || other == nil {
		return f == other
	}
	return symbol.Equal(f.sym, other.sym)
}

// Compare orders facts by their canonical forms.
func Compare(a, b *Fact) int {
	return symbol.Compare(a.sym, b.sym)
}
