package predicate

import (
	"fmt"

	"github.com/roach88/factbase/internal/symbol"
)

// FieldType encodes one field's value to a symbol and back.
//
// Encode fails if the value does not fit the type. Decode fails if the symbol
// has the wrong shape. Unifies is the cheap shape check Decode relies on; it
// never fails.
type FieldType interface {
	Encode(v any) (symbol.Symbol, error)
	Decode(s symbol.Symbol) (any, error)
	Unifies(s symbol.Symbol) bool

	// Kind names the type for diagnostics ("integer", "point", ...).
	Kind() string
}

// Integer returns the field type for 64-bit integers.
// Any Go integer kind is accepted and normalised to int64.
func Integer() FieldType { return integerType{} }

// String returns the field type for quoted strings.
func String() FieldType { return stringType{} }

// Constant returns the field type for constants such as `red`.
// Values are Go strings that must be valid constant names.
func Constant() FieldType { return constantType{} }

// Complex returns a field type whose values are facts of schema s,
// nested as function terms in the encoded form.
func Complex(s *Schema) FieldType {
	if s == nil {
		panic("predicate: Complex requires a schema")
	}
	return complexType{schema: s}
}

// Transform wraps inner with conversion hooks. in maps an application value
// to a value inner accepts before encoding; out maps a decoded inner value
// back to the application value. A nil hook is the identity.
func Transform(inner FieldType, in, out func(any) (any, error)) FieldType {
	if inner == nil {
		panic("predicate: Transform requires an inner type")
	}
	return transformType{inner: inner, in: in, out: out}
}

type integerType struct{}

func (integerType) Kind() string { return "integer" }

func (integerType) Encode(v any) (symbol.Symbol, error) {
	n, ok := Normalize(v).(int64)
	if !ok {
		return nil, fmt.Errorf("expected integer, got %T", v)
	}
	return symbol.Number(n), nil
}

func (integerType) Decode(s symbol.Symbol) (any, error) {
	n, ok := s.(symbol.Number)
	if !ok {
		return nil, fmt.Errorf("expected number, got %s", s)
	}
	return int64(n), nil
}

func (integerType) Unifies(s symbol.Symbol) bool {
	_, ok := s.(symbol.Number)
	return ok
}

type stringType struct{}

func (stringType) Kind() string { return "string" }

func (stringType) Encode(v any) (symbol.Symbol, error) {
	str, ok := Normalize(v).(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", v)
	}
	return symbol.Str(str), nil
}

func (stringType) Decode(s symbol.Symbol) (any, error) {
	str, ok := s.(symbol.Str)
	if !ok {
		return nil, fmt.Errorf("expected string, got %s", s)
	}
	return string(str), nil
}

func (stringType) Unifies(s symbol.Symbol) bool {
	_, ok := s.(symbol.Str)
	return ok
}

type constantType struct{}

func (constantType) Kind() string { return "constant" }

func (constantType) Encode(v any) (symbol.Symbol, error) {
	name, ok := Normalize(v).(string)
	if !ok {
		return nil, fmt.Errorf("expected constant name, got %T", v)
	}
	if !symbol.IsConstantName(name) {
		return nil, fmt.Errorf("invalid constant name %q", name)
	}
	return symbol.NewConstant(name), nil
}

func (constantType) Decode(s symbol.Symbol) (any, error) {
	f, ok := s.(symbol.Function)
	if !ok || !f.IsConstant() {
		return nil, fmt.Errorf("expected constant, got %s", s)
	}
	return f.Name, nil
}

func (constantType) Unifies(s symbol.Symbol) bool {
	f, ok := s.(symbol.Function)
	return ok && f.IsConstant()
}

type complexType struct {
	schema *Schema
}

func (t complexType) Kind() string { return t.schema.Label() }

func (t complexType) Encode(v any) (symbol.Symbol, error) {
	f, ok := v.(*Fact)
	if !ok || f == nil {
		return nil, fmt.Errorf("expected %s fact, got %T", t.schema.Label(), v)
	}
	if f.Schema() != t.schema {
		return nil, fmt.Errorf("expected %s fact, got %s fact", t.schema.Label(), f.Schema().Label())
	}
	return f.Symbol(), nil
}

func (t complexType) Decode(s symbol.Symbol) (any, error) {
	return t.schema.Unify(s)
}

func (t complexType) Unifies(s symbol.Symbol) bool {
	return t.schema.Unifies(s)
}

type transformType struct {
	inner FieldType
	in    func(any) (any, error)
	out   func(any) (any, error)
}

func (t transformType) Kind() string { return t.inner.Kind() }

func (t transformType) Encode(v any) (symbol.Symbol, error) {
	if t.in != nil {
		conv, err := t.in(v)
		if err != nil {
			return nil, fmt.Errorf("convert in: %w", err)
		}
		v = conv
	}
	return t.inner.Encode(v)
}

func (t transformType) Decode(s symbol.Symbol) (any, error) {
	v, err := t.inner.Decode(s)
	if err != nil {
		return nil, err
	}
	if t.out != nil {
		conv, err := t.out(v)
		if err != nil {
			return nil, fmt.Errorf("convert out: %w", err)
		}
		v = conv
	}
	return v, nil
}

func (t transformType) Unifies(s symbol.Symbol) bool {
	return t.inner.Unifies(s)
}

// Field is a stable descriptor for one field of a Schema.
// It is the handle queries use to reference a field.
type Field struct {
	schema     *Schema
	name       string
	index      int
	typ        FieldType
	def        any
	hasDefault bool
	indexed    bool
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Index returns the field's position in the schema.
func (f *Field) Index() int { return f.index }

// Type returns the field type.
func (f *Field) Type() FieldType { return f.typ }

// Schema returns the schema the field belongs to.
func (f *Field) Schema() *Schema { return f.schema }

// Default returns the default value and whether one was declared.
func (f *Field) Default() (any, bool) { return f.def, f.hasDefault }

// Indexed reports whether the schema declares the field as indexed.
func (f *Field) Indexed() bool { return f.indexed }

// String renders the field as label.name, e.g. "point.x".
func (f *Field) String() string {
	return f.schema.Label() + "." + f.name
}

// FieldDef declares one field of a schema. Build it with Def.
type FieldDef struct {
	name       string
	typ        FieldType
	def        any
	hasDefault bool
	indexed    bool
}

// FieldOption configures a FieldDef.
type FieldOption func(*FieldDef)

// WithDefault sets the value used when construction omits the field.
func WithDefault(v any) FieldOption {
	return func(d *FieldDef) {
		d.def = v
		d.hasDefault = true
	}
}

// Indexed marks the field for indexing in every fact base the schema is
// stored in.
func Indexed() FieldOption {
	return func(d *FieldDef) {
		d.indexed = true
	}
}

// Def declares a field named name of type typ.
func Def(name string, typ FieldType, opts ...FieldOption) FieldDef {
	d := FieldDef{name: name, typ: typ}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
