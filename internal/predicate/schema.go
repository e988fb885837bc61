package predicate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/roach88/factbase/internal/symbol"
)

// reservedFieldNames cannot be used as field names.
var reservedFieldNames = map[string]bool{
	"meta":   true,
	"symbol": true,
	"clone":  true,
}

// Schema describes one record type: a name and an ordered list of fields.
//
// Schemas are nominal. Each NewSchema call yields a distinct type even if
// another schema has the same name and fields.
type Schema struct {
	id     uuid.UUID
	name   string
	label  string
	tuple  bool
	fields []*Field
	byName map[string]*Field
}

// SchemaOption configures a Schema.
type SchemaOption func(*schemaConfig)

type schemaConfig struct {
	tuple bool
	label string
}

// AsTuple declares a tuple schema. Its facts encode as bare tuples with no
// leading name, so the name passed to NewSchema must be empty.
func AsTuple() SchemaOption {
	return func(c *schemaConfig) {
		c.tuple = true
	}
}

// WithLabel sets the label used in diagnostics and plans. It defaults to the
// schema name, or "tuple" for tuple schemas.
func WithLabel(label string) SchemaOption {
	return func(c *schemaConfig) {
		c.label = label
	}
}

// DefaultName derives a predicate name from a declared label by lower-casing
// its first letter: "Point" becomes "point".
func DefaultName(label string) string {
	if label == "" {
		return ""
	}
	r := []rune(label)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// NewSchema declares a schema named name with the given fields.
//
// The name must be a valid constant name unless AsTuple is given, in which
// case it must be empty. Field names must be unique identifiers that do not
// start with an underscore and are not reserved (meta, symbol, clone).
// Field defaults are validated against their types.
func NewSchema(name string, defs []FieldDef, opts ...SchemaOption) (*Schema, error) {
	var cfg schemaConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case cfg.tuple && name != "":
		return nil, schemaErrorf(name, "a tuple schema cannot have a name")
	case !cfg.tuple && !symbol.IsConstantName(name):
		return nil, schemaErrorf(name, "invalid predicate name %q", name)
	}

	label := cfg.label
	if label == "" {
		label = name
		if cfg.tuple {
			label = "tuple"
		}
	}

	s := &Schema{
		id:     uuid.Must(uuid.NewV7()),
		name:   name,
		label:  label,
		tuple:  cfg.tuple,
		fields: make([]*Field, 0, len(defs)),
		byName: make(map[string]*Field, len(defs)),
	}

	for i, d := range defs {
		if err := validateFieldName(d.name); err != nil {
			return nil, schemaErrorf(label, "field %d: %v", i, err)
		}
		if _, dup := s.byName[d.name]; dup {
			return nil, schemaErrorf(label, "duplicate field name %q", d.name)
		}
		if d.typ == nil {
			return nil, schemaErrorf(label, "field %q has no type", d.name)
		}

		f := &Field{
			schema:     s,
			name:       d.name,
			index:      i,
			typ:        d.typ,
			hasDefault: d.hasDefault,
			indexed:    d.indexed,
		}
		if d.hasDefault {
			if _, err := d.typ.Encode(d.def); err != nil {
				return nil, &Error{Code: CodeEncode, Schema: label, Field: d.name, Message: "invalid default", Err: err}
			}
			f.def = Normalize(d.def)
		}
		s.fields = append(s.fields, f)
		s.byName[d.name] = f
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
// Use it for package-level schema declarations.
func MustSchema(name string, defs []FieldDef, opts ...SchemaOption) *Schema {
	s, err := NewSchema(name, defs, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func validateFieldName(name string) error {
	if name == "" {
		return fmt.Errorf("empty field name")
	}
	if strings.HasPrefix(name, "_") {
		return fmt.Errorf("field name %q must not start with '_'", name)
	}
	if reservedFieldNames[name] {
		return fmt.Errorf("field name %q is reserved", name)
	}
	for i, r := range name {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !letter && (i == 0 || r < '0' || r > '9') {
			return fmt.Errorf("field name %q is not an identifier", name)
		}
	}
	return nil
}

// ID returns the schema's unique identity token.
func (s *Schema) ID() uuid.UUID { return s.id }

// Name returns the predicate name; empty for tuple schemas.
func (s *Schema) Name() string { return s.name }

// Label returns the human-readable label used in diagnostics.
func (s *Schema) Label() string { return s.label }

// IsTuple reports whether facts encode as bare tuples.
func (s *Schema) IsTuple() bool { return s.tuple }

// Arity returns the number of fields.
func (s *Schema) Arity() int { return len(s.fields) }

// Fields returns the field descriptors in positional order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldAt returns the field at position i.
func (s *Schema) FieldAt(i int) *Field { return s.fields[i] }

// Field returns the descriptor for the named field.
// It panics if the schema has no such field.
func (s *Schema) Field(name string) *Field {
	f, ok := s.byName[name]
	if !ok {
		panic(fmt.Sprintf("predicate: %s has no field %q", s.label, name))
	}
	return f
}

// LookupField returns the descriptor for the named field, if any.
func (s *Schema) LookupField(name string) (*Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// IndexedFields returns the fields declared with Indexed, in positional order.
func (s *Schema) IndexedFields() []*Field {
	var out []*Field
	for _, f := range s.fields {
		if f.indexed {
			out = append(out, f)
		}
	}
	return out
}

// String renders the schema signature, e.g. "point/2".
func (s *Schema) String() string {
	return fmt.Sprintf("%s/%d", s.label, len(s.fields))
}

// Unifies reports whether sym has this schema's name, arity and per-field shape.
func (s *Schema) Unifies(sym symbol.Symbol) bool {
	f, ok := sym.(symbol.Function)
	if !ok || f.Name != s.name || len(f.Args) != len(s.fields) {
		return false
	}
	for i, field := range s.fields {
		if !field.typ.Unifies(f.Args[i]) {
			return false
		}
	}
	return true
}
