package compiler

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/factbase/internal/predicate"
)

// Registry holds compiled schemas in declaration order.
type Registry struct {
	schemas []*predicate.Schema
	byLabel map[string]*predicate.Schema
}

// Schemas returns the compiled schemas in declaration order.
func (r *Registry) Schemas() []*predicate.Schema {
	out := make([]*predicate.Schema, len(r.schemas))
	copy(out, r.schemas)
	return out
}

// Len returns the number of compiled schemas.
func (r *Registry) Len() int { return len(r.schemas) }

// Lookup returns the schema declared under label.
func (r *Registry) Lookup(label string) (*predicate.Schema, bool) {
	s, ok := r.byLabel[label]
	return s, ok
}

// Field resolves a "Label.field" reference.
func (r *Registry) Field(ref string) (*predicate.Field, error) {
	label, name, ok := strings.Cut(ref, ".")
	if !ok {
		return nil, fmt.Errorf("field reference %q must be label.field", ref)
	}
	s, ok := r.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("field reference %q: unknown predicate %q", ref, label)
	}
	f, ok := s.LookupField(name)
	if !ok {
		return nil, fmt.Errorf("field reference %q: %s has no field %q", ref, label, name)
	}
	return f, nil
}

// Unifier returns a unifier over every compiled schema, tried in
// declaration order.
func (r *Registry) Unifier() *predicate.Unifier {
	return predicate.NewUnifier(r.schemas...)
}

// Compile reads every declaration under the `predicate` struct of v,
// validates them and builds their schemas.
//
// Validation problems are returned together as ValidationErrors. CUE shape
// errors (a missing field name, a float default) stop at the first one and
// are returned as *CompileError.
func Compile(v cue.Value) (*Registry, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	predVal := v.LookupPath(cue.ParsePath("predicate"))
	if !predVal.Exists() {
		return nil, &CompileError{
			Field:   "predicate",
			Message: "at least one predicate is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := predVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var decls []*Decl
	for iter.Next() {
		decl, err := CompileDecl(iter.Value())
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}

	return Build(decls)
}

// Build validates decls and constructs their schemas. Complex fields are
// resolved in dependency order, so a declaration may refer to one that
// comes after it.
func Build(decls []*Decl) (*Registry, error) {
	if errs := Validate(decls); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	byLabel := make(map[string]*Decl, len(decls))
	for _, d := range decls {
		byLabel[d.Label] = d
	}

	built := make(map[string]*predicate.Schema, len(decls))
	order, _ := analyze(decls)
	for _, label := range order {
		s, err := buildSchema(byLabel[label], built)
		if err != nil {
			return nil, err
		}
		built[label] = s
	}

	r := &Registry{byLabel: built}
	for _, d := range decls {
		r.schemas = append(r.schemas, built[d.Label])
	}
	return r, nil
}

func buildSchema(d *Decl, built map[string]*predicate.Schema) (*predicate.Schema, error) {
	defs := make([]predicate.FieldDef, len(d.Fields))
	for i, f := range d.Fields {
		typ := builtinType(f.Type)
		if typ == nil {
			typ = predicate.Complex(built[f.Type])
		}
		var opts []predicate.FieldOption
		if f.Index {
			opts = append(opts, predicate.Indexed())
		}
		if f.HasDefault {
			opts = append(opts, predicate.WithDefault(f.Default))
		}
		defs[i] = predicate.Def(f.Name, typ, opts...)
	}

	opts := []predicate.SchemaOption{predicate.WithLabel(d.Label)}
	if d.Tuple {
		opts = append(opts, predicate.AsTuple())
	}
	s, err := predicate.NewSchema(predicateName(d), defs, opts...)
	if err != nil {
		return nil, &CompileError{Field: d.Label, Message: err.Error(), Pos: d.Pos}
	}
	return s, nil
}
