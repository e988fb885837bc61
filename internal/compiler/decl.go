package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Builtin field type names.
const (
	TypeInteger  = "integer"
	TypeString   = "string"
	TypeConstant = "constant"
)

// Decl is one predicate declaration as read from CUE.
type Decl struct {
	Label  string
	Name   string // empty unless given explicitly
	Tuple  bool
	Fields []FieldDecl
	Pos    token.Pos
}

// FieldDecl is one field of a predicate declaration.
type FieldDecl struct {
	Name       string
	Type       string
	Index      bool
	Default    any // int64 or string
	HasDefault bool
	Pos        token.Pos
}

// IsBuiltin reports whether the field has a builtin type rather than
// referring to another predicate.
func (f FieldDecl) IsBuiltin() bool {
	switch f.Type {
	case TypeInteger, TypeString, TypeConstant:
		return true
	}
	return false
}

// CompileDecl reads a predicate declaration from a CUE value.
//
// The value should be the declaration struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`predicate: Point: { fields: [...] }`)
//	decl, err := CompileDecl(v.LookupPath(cue.ParsePath("predicate.Point")))
func CompileDecl(v cue.Value) (*Decl, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	decl := &Decl{Pos: v.Pos()}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		decl.Label = labels[len(labels)-1].String()
	}

	if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		decl.Name = name
	}

	if tupleVal := v.LookupPath(cue.ParsePath("tuple")); tupleVal.Exists() {
		tuple, err := tupleVal.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		decl.Tuple = tuple
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, &CompileError{
			Field:   decl.Label + ".fields",
			Message: "fields are required",
			Pos:     v.Pos(),
		}
	}
	iter, err := fieldsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		fd, err := compileField(iter.Value(), fmt.Sprintf("%s.fields[%d]", decl.Label, i))
		if err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, fd)
	}

	return decl, nil
}

func compileField(v cue.Value, path string) (FieldDecl, error) {
	fd := FieldDecl{Pos: v.Pos()}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return fd, &CompileError{Field: path + ".name", Message: "field name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return fd, formatCUEError(err)
	}
	fd.Name = name

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return fd, &CompileError{Field: path + ".type", Message: "field type is required", Pos: v.Pos()}
	}
	typ, err := typeVal.String()
	if err != nil {
		return fd, formatCUEError(err)
	}
	fd.Type = typ

	if indexVal := v.LookupPath(cue.ParsePath("index")); indexVal.Exists() {
		index, err := indexVal.Bool()
		if err != nil {
			return fd, formatCUEError(err)
		}
		fd.Index = index
	}

	if defVal := v.LookupPath(cue.ParsePath("default")); defVal.Exists() {
		def, err := extractDefault(defVal, path+".default")
		if err != nil {
			return fd, err
		}
		fd.Default = def
		fd.HasDefault = true
	}

	return fd, nil
}

// extractDefault reads a scalar default value. Floats are rejected since
// no field type can hold them.
func extractDefault(v cue.Value, path string) (any, error) {
	switch v.IncompleteKind() {
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return n, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return s, nil
	case cue.FloatKind, cue.NumberKind:
		return nil, &CompileError{
			Field:   path,
			Message: "float defaults are not supported, use an integer",
			Pos:     v.Pos(),
		}
	default:
		return nil, &CompileError{
			Field:   path,
			Message: fmt.Sprintf("unsupported default kind: %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
