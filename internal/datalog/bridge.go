package datalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/mangle/ast"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/store"
	"github.com/roach88/factbase/internal/symbol"
)

// ToAtom converts a fact to a Mangle atom.
func ToAtom(f *predicate.Fact) (ast.Atom, error) {
	s := f.Schema()
	if s.IsTuple() {
		return ast.Atom{}, &predicate.Error{
			Code:    predicate.CodeEncode,
			Schema:  s.Label(),
			Message: "tuple schemas have no Mangle predicate",
		}
	}

	sym := f.Symbol()
	terms := make([]ast.BaseTerm, len(sym.Args))
	for i, arg := range sym.Args {
		term, err := toTerm(arg)
		if err != nil {
			return ast.Atom{}, &predicate.Error{
				Code:   predicate.CodeEncode,
				Schema: s.Label(),
				Field:  s.FieldAt(i).Name(),
				Symbol: arg.String(),
				Err:    err,
			}
		}
		terms[i] = term
	}
	return ast.NewAtom(s.Name(), terms...), nil
}

func toTerm(sym symbol.Symbol) (ast.BaseTerm, error) {
	switch v := sym.(type) {
	case symbol.Number:
		return ast.Number(int64(v)), nil
	case symbol.Str:
		return ast.String(string(v)), nil
	case symbol.Function:
		if !v.IsConstant() {
			return nil, fmt.Errorf("nested term %s has no Mangle representation", v)
		}
		c, err := ast.Name("/" + v.Name)
		if err != nil {
			return nil, fmt.Errorf("constant %s: %w", v.Name, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%s has no Mangle representation", sym)
	}
}

// FromAtom converts a ground Mangle atom back to a symbol.
// Names must be single-segment (`/red`) to map back to constants.
func FromAtom(a ast.Atom) (symbol.Symbol, error) {
	name := a.Predicate.Symbol
	if !symbol.IsConstantName(name) {
		return nil, fmt.Errorf("predicate %q is not a valid name", name)
	}
	args := make([]symbol.Symbol, len(a.Args))
	for i, term := range a.Args {
		sym, err := fromTerm(term)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", name, i, err)
		}
		args[i] = sym
	}
	return symbol.NewFunction(name, args...), nil
}

func fromTerm(term ast.BaseTerm) (symbol.Symbol, error) {
	c, ok := term.(ast.Constant)
	if !ok {
		return nil, fmt.Errorf("term %v is not ground", term)
	}
	switch c.Type {
	case ast.NumberType:
		return symbol.Number(c.NumValue), nil
	case ast.StringType:
		return symbol.Str(c.Symbol), nil
	case ast.NameType:
		name := strings.TrimPrefix(c.Symbol, "/")
		if !symbol.IsConstantName(name) {
			return nil, fmt.Errorf("name %s does not map to a constant", c.Symbol)
		}
		return symbol.NewConstant(name), nil
	default:
		return nil, fmt.Errorf("unsupported constant %v", c)
	}
}

// Load copies every fact of fb into a new in-memory Mangle fact store.
// Equal facts collapse into one atom, as Mangle stores sets.
func Load(fb *store.FactBase) (factstore.FactStore, error) {
	var fs factstore.FactStore = factstore.NewSimpleInMemoryStore()
	for _, s := range fb.Schemas() {
		for _, f := range fb.Facts(s) {
			atom, err := ToAtom(f)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", f, err)
			}
			fs.Add(atom)
		}
	}
	return fs, nil
}

// Facts reads the atoms of each schema's predicate from fs and unifies them
// into facts. Atoms that do not unify are skipped. Facts are returned
// grouped by schema in argument order and sorted within each schema.
func Facts(fs factstore.ReadOnlyFactStore, schemas ...*predicate.Schema) ([]*predicate.Fact, error) {
	var out []*predicate.Fact
	for _, s := range schemas {
		u := predicate.NewUnifier(s)
		var group []*predicate.Fact
		query := ast.NewQuery(ast.PredicateSym{Symbol: s.Name(), Arity: s.Arity()})
		err := fs.GetFacts(query, func(a ast.Atom) error {
			sym, err := FromAtom(a)
			if err != nil {
				return nil
			}
			if f, ok := u.Unify(sym); ok {
				group = append(group, f)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s, err)
		}
		slices.SortFunc(group, predicate.Compare)
		out = append(out, group...)
	}
	return out, nil
}

// ParseAtom parses Mangle atom syntax such as `point(1, 2)` or `colour(/red)`.
func ParseAtom(text string) (ast.Atom, error) {
	a, err := parse.Atom(text)
	if err != nil {
		return ast.Atom{}, fmt.Errorf("parse atom %q: %w", text, err)
	}
	return a, nil
}
