package predicate

import (
	"iter"

	"github.com/roach88/factbase/internal/symbol"
)

type signature struct {
	name  string
	arity int
}

// Unifier maps raw symbols to facts of a set of candidate schemas.
//
// Schemas are grouped by (name, arity). A symbol is tried against each
// schema of its group in registration order; the first that unifies wins.
// Symbols that match no schema are skipped.
type Unifier struct {
	bySig map[signature][]*Schema
}

// NewUnifier creates a Unifier for the given schemas.
func NewUnifier(schemas ...*Schema) *Unifier {
	u := &Unifier{bySig: make(map[signature][]*Schema)}
	for _, s := range schemas {
		sig := signature{name: s.name, arity: len(s.fields)}
		u.bySig[sig] = append(u.bySig[sig], s)
	}
	return u
}

// Unify returns the fact for sym, or false if no schema matches.
func (u *Unifier) Unify(sym symbol.Symbol) (*Fact, bool) {
	fn, ok := sym.(symbol.Function)
	if !ok {
		return nil, false
	}
	for _, s := range u.bySig[signature{name: fn.Name, arity: len(fn.Args)}] {
		if f, err := s.Unify(fn); err == nil {
			return f, true
		}
	}
	return nil, false
}

// Facts lazily unifies each symbol of syms, yielding only those that match.
func (u *Unifier) Facts(syms iter.Seq[symbol.Symbol]) iter.Seq[*Fact] {
	return func(yield func(*Fact) bool) {
		for sym := range syms {
			f, ok := u.Unify(sym)
			if !ok {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}
