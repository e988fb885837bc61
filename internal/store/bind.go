package store

import (
	"sort"

	"github.com/roach88/factbase/internal/queryir"
)

// NamedArg supplies a value for a named placeholder. Build it with Arg.
type NamedArg struct {
	Name  string
	Value any
}

// Arg returns a named argument for Select.Get and friends.
func Arg(name string, value any) NamedArg {
	return NamedArg{Name: name, Value: value}
}

// bind resolves the values of placeholders from args.
//
// Arguments are either all positional or all named. Positional arguments
// must match the placeholders one to one: their count must equal the number
// of distinct placeholders and each position needs a positional
// placeholder. With named arguments (or none), each placeholder takes its
// argument if given, else its default; a nil named value also selects the
// default.
func bind(placeholders []*queryir.Placeholder, args []any) (queryir.Bindings, error) {
	var positional []any
	named := make(map[string]any)
	for _, a := range args {
		if na, ok := a.(NamedArg); ok {
			named[na.Name] = na.Value
			continue
		}
		positional = append(positional, a)
	}

	if len(positional) > 0 && len(named) > 0 {
		return nil, queryErrorf(ErrCodeArgument, "cannot mix positional and named arguments")
	}

	b := make(queryir.Bindings, len(placeholders))
	if len(positional) > 0 {
		return bindPositional(b, placeholders, positional)
	}

	byName := make(map[string]*queryir.Placeholder)
	for _, ph := range placeholders {
		if ph.Name() != "" {
			byName[ph.Name()] = ph
		}
	}
	var unknown []string
	for name := range named {
		if _, ok := byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &QueryError{
			Code:        ErrCodeUnknownPlaceholder,
			Placeholder: unknown[0],
			Message:     "no placeholder with this name",
		}
	}

	for _, ph := range placeholders {
		v := named[ph.Name()]
		if ph.Name() == "" || v == nil {
			def, ok := ph.Default()
			if !ok {
				return nil, &QueryError{
					Code:        ErrCodeUnboundPlaceholder,
					Placeholder: ph.String(),
					Message:     "no value for placeholder",
				}
			}
			v = def
		}
		b[ph.Key()] = v
	}
	return b, nil
}

func bindPositional(b queryir.Bindings, placeholders []*queryir.Placeholder, args []any) (queryir.Bindings, error) {
	if len(args) != len(placeholders) {
		return nil, queryErrorf(ErrCodePlaceholder,
			"got %d positional arguments for %d placeholders", len(args), len(placeholders))
	}

	byPos := make(map[int]*queryir.Placeholder)
	for _, ph := range placeholders {
		if pos, ok := ph.Position(); ok {
			byPos[pos] = ph
		}
	}
	for i, v := range args {
		ph, ok := byPos[i]
		if !ok {
			return nil, queryErrorf(ErrCodePlaceholder, "no placeholder for positional argument %d", i)
		}
		b[ph.Key()] = v
	}
	return b, nil
}
