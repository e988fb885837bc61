package harness

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/queryir"
)

// positional matches placeholder names bound by position: ph1, ph2, ...
var positional = regexp.MustCompile(`^ph([1-9][0-9]*)$`)

// build converts a where node to a comparator over schema s.
func (w *Where) build(s *predicate.Schema) (queryir.Comparator, error) {
	switch {
	case w.And != nil:
		children, err := buildAll(w.And, s)
		if err != nil {
			return nil, err
		}
		return queryir.And(children...), nil
	case w.Or != nil:
		children, err := buildAll(w.Or, s)
		if err != nil {
			return nil, err
		}
		return queryir.Or(children...), nil
	case w.Not != nil:
		child, err := w.Not.build(s)
		if err != nil {
			return nil, err
		}
		return queryir.Not(child), nil
	case w.Static != nil:
		return queryir.Static(*w.Static), nil
	}

	op, err := queryir.ParseOp(w.Op)
	if err != nil {
		return nil, err
	}
	field, ok := s.LookupField(w.Field)
	if !ok {
		return nil, fmt.Errorf("%s has no field %q", s.Label(), w.Field)
	}

	var rhs any
	switch {
	case w.OtherField != "":
		other, ok := s.LookupField(w.OtherField)
		if !ok {
			return nil, fmt.Errorf("%s has no field %q", s.Label(), w.OtherField)
		}
		rhs = other
	case w.Placeholder != "":
		rhs = placeholder(w.Placeholder, w.Default)
	default:
		rhs = w.Value
	}
	return queryir.Compare(op, field, rhs), nil
}

func buildAll(nodes []Where, s *predicate.Schema) ([]queryir.Comparator, error) {
	out := make([]queryir.Comparator, len(nodes))
	for i := range nodes {
		c, err := nodes[i].build(s)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func placeholder(name string, def any) *queryir.Placeholder {
	if m := positional.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		return queryir.PhN(n)
	}
	if def != nil {
		return queryir.PhDefault(name, def)
	}
	return queryir.Ph(name)
}
