package store

import (
	"iter"

	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/queryir"
)

// Select is a query over one schema's partition.
//
// Build it with FactBase.Select, optionally narrow it with Where, then run
// it with Get, All, GetUnique or Count. A Select can be run any number of
// times with different arguments.
type Select struct {
	fb   *FactBase
	part *partition

	where        queryir.Comparator // simplified; nil matches everything
	drive        *queryir.FieldCompare
	placeholders []*queryir.Placeholder

	// err is a construction error reported by the next run.
	err error
}

func newSelect(fb *FactBase, p *partition) *Select {
	return &Select{fb: fb, part: p}
}

// Where sets the query condition. Several conditions are AND-ed. Where with
// no conditions leaves the query unconditional.
//
// Only one non-empty Where is allowed per Select; a second one is reported
// as an ARGUMENT_ERROR by the next Get.
//
// The query's placeholders are those of the condition as written, so a
// placeholder in a branch that simplification folds away still takes part
// in binding: Or(Static(true), On(x).Eq(Ph1)) expects one argument.
func (s *Select) Where(conds ...queryir.Comparator) *Select {
	if len(conds) == 0 || s.err != nil {
		return s
	}
	if s.where != nil {
		s.err = queryErrorf(ErrCodeArgument, "multiple where clauses for %s", s.part.schema)
		return s
	}

	var cond queryir.Comparator
	if len(conds) == 1 {
		cond = conds[0]
	} else {
		cond = queryir.And(conds...)
	}
	if cond == nil {
		s.err = queryErrorf(ErrCodeArgument, "nil where condition for %s", s.part.schema)
		return s
	}

	if result := queryir.Validate(cond, s.part.schema); !result.OK {
		for _, w := range result.Warnings {
			s.fb.logger.Warn("suspicious query condition",
				"schema", s.part.schema.String(),
				"warning", w,
			)
		}
	}

	s.placeholders = queryir.Placeholders(cond)
	s.where = queryir.Simplify(cond)
	s.drive = queryir.Drivable(s.where, s.part.lookupPriority)

	plan := s.Explain()
	s.fb.logger.Debug("query planned",
		"schema", plan.Schema,
		"mode", plan.Mode,
		"index_field", plan.IndexField,
		"op", string(plan.Op),
	)
	return s
}

// Get binds args to the query's placeholders and returns the matching facts
// as a lazy sequence.
//
// Positional args bind to Ph1, Ph2, ...; named placeholders are bound with
// Arg(name, value). Facts come in partition insertion order for a full scan,
// and in key order then insertion order when an index drives the query.
func (s *Select) Get(args ...any) (iter.Seq[*predicate.Fact], error) {
	if s.err != nil {
		return nil, s.err
	}
	b, err := bind(s.placeholders, args)
	if err != nil {
		return nil, err
	}
	if s.drive == nil {
		return s.scan(b), nil
	}
	return s.indexed(b), nil
}

func (s *Select) matches(f *predicate.Fact, b queryir.Bindings) bool {
	return s.where == nil || s.where.Eval(f, b)
}

func (s *Select) scan(b queryir.Bindings) iter.Seq[*predicate.Fact] {
	return func(yield func(*predicate.Fact) bool) {
		for _, f := range s.part.facts {
			if s.matches(f, b) && !yield(f) {
				return
			}
		}
	}
}

func (s *Select) indexed(b queryir.Bindings) iter.Seq[*predicate.Fact] {
	field, _ := s.drive.Field()
	mm := s.part.index(field)
	if mm == nil {
		panic("store: drivable field " + field.String() + " has no index")
	}
	return func(yield func(*predicate.Fact) bool) {
		probe, ok := queryir.Resolve(s.drive.Right, nil, b)
		if !ok {
			return
		}
		for _, key := range mm.keysFor(s.drive.Op, probe) {
			for _, f := range mm.facts(key) {
				if s.matches(f, b) && !yield(f) {
					return
				}
			}
		}
	}
}

// All returns every matching fact.
func (s *Select) All(args ...any) ([]*predicate.Fact, error) {
	seq, err := s.Get(args...)
	if err != nil {
		return nil, err
	}
	var out []*predicate.Fact
	for f := range seq {
		out = append(out, f)
	}
	return out, nil
}

// GetUnique returns the single matching fact. It fails with NOT_FOUND when
// nothing matches and MULTIPLE_RESULTS when more than one fact does.
func (s *Select) GetUnique(args ...any) (*predicate.Fact, error) {
	seq, err := s.Get(args...)
	if err != nil {
		return nil, err
	}
	var found *predicate.Fact
	for f := range seq {
		if found != nil {
			return nil, queryErrorf(ErrCodeMultipleResults, "multiple %s facts found, exactly one expected", s.part.schema)
		}
		found = f
	}
	if found == nil {
		return nil, queryErrorf(ErrCodeNotFound, "no %s facts found, exactly one expected", s.part.schema)
	}
	return found, nil
}

// Count returns the number of matching facts.
func (s *Select) Count(args ...any) (int, error) {
	seq, err := s.Get(args...)
	if err != nil {
		return 0, err
	}
	n := 0
	for range seq {
		n++
	}
	return n, nil
}

// Placeholders returns the distinct placeholders of the condition.
func (s *Select) Placeholders() []*queryir.Placeholder {
	out := make([]*queryir.Placeholder, len(s.placeholders))
	copy(out, s.placeholders)
	return out
}
