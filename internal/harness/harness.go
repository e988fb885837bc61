package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/factbase/internal/compiler"
	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/store"
	"github.com/roach88/factbase/internal/symbol"
)

// Harness executes one scenario against a fresh fact base.
type Harness struct {
	registry *compiler.Registry
	fb       *store.FactBase
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Compile the scenario's CUE declarations
// 2. Build a fact base with the requested indexes
// 3. Parse and unify the scenario facts
// 4. Run each query and check its expectations
//
// Setup failures (bad declarations, facts that match no predicate, a
// malformed where clause) are returned as errors; unmet expectations are
// recorded in the result.
func Run(scenario *Scenario) (*Result, error) {
	registry, err := compiler.LoadDir(scenario.Schemas)
	if err != nil {
		return nil, fmt.Errorf("failed to load schemas: %w", err)
	}

	h, err := newHarness(registry, scenario.Index)
	if err != nil {
		return nil, err
	}
	if err := h.loadFacts(scenario.Facts); err != nil {
		return nil, fmt.Errorf("failed to load facts: %w", err)
	}

	result := NewResult()
	for _, q := range scenario.Queries {
		qr, err := h.runQuery(q)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", q.Name, err)
		}
		result.AddQuery(qr)
		for _, msg := range CheckExpectations(q, qr) {
			result.AddError(msg)
		}
	}
	return result, nil
}

func newHarness(registry *compiler.Registry, index []string) (*Harness, error) {
	fields := make([]*predicate.Field, 0, len(index))
	for _, ref := range index {
		f, err := registry.Field(ref)
		if err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}
		fields = append(fields, f)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Harness{
		registry: registry,
		fb:       store.New(store.WithIndex(fields...), store.WithLogger(logger)),
		logger:   logger,
	}, nil
}

func (h *Harness) loadFacts(text string) error {
	syms, err := symbol.ParseFacts(strings.NewReader(text))
	if err != nil {
		return err
	}
	u := h.registry.Unifier()
	for _, sym := range syms {
		f, ok := u.Unify(sym)
		if !ok {
			return fmt.Errorf("fact %s matches no declared predicate", sym)
		}
		h.fb.Add(f)
	}
	h.logger.Debug("facts loaded", "count", len(syms))
	return nil
}

func (h *Harness) runQuery(q Query) (QueryResult, error) {
	schema, ok := h.registry.Lookup(q.Select)
	if !ok {
		return QueryResult{}, fmt.Errorf("unknown predicate %q", q.Select)
	}

	sel := h.fb.Select(schema)
	if q.Where != nil {
		cond, err := q.Where.build(schema)
		if err != nil {
			return QueryResult{}, fmt.Errorf("where: %w", err)
		}
		sel.Where(cond)
	}

	plan := sel.Explain()
	qr := QueryResult{
		Name:       q.Name,
		Mode:       plan.Mode,
		IndexField: plan.IndexField,
		Where:      plan.Where,
		Facts:      []string{},
	}

	facts, err := h.execute(sel, q)
	if err != nil {
		var qe *store.QueryError
		if !errors.As(err, &qe) {
			return QueryResult{}, err
		}
		qr.Error = string(qe.Code)
		return qr, nil
	}
	for _, f := range facts {
		qr.Facts = append(qr.Facts, f.String())
	}
	slices.Sort(qr.Facts)
	return qr, nil
}

func (h *Harness) execute(sel *store.Select, q Query) ([]*predicate.Fact, error) {
	args := slices.Clone(q.Args)
	if len(q.NamedArgs) > 0 {
		names := make([]string, 0, len(q.NamedArgs))
		for name := range q.NamedArgs {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			args = append(args, store.Arg(name, q.NamedArgs[name]))
		}
	}

	if q.Unique {
		f, err := sel.GetUnique(args...)
		if err != nil {
			return nil, err
		}
		return []*predicate.Fact{f}, nil
	}
	return sel.All(args...)
}
