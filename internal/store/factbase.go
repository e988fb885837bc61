package store

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/roach88/factbase/internal/predicate"
)

// FactBase stores facts of many schemas, partitioned by schema identity.
//
// The zero value is not usable; create one with New.
type FactBase struct {
	logger *slog.Logger

	// index lists the fields requested with WithIndex, grouped by schema in
	// the order given.
	index      map[*predicate.Schema][]*predicate.Field
	indexOrder []*predicate.Schema

	parts map[*predicate.Schema]*partition
	order []*partition
}

// Option configures a FactBase.
type Option func(*FactBase)

// WithIndex indexes the given fields, in priority order, in addition to the
// fields their schemas declare Indexed. Fields may belong to different
// schemas.
func WithIndex(fields ...*predicate.Field) Option {
	return func(fb *FactBase) {
		for _, f := range fields {
			if f == nil {
				panic("store: WithIndex given a nil field")
			}
			s := f.Schema()
			if _, seen := fb.index[s]; !seen {
				fb.indexOrder = append(fb.indexOrder, s)
			}
			fb.index[s] = append(fb.index[s], f)
		}
	}
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(fb *FactBase) {
		fb.logger = logger
	}
}

// New creates an empty fact base.
// Partitions for schemas named by WithIndex are created eagerly, in the
// order the schemas were first given.
func New(opts ...Option) *FactBase {
	fb := &FactBase{
		logger: slog.Default(),
		index:  make(map[*predicate.Schema][]*predicate.Field),
		parts:  make(map[*predicate.Schema]*partition),
	}
	for _, opt := range opts {
		opt(fb)
	}
	for _, s := range fb.indexOrder {
		fb.partition(s)
	}
	return fb
}

// partition returns the partition for s, creating it on first use.
func (fb *FactBase) partition(s *predicate.Schema) *partition {
	if p, ok := fb.parts[s]; ok {
		return p
	}

	fields := fb.indexFields(s)
	for _, f := range fields {
		if f.Schema() != s {
			panic(fmt.Sprintf("store: index field %s does not belong to %s", f, s))
		}
	}

	p := newPartition(s, fields)
	fb.parts[s] = p
	fb.order = append(fb.order, p)

	fb.logger.Debug("partition created",
		"schema", s.String(),
		"schema_id", s.ID().String(),
		"arity", s.Arity(),
		"indexed_fields", fieldNames(p.indexedFields()),
	)
	return p
}

// indexFields returns the WithIndex fields of s followed by its declared
// Indexed fields. newPartition drops duplicates.
func (fb *FactBase) indexFields(s *predicate.Schema) []*predicate.Field {
	fields := slices.Clone(fb.index[s])
	return append(fields, s.IndexedFields()...)
}

// Add stores each fact in its schema's partition and indexes.
// Facts are not deduplicated.
func (fb *FactBase) Add(facts ...*predicate.Fact) {
	for _, f := range facts {
		if f == nil {
			panic("store: Add given a nil fact")
		}
		fb.partition(f.Schema()).add(f)
	}
}

// AddSeq stores every fact of seq.
func (fb *FactBase) AddSeq(seq iter.Seq[*predicate.Fact]) {
	for f := range seq {
		fb.Add(f)
	}
}

// Select starts a query over the facts of schema s. The partition is
// created if needed, so facts added later are visible to the query.
func (fb *FactBase) Select(s *predicate.Schema) *Select {
	if s == nil {
		panic("store: Select given a nil schema")
	}
	return newSelect(fb, fb.partition(s))
}

// Clear removes every fact. Partitions and their index definitions remain.
func (fb *FactBase) Clear() {
	for _, p := range fb.order {
		p.clear()
	}
	fb.logger.Debug("fact base cleared", "partitions", len(fb.order))
}

// Schemas returns the schemas with a partition, in creation order.
func (fb *FactBase) Schemas() []*predicate.Schema {
	out := make([]*predicate.Schema, len(fb.order))
	for i, p := range fb.order {
		out[i] = p.schema
	}
	return out
}

// Facts returns a copy of the facts of schema s in insertion order.
func (fb *FactBase) Facts(s *predicate.Schema) []*predicate.Fact {
	p, ok := fb.parts[s]
	if !ok {
		return nil
	}
	return slices.Clone(p.facts)
}

// IndexedFields returns the indexed fields of schema s in priority order.
func (fb *FactBase) IndexedFields(s *predicate.Schema) []*predicate.Field {
	if p, ok := fb.parts[s]; ok {
		return p.indexedFields()
	}
	return newPartition(s, fb.indexFields(s)).indexedFields()
}

// Len returns the total number of stored facts.
func (fb *FactBase) Len() int {
	n := 0
	for _, p := range fb.order {
		n += len(p.facts)
	}
	return n
}

func fieldNames(fields []*predicate.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name()
	}
	return out
}
