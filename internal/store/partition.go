package store

import (
	"github.com/roach88/factbase/internal/predicate"
)

// fieldIndex is the multimap for one indexed field.
type fieldIndex struct {
	field *predicate.Field
	mm    *multimap
}

// partition holds all facts of one schema and their indexes.
type partition struct {
	schema   *predicate.Schema
	facts    []*predicate.Fact
	indexes  []*fieldIndex // in priority order
	priority map[*predicate.Field]int
}

// newPartition creates a partition indexing fields in the given order.
// Duplicate fields are ignored.
func newPartition(schema *predicate.Schema, fields []*predicate.Field) *partition {
	p := &partition{
		schema:   schema,
		priority: make(map[*predicate.Field]int, len(fields)),
	}
	for _, f := range fields {
		if _, dup := p.priority[f]; dup {
			continue
		}
		p.priority[f] = len(p.indexes)
		p.indexes = append(p.indexes, &fieldIndex{field: f, mm: newMultimap()})
	}
	return p
}

func (p *partition) add(f *predicate.Fact) {
	p.facts = append(p.facts, f)
	for _, idx := range p.indexes {
		v, ok := f.Value(idx.field)
		if !ok {
			panic("store: index field " + idx.field.String() + " does not belong to " + f.Schema().String())
		}
		idx.mm.add(v, f)
	}
}

// index returns the multimap for field f, or nil if f is not indexed.
func (p *partition) index(f *predicate.Field) *multimap {
	i, ok := p.priority[f]
	if !ok {
		return nil
	}
	return p.indexes[i].mm
}

// lookupPriority implements queryir.Priority for this partition.
func (p *partition) lookupPriority(f *predicate.Field) (int, bool) {
	i, ok := p.priority[f]
	return i, ok
}

func (p *partition) indexedFields() []*predicate.Field {
	out := make([]*predicate.Field, len(p.indexes))
	for i, idx := range p.indexes {
		out[i] = idx.field
	}
	return out
}

func (p *partition) clear() {
	p.facts = nil
	for _, idx := range p.indexes {
		idx.mm.clear()
	}
}
