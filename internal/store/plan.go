package store

import (
	"github.com/google/uuid"

	"github.com/roach88/factbase/internal/queryir"
)

// Scan modes reported by Plan.
const (
	ModeIndexDriven = "index-driven"
	ModeFullScan    = "full-scan"
)

// Plan describes how a Select will be executed.
type Plan struct {
	SchemaID     uuid.UUID // identity of the selected schema
	Schema       string    // schema signature, e.g. "point/2"
	Mode         string    // ModeIndexDriven or ModeFullScan
	IndexField   string    // driving field name (index-driven only)
	Op           queryir.Op
	Key          string   // driving placeholder or literal (index-driven only)
	Where        string   // simplified condition; empty when unconditional
	Fields       []string // fields the condition reads, as "label.name"
	Placeholders []string
	Indexes      []string // indexed fields of the partition, in priority order
	Facts        int      // facts currently in the partition
}

// Explain returns the execution plan without running the query.
func (s *Select) Explain() Plan {
	p := Plan{
		SchemaID: s.part.schema.ID(),
		Schema:   s.part.schema.String(),
		Mode:     ModeFullScan,
		Indexes:  fieldNames(s.part.indexedFields()),
		Facts:    len(s.part.facts),
	}
	if s.where != nil {
		p.Where = s.where.String()
		for _, f := range queryir.Fields(s.where) {
			p.Fields = append(p.Fields, f.String())
		}
	}
	for _, ph := range s.placeholders {
		p.Placeholders = append(p.Placeholders, ph.String())
	}
	if s.drive != nil {
		field, _ := s.drive.Field()
		p.Mode = ModeIndexDriven
		p.IndexField = field.Name()
		p.Op = s.drive.Op
		p.Key = s.drive.Right.String()
	}
	return p
}
