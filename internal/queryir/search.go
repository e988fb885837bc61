package queryir

import "github.com/roach88/factbase/internal/predicate"

// Priority reports the index priority of a field (lower is preferred) and
// whether the field is indexed at all.
type Priority func(f *predicate.Field) (int, bool)

// Drivable returns the leaf that should drive an index lookup, or nil if
// the query needs a full scan.
//
// A drivable leaf is a FieldCompare whose left side is an indexed field
// and whose right side is a placeholder or literal. The top-level node is
// considered, and AND nodes are searched recursively; among candidates the
// lowest priority wins, with ties going to the first in child order. OR and
// NOT nodes are never searched.
func Drivable(c Comparator, priority Priority) *FieldCompare {
	best, _ := drivable(c, priority)
	return best
}

func drivable(c Comparator, priority Priority) (*FieldCompare, int) {
	switch n := c.(type) {
	case *FieldCompare:
		f, ok := n.Field()
		if !ok {
			return nil, 0
		}
		if _, ok := n.Right.(FieldRef); ok {
			return nil, 0
		}
		p, ok := priority(f)
		if !ok {
			return nil, 0
		}
		return n, p
	case *BoolOp:
		if n.Kind != KindAnd {
			return nil, 0
		}
		var best *FieldCompare
		var bestPriority int
		for _, child := range n.Children {
			cand, p := drivable(child, priority)
			if cand == nil {
				continue
			}
			if best == nil || p < bestPriority {
				best, bestPriority = cand, p
			}
		}
		return best, bestPriority
	default:
		return nil, 0
	}
}

// Placeholders returns the distinct placeholders in c, by Key, in the order
// they are first encountered. When several placeholders share a key the
// first one is returned.
func Placeholders(c Comparator) []*Placeholder {
	var out []*Placeholder
	seen := make(map[string]bool)
	var walk func(Comparator)
	walk = func(c Comparator) {
		switch n := c.(type) {
		case *FieldCompare:
			for _, side := range []Operand{n.Left, n.Right} {
				p, ok := side.(*Placeholder)
				if !ok || seen[p.Key()] {
					continue
				}
				seen[p.Key()] = true
				out = append(out, p)
			}
		case *BoolOp:
			for _, child := range n.Children {
				walk(child)
			}
		}
	}
	if c != nil {
		walk(c)
	}
	return out
}

// Fields returns the distinct fields referenced by c in encounter order.
func Fields(c Comparator) []*predicate.Field {
	var out []*predicate.Field
	seen := make(map[*predicate.Field]bool)
	var walk func(Comparator)
	walk = func(c Comparator) {
		switch n := c.(type) {
		case *FieldCompare:
			for _, side := range []Operand{n.Left, n.Right} {
				ref, ok := side.(FieldRef)
				if !ok || seen[ref.Field] {
					continue
				}
				seen[ref.Field] = true
				out = append(out, ref.Field)
			}
		case *BoolOp:
			for _, child := range n.Children {
				walk(child)
			}
		}
	}
	if c != nil {
		walk(c)
	}
	return out
}
