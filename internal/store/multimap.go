package store

import (
	"cmp"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/queryir"
	"github.com/roach88/factbase/internal/symbol"
)

// multimap maps field values to the facts holding them.
//
// Invariant: keys is strictly sorted by compare and holds exactly one
// entry per key of lists.
type multimap struct {
	keys  []any
	lists map[any][]*predicate.Fact
	// order ranks hash keys by first insertion; it separates distinct keys
	// that compareKeys ties.
	order map[any]int
}

// factKey and symbolKey give facts and symbols a hashable identity that
// agrees with their canonical equality.
type (
	factKey   string
	symbolKey string
	opaqueKey string
)

func newMultimap() *multimap {
	return &multimap{
		lists: make(map[any][]*predicate.Fact),
		order: make(map[any]int),
	}
}

// hashKey returns the map key for v.
func hashKey(v any) any {
	v = predicate.Normalize(v)
	switch x := v.(type) {
	case int64, string:
		return x
	case *predicate.Fact:
		return factKey(x.String())
	case symbol.Symbol:
		return symbolKey(x.String())
	}
	if v != nil && reflect.TypeOf(v).Comparable() {
		return v
	}
	return opaqueKey(fmt.Sprintf("%T:%v", v, v))
}

// kindRank orders values of different kinds relative to each other.
func kindRank(v any) int {
	switch v.(type) {
	case int64:
		return 0
	case string:
		return 1
	case *predicate.Fact:
		return 2
	case symbol.Symbol:
		return 3
	default:
		return 4
	}
}

// compareKeys orders normalised values. Values of the same kind use
// predicate.CompareValues; everything else falls back to kind and then to
// a textual rendering, so distinct values may tie. multimap.compare breaks
// those ties.
func compareKeys(a, b any) int {
	if c, ok := predicate.CompareValues(a, b); ok {
		return c
	}
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	return strings.Compare(fmt.Sprintf("%T:%v", a, a), fmt.Sprintf("%T:%v", b, b))
}

// compare orders keys by compareKeys, breaking ties between values with
// different hash keys by insertion rank. It returns 0 only for keys that
// share a hash key. A probe that was never inserted ranks after every
// stored key.
func (m *multimap) compare(a, b any) int {
	if c := compareKeys(a, b); c != 0 {
		return c
	}
	ha, hb := hashKey(a), hashKey(b)
	if ha == hb {
		return 0
	}
	return cmp.Compare(m.rank(ha), m.rank(hb))
}

func (m *multimap) rank(h any) int {
	if r, ok := m.order[h]; ok {
		return r
	}
	return len(m.order)
}

// add appends f under key.
func (m *multimap) add(key any, f *predicate.Fact) {
	key = predicate.Normalize(key)
	h := hashKey(key)
	if list, ok := m.lists[h]; ok {
		m.lists[h] = append(list, f)
		return
	}

	i := m.bisectLeft(key)
	m.keys = append(m.keys, nil)
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = key
	m.lists[h] = []*predicate.Fact{f}
	m.order[h] = len(m.order)

	if len(m.keys) != len(m.lists) {
		panic(fmt.Sprintf("store: index inconsistency: %d keys, %d lists", len(m.keys), len(m.lists)))
	}
}

// bisectLeft returns the first position whose key is >= probe.
func (m *multimap) bisectLeft(probe any) int {
	return sort.Search(len(m.keys), func(i int) bool {
		return m.compare(m.keys[i], probe) >= 0
	})
}

// bisectRight returns the first position whose key is > probe.
func (m *multimap) bisectRight(probe any) int {
	return sort.Search(len(m.keys), func(i int) bool {
		return m.compare(m.keys[i], probe) > 0
	})
}

// keysFor returns the keys k satisfying k op probe, in key order.
// The result may include keys whose facts then fail the full condition, but
// never omits a key that could satisfy it.
func (m *multimap) keysFor(op queryir.Op, probe any) []any {
	probe = predicate.Normalize(probe)
	switch op {
	case queryir.Eq:
		if _, ok := m.lists[hashKey(probe)]; ok {
			return []any{probe}
		}
		return nil
	case queryir.Ne:
		out := make([]any, 0, len(m.keys))
		for _, k := range m.keys {
			if !predicate.EqualValues(k, probe) {
				out = append(out, k)
			}
		}
		return out
	case queryir.Lt:
		return m.keys[:m.bisectLeft(probe)]
	case queryir.Le:
		return m.keys[:m.bisectRight(probe)]
	case queryir.Gt:
		return m.keys[m.bisectRight(probe):]
	case queryir.Ge:
		return m.keys[m.bisectLeft(probe):]
	default:
		panic(fmt.Sprintf("store: unknown operator %q", string(op)))
	}
}

// facts returns the facts stored under key in insertion order.
func (m *multimap) facts(key any) []*predicate.Fact {
	return m.lists[hashKey(key)]
}

// len returns the number of distinct keys.
func (m *multimap) len() int { return len(m.keys) }

func (m *multimap) clear() {
	m.keys = nil
	m.lists = make(map[any][]*predicate.Fact)
	m.order = make(map[any]int)
}
