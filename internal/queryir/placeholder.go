package queryir

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholder is a query parameter resolved when a query runs.
//
// A placeholder is either named (Ph, PhDefault) or positional (Ph1..Ph4,
// PhN). Positional placeholders are numbered from 1 in their names and
// from 0 in Position.
type Placeholder struct {
	name       string
	pos        int
	def        any
	hasDefault bool
}

func (*Placeholder) operandNode() {}

// The first four positional placeholders.
var (
	Ph1 = PhN(1)
	Ph2 = PhN(2)
	Ph3 = PhN(3)
	Ph4 = PhN(4)
)

// Ph returns a named placeholder with no default. Names starting with '#'
// are reserved for positional keys and panic.
func Ph(name string) *Placeholder {
	if name == "" {
		panic("queryir: placeholder name must not be empty")
	}
	if strings.HasPrefix(name, "#") {
		panic(fmt.Sprintf("queryir: placeholder name %q must not start with '#'", name))
	}
	return &Placeholder{name: name, pos: -1}
}

// PhDefault returns a named placeholder with a default value.
func PhDefault(name string, def any) *Placeholder {
	p := Ph(name)
	p.def = def
	p.hasDefault = true
	return p
}

// PhN returns the n-th positional placeholder; PhN(1) is equivalent to Ph1.
func PhN(n int) *Placeholder {
	if n < 1 {
		panic(fmt.Sprintf("queryir: positional placeholder index must be >= 1, got %d", n))
	}
	return &Placeholder{pos: n - 1}
}

// Name returns the placeholder name; empty for positional placeholders.
func (p *Placeholder) Name() string { return p.name }

// Position returns the zero-based position of a positional placeholder.
func (p *Placeholder) Position() (int, bool) {
	if p.name != "" {
		return 0, false
	}
	return p.pos, true
}

// Default returns the default value and whether one exists.
func (p *Placeholder) Default() (any, bool) { return p.def, p.hasDefault }

// Key identifies the placeholder within a query: the name, or '#' and the
// zero-based position. Distinct placeholders with the same name, or the same
// position, share a key and a value.
func (p *Placeholder) Key() string {
	if p.name != "" {
		return p.name
	}
	return "#" + strconv.Itoa(p.pos)
}

func (p *Placeholder) String() string {
	if p.name != "" {
		return "ph_(" + p.name + ")"
	}
	return "ph" + strconv.Itoa(p.pos+1) + "_"
}

// Bindings holds placeholder values for one evaluation, keyed by
// Placeholder.Key.
type Bindings map[string]any

// Lookup returns the value bound to p.
func (b Bindings) Lookup(p *Placeholder) (any, bool) {
	v, ok := b[p.Key()]
	return v, ok
}
