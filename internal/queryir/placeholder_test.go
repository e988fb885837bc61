package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionalPlaceholders(t *testing.T) {
	for i, p := range []*Placeholder{Ph1, Ph2, Ph3, Ph4} {
		pos, ok := p.Position()
		assert.True(t, ok)
		assert.Equal(t, i, pos)
		assert.Empty(t, p.Name())
	}

	assert.Equal(t, Ph1.Key(), PhN(1).Key())
	assert.Equal(t, "ph1_", Ph1.String())
	assert.Panics(t, func() { PhN(0) })
}

func TestNamedPlaceholders(t *testing.T) {
	p := Ph("limit")
	_, ok := p.Position()
	assert.False(t, ok)
	assert.Equal(t, "limit", p.Key())
	assert.Equal(t, "ph_(limit)", p.String())

	_, ok = p.Default()
	assert.False(t, ok)

	d := PhDefault("limit", 10)
	v, ok := d.Default()
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, p.Key(), d.Key())

	assert.Panics(t, func() { Ph("") })
	assert.Panics(t, func() { Ph("#0") }, "would share Ph1's key")
	assert.Panics(t, func() { PhDefault("#x", 1) })
}

func TestBindingsLookup(t *testing.T) {
	b := Bindings{"limit": 3, "#1": "x"}

	v, ok := b.Lookup(Ph("limit"))
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = b.Lookup(Ph2)
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = b.Lookup(Ph1)
	assert.False(t, ok)

	_, ok = Bindings(nil).Lookup(Ph1)
	assert.False(t, ok)
}
