package predicate

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factbase/internal/symbol"
)

func TestUnifierFacts(t *testing.T) {
	point := pointSchema(t)
	named := MustSchema("point", []FieldDef{Def("x", Integer()), Def("label", String())})
	colour := MustSchema("colour", []FieldDef{Def("name", Constant())})

	u := NewUnifier(point, named, colour)

	syms := []symbol.Symbol{
		symbol.MustParse("point(1,2)"),
		symbol.MustParse(`point(1,"a")`),
		symbol.MustParse("colour(red)"),
		symbol.MustParse("colour(1)"),
		symbol.MustParse("other(1)"),
		symbol.MustParse("7"),
	}

	facts := slices.Collect(u.Facts(slices.Values(syms)))
	require.Len(t, facts, 3)

	assert.Same(t, point, facts[0].Schema())
	assert.Same(t, named, facts[1].Schema())
	assert.Same(t, colour, facts[2].Schema())
}

func TestUnifierStopsEarly(t *testing.T) {
	point := pointSchema(t)
	u := NewUnifier(point)

	syms := []symbol.Symbol{
		symbol.MustParse("point(1,2)"),
		symbol.MustParse("point(2,3)"),
	}

	var seen int
	for range u.Facts(slices.Values(syms)) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}
