package testutil

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/symbol"
)

// PointSchema returns a new point(x, y) schema with integer fields and no
// declared indexes. Every call returns a distinct schema.
func PointSchema() *predicate.Schema {
	return predicate.MustSchema("point", []predicate.FieldDef{
		predicate.Def("x", predicate.Integer()),
		predicate.Def("y", predicate.Integer()),
	}, predicate.WithLabel("Point"))
}

// ColourSchema returns a new colour(name, shade) schema: a constant name
// and a string shade defaulting to "plain".
func ColourSchema() *predicate.Schema {
	return predicate.MustSchema("colour", []predicate.FieldDef{
		predicate.Def("name", predicate.Constant()),
		predicate.Def("shade", predicate.String(), predicate.WithDefault("plain")),
	})
}

// Points builds facts of a two-integer schema from x, y pairs.
// It panics if xy has odd length.
func Points(s *predicate.Schema, xy ...int64) []*predicate.Fact {
	if len(xy)%2 != 0 {
		panic("testutil: Points requires x, y pairs")
	}
	out := make([]*predicate.Fact, 0, len(xy)/2)
	for i := 0; i < len(xy); i += 2 {
		out = append(out, s.MustNew(xy[i], xy[i+1]))
	}
	return out
}

// RandomPoints builds n facts of a two-integer schema with x and y drawn
// from [0, span) by src.
func RandomPoints(s *predicate.Schema, src *DeterministicSource, n, span int) []*predicate.Fact {
	out := make([]*predicate.Fact, n)
	for i := range out {
		out[i] = s.MustNew(src.Intn(span), src.Intn(span))
	}
	return out
}

// Strings renders facts in ASP text form, preserving order.
func Strings(facts []*predicate.Fact) []string {
	out := make([]string, len(facts))
	for i, f := range facts {
		out[i] = f.String()
	}
	return out
}

// ParseFacts parses ASP facts, failing the test on a syntax error.
func ParseFacts(t testing.TB, text string) []symbol.Symbol {
	t.Helper()
	syms, err := symbol.ParseFacts(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseFacts() failed: %v", err)
	}
	return syms
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
