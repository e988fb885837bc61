package store

import (
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/testutil"
)

// quietLogger discards log output in tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// indexedPoint returns a point(x, y) schema whose x field is declared indexed.
func indexedPoint() *predicate.Schema {
	return predicate.MustSchema("point", []predicate.FieldDef{
		predicate.Def("x", predicate.Integer(), predicate.Indexed()),
		predicate.Def("y", predicate.Integer()),
	})
}

// all runs the query and returns the ASP text of each fact in result order.
func all(t *testing.T, q *Select, args ...any) []string {
	t.Helper()
	facts, err := q.All(args...)
	require.NoError(t, err)
	return testutil.Strings(facts)
}

// sorted returns a sorted copy of s.
func sorted(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}
