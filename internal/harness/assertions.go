package harness

import (
	"fmt"
	"slices"
	"strings"
)

// ExpectationError describes one unmet query expectation.
type ExpectationError struct {
	Query    string
	Kind     string // "facts", "count", "error" or "mode"
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	return fmt.Sprintf("query %s: %s: expected %s, got %s", e.Query, e.Kind, e.Expected, e.Actual)
}

// CheckExpectations compares a query result with the query's expectations
// and returns one message per mismatch.
func CheckExpectations(q Query, qr QueryResult) []string {
	var errs []string
	add := func(kind, expected, actual string) {
		errs = append(errs, (&ExpectationError{Query: q.Name, Kind: kind, Expected: expected, Actual: actual}).Error())
	}

	if q.ExpectError != "" {
		if qr.Error != q.ExpectError {
			add("error", q.ExpectError, orNone(qr.Error))
		}
	} else if qr.Error != "" {
		add("error", "none", qr.Error)
		return errs
	}

	if q.Expect != nil {
		want := slices.Clone(q.Expect)
		slices.Sort(want)
		if !slices.Equal(want, qr.Facts) {
			add("facts", formatFacts(want), formatFacts(qr.Facts))
		}
	}

	if q.Count != nil && *q.Count != len(qr.Facts) {
		add("count", fmt.Sprint(*q.Count), fmt.Sprint(len(qr.Facts)))
	}

	if q.Mode != "" && q.Mode != qr.Mode {
		add("mode", q.Mode, qr.Mode)
	}

	return errs
}

func formatFacts(facts []string) string {
	return "[" + strings.Join(facts, " ") + "]"
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
