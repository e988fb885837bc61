// Package harness runs query scenarios against a fact base.
//
// A scenario names a directory of CUE predicate declarations, a block of
// ASP facts and a list of queries with their expected results:
//
//	name: point_queries
//	description: index-driven range queries
//	schemas: schemas
//	index: [point.x]
//	facts: |
//	  point(1,1). point(2,4). point(3,9).
//	queries:
//	  - name: x_below_3
//	    select: point
//	    where: {field: x, op: "<", value: 3}
//	    expect: ["point(1,1)", "point(2,4)"]
//	  - name: by_position
//	    select: point
//	    where: {field: x, op: "=", placeholder: ph1}
//	    args: [2]
//	    expect: ["point(2,4)"]
//	  - name: unbound
//	    select: point
//	    where: {field: x, op: "=", placeholder: ph1}
//	    expect_error: UNBOUND_PLACEHOLDER
//
// Where nodes are `and`, `or`, `not`, `static`, or a comparison of a field
// against exactly one of `value`, `placeholder` or `other_field`. Placeholders
// named ph1, ph2, ... are positional; any other name is a named placeholder,
// optionally with a `default`.
//
// Expected facts are compared as a set, since index-driven and full-scan
// queries return matches in different orders.
//
// # Deterministic Testing
//
// Each scenario runs against a fresh fact base with logging discarded, and
// query results are sorted before they are recorded, so RunWithGolden
// snapshots are stable across runs.
package harness
