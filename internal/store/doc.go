// Package store provides the in-memory fact base and its query engine.
//
// A FactBase partitions facts by schema. Each partition keeps:
//   - Facts: every fact added, in insertion order, duplicates included
//   - Indexes: one sorted multimap per indexed field, kept consistent with
//     the fact list on every insertion
//
// Queries are built with FactBase.Select and a queryir.Comparator:
//
//	q := fb.Select(point).Where(queryir.On(point.Field("x")).Lt(queryir.Ph1))
//	facts, err := q.Get(3)
//
// # Planning
//
// Where simplifies the condition and searches it for a drivable leaf
// (queryir.Drivable). If one exists the query walks the matching keys of
// that field's index; otherwise it scans the partition. In both cases the
// full condition is re-evaluated on every candidate, so an index changes
// how many facts are visited, never which are returned.
//
// Index priority follows registration order: fields passed to WithIndex
// first, then fields the schema declares Indexed.
//
// # Concurrency
//
// FactBase is not safe for concurrent use. Result sequences read the live
// partition; adding to or clearing the fact base while a sequence from it
// is being consumed is undefined.
package store
