// Package queryir is a small relational query IR for reading the legacy
// store.
//
// The migration reads the legacy properties and relations tables through
// a handful of fixed queries. Expressing them as IR keeps the queries
// independent of the SQL dialect; querysql compiles them for SQLite
// snapshots and for PostgreSQL.
//
// The fragment:
//   - Select(from, bindings, filter, order, limit), optionally DISTINCT
//   - Union of Selects with identical output columns
//   - Predicates: Equals, In, Not, And
//
// There are no joins, no OR, no aggregates. Every query has an explicit
// column list and a total order, so results are deterministic.
//
// Query and Predicate are sealed interfaces:
//
//	switch q := query.(type) {
//	case Select:
//	case Union:
//	}
package queryir
