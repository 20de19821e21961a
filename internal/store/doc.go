// Package store provides a SQLite snapshot of the legacy knowledge graph.
//
// The snapshot has the same two tables as the legacy store:
//   - properties: one attribute value per row
//   - relations: one directed edge per row
//
// plus an append-only edit ledger recording every edit a migration emits.
// Store implements source.Querier, so a snapshot can stand in for the
// Postgres store in tests, offline runs, and the scenario harness.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// All reads go through queries compiled by querysql, which order every
// result with COLLATE BINARY so iteration order is stable.
package store
