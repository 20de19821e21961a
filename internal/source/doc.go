// Package source reads the legacy knowledge graph.
//
// A Reader answers the handful of questions the migration driver asks of
// the legacy store (which spaces exist, which entities live in a space,
// whether an entity is a property, and the attribute and relation rows of
// an entity) by building queryir queries and compiling them for the
// store's SQL dialect. Any store that can run a parameterized query and
// scan its rows satisfies Querier; the SQLite snapshot store and the
// Postgres store both do.
package source
