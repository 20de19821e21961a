// Package engine drives a migration from the legacy graph to edits.
//
// ARCHITECTURE:
//
// Spaces are migrated one at a time. Within a space, entities fan out over
// a bounded errgroup; each worker reads its entity's rows from the Source,
// builds values and relations, and returns the entity's ops. Results are
// stored by entity index, so the edit for a space lists ops in entity
// order no matter how the workers interleave.
//
// Per entity, ops are emitted in a fixed order:
//  1. CreateProperty, when the entity is a property with a mapped value type
//  2. renderable-type relations for that property
//  3. CreateEntity with the entity's values
//  4. CreateRelation for each relation entry, relation types in sorted order
//
// The finished edit goes to a Sink. The first failing entity cancels the
// rest of its space and the run stops with a MigrationError.
//
// The engine itself holds no per-space state beyond Stats, which is
// updated atomically.
package engine
