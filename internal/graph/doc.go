// Package graph models the operations written for each migrated space:
// property creation, entity creation with values, and relation creation.
//
// Ops encode to JSON objects tagged by "type". An Edit bundles the ops for
// one space with a name, an author, and checksums.
package graph
