// Package fragment defines the structured query fragments of the target
// data model: the Structured Filter and the Structured Selector.
//
// Both are plain values built by the compiler package from legacy filter
// and selector expressions. They are encoded to JSON objects with ToIR or
// Encode and stored as text values on migrated entities.
//
// Encoded shapes:
//
//	Filter:  {"spaceId": {"in": [ids]}, "filter": {<id>: {"is": id}, "_relation": {<alias>: {"is": id}}}}
//
//	Property:        {<id>: {}}
//	FromProperty:    {"_relation": {"from": {<id>: {}}}}
//	Relation:        {<id>: {}}
//	RelationEntity:  {"_relation": {"entity": {<id>: {}}}}
//	Empty:           no encoding
//
// Selector is a sealed interface. Switches over it in this package are
// exhaustive, so adding a variant means updating Encode and Validate.
package fragment
