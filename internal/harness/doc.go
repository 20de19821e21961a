// Package harness runs migration scenarios as executable contract tests.
//
// A scenario seeds an in-memory legacy snapshot, runs the full migration
// pipeline over it, and checks assertions against the emitted ops.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	spaces: [ETLCku7ZPvqysA9sHDw58K]   # optional; default: every space
//	attributes:
//	  - id: p1
//	    entity_id: alice
//	    space_id: ETLCku7ZPvqysA9sHDw58K
//	    attribute_id: LuBWqZAu6pz54eiJS5mLv8
//	    text_value: Alice
//	    value_type: 1
//	relations:
//	  - id: r1
//	    type_id: knows
//	    from_entity_id: alice
//	    to_entity_id: bob
//	    index: a0
//	    space_id: ETLCku7ZPvqysA9sHDw58K
//	assertions:
//	  - type: value_equals
//	    entity: alice
//	    attribute: LuBWqZAu6pz54eiJS5mLv8
//	    value: Alice
//
// Entity, attribute, and relation type IDs in assertions are legacy IDs;
// the harness canonicalizes them before comparing.
//
// # Assertion Types
//
//   - value_equals: the entity has a value for the attribute equal to value
//   - value_absent: the entity has no value for the attribute
//   - value_options: the value's options equal options ({} for none)
//   - relation_count: the entity has count outgoing relations, optionally
//     of one relation_type
//   - property_data_type: the entity is declared a property of data_type
//   - degraded_count: exactly count values were kept untranslated
//
// # Deterministic Testing
//
// Scenarios run on a single worker with sequential edge IDs
// (testutil.SequenceGenerator), so the emitted ops are identical across
// runs and can be compared against golden files.
package harness
