package engine

import "sync/atomic"

// Stats counts migration output. All counters are atomic; workers update
// them concurrently. Degraded values are counted by the builder's observer.
type Stats struct {
	spaces            atomic.Int64
	entities          atomic.Int64
	properties        atomic.Int64
	values            atomic.Int64
	relations         atomic.Int64
	skippedProperties atomic.Int64
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Spaces            int64 `json:"spaces"`
	Entities          int64 `json:"entities"`
	Properties        int64 `json:"properties"`
	Values            int64 `json:"values"`
	Relations         int64 `json:"relations"`
	Degraded          int64 `json:"degraded"`
	SkippedProperties int64 `json:"skipped_properties"`
}

// Snapshot returns the current counts.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Spaces:            s.spaces.Load(),
		Entities:          s.entities.Load(),
		Properties:        s.properties.Load(),
		Values:            s.values.Load(),
		Relations:         s.relations.Load(),
		SkippedProperties: s.skippedProperties.Load(),
	}
}

// Sub returns the counts accumulated since earlier.
func (s Snapshot) Sub(earlier Snapshot) Snapshot {
	return Snapshot{
		Spaces:            s.Spaces - earlier.Spaces,
		Entities:          s.Entities - earlier.Entities,
		Properties:        s.Properties - earlier.Properties,
		Values:            s.Values - earlier.Values,
		Relations:         s.Relations - earlier.Relations,
		Degraded:          s.Degraded - earlier.Degraded,
		SkippedProperties: s.SkippedProperties - earlier.SkippedProperties,
	}
}

// SpaceReport summarizes one migrated space.
type SpaceReport struct {
	SpaceID      string   `json:"space_id"`
	OpCount      int      `json:"op_count"`
	OpsChecksum  string   `json:"ops_checksum"`
	EditChecksum string   `json:"checksum"`
	Stats        Snapshot `json:"stats"`
}

// Report summarizes a run.
type Report struct {
	Spaces []SpaceReport `json:"spaces"`
	Totals Snapshot      `json:"totals"`
}
