package harness

import (
	"github.com/roach88/geomigrate/internal/builder"
	"github.com/roach88/geomigrate/internal/engine"
	"github.com/roach88/geomigrate/internal/graph"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool

	// Errors contains one message per failed assertion.
	Errors []string

	// Edits are the emitted edits, one per migrated space.
	Edits []graph.Edit

	// Degraded lists values kept untranslated, in emission order.
	Degraded []builder.DegradedValue

	// Stats are the engine totals for the run.
	Stats engine.Snapshot
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Ops returns every op of every edit, in emission order.
func (r *Result) Ops() []graph.Op {
	var ops []graph.Op
	for _, e := range r.Edits {
		ops = append(ops, e.Ops...)
	}
	return ops
}
