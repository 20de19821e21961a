package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/geomigrate/internal/builder"
	"github.com/roach88/geomigrate/internal/canon"
	"github.com/roach88/geomigrate/internal/config"
	"github.com/roach88/geomigrate/internal/engine"
	"github.com/roach88/geomigrate/internal/source"
	"github.com/roach88/geomigrate/internal/store"
	"github.com/roach88/geomigrate/internal/testutil"
)

// Author is the edit author used for scenario runs.
const Author = "0x0000000000000000000000000000000000000000"

// Harness is the scenario execution environment.
type Harness struct {
	store  *store.Store
	ids    *testutil.SequenceGenerator
	canon  *canon.Canonicalizer
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory snapshot for isolation.
// Execution flow:
//  1. Seed the snapshot with the scenario's rows
//  2. Migrate the configured (or discovered) spaces on one worker
//  3. Evaluate assertions against the emitted edits
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		ids:    testutil.NewSequenceGenerator(),
		canon:  canon.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	if err := h.seed(ctx, scenario); err != nil {
		return nil, err
	}

	result := NewResult()
	if err := h.migrate(ctx, scenario, result); err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions, h.canon) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) seed(ctx context.Context, scenario *Scenario) error {
	if err := h.store.InsertAttributes(ctx, scenario.Attributes); err != nil {
		return fmt.Errorf("failed to seed attributes: %w", err)
	}
	if err := h.store.InsertRelations(ctx, scenario.Relations); err != nil {
		return fmt.Errorf("failed to seed relations: %w", err)
	}
	return nil
}

func (h *Harness) migrate(ctx context.Context, scenario *Scenario, result *Result) error {
	cfg := config.Default()
	cfg.Author = Author
	cfg.Workers = 1
	cfg.Spaces = scenario.Spaces

	sink := &engine.MemorySink{}
	eng := engine.New(cfg, source.NewReader(h.store, cfg.SourceVocabulary()), sink,
		engine.WithIDGenerator(h.ids),
		engine.WithLogger(h.logger),
		engine.WithObserver(builder.ObserverFunc(func(d builder.DegradedValue) {
			result.Degraded = append(result.Degraded, d)
		})),
	)

	report, err := eng.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	result.Edits = sink.Edits
	result.Stats = report.Totals
	return nil
}
