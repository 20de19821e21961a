package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/geomigrate/internal/builder"
	"github.com/roach88/geomigrate/internal/canon"
	"github.com/roach88/geomigrate/internal/compiler"
	"github.com/roach88/geomigrate/internal/config"
	"github.com/roach88/geomigrate/internal/graph"
	"github.com/roach88/geomigrate/internal/ir"
	"github.com/roach88/geomigrate/internal/textnorm"
)

// Source is the legacy graph as the engine sees it. Implemented by
// source.Reader.
type Source interface {
	Spaces(ctx context.Context) ([]string, error)
	Entities(ctx context.Context, spaceID string) ([]string, error)
	IsProperty(ctx context.Context, entityID string) (bool, error)
	ValueType(ctx context.Context, entityID string) (string, bool, error)
	Attributes(ctx context.Context, entityID, spaceID string) ([]ir.AttributeRow, error)
	Relations(ctx context.Context, entityID, spaceID string) ([]ir.RelationRow, error)
}

// Engine migrates spaces from a Source into a Sink.
//
// Thread-safety: Run and MigrateSpace may not be called concurrently on
// the same Engine; Stats may be read at any time.
type Engine struct {
	cfg      config.Config
	src      Source
	sink     Sink
	canon    *canon.Canonicalizer
	builder  *builder.Builder
	ids      canon.Generator
	degraded *builder.CountingObserver
	logger   *slog.Logger
	stats    Stats
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	ids      canon.Generator
	logger   *slog.Logger
	observer builder.Observer
}

// WithIDGenerator sets the generator for new edge IDs.
// Default: canon.RandomGenerator.
func WithIDGenerator(g canon.Generator) Option {
	return func(o *options) { o.ids = g }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver adds an observer for degraded values. Degraded values are
// always logged and counted; the observer sees them after that.
func WithObserver(obs builder.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// New creates an Engine. cfg must already be validated.
func New(cfg config.Config, src Source, sink Sink, opts ...Option) *Engine {
	o := options{ids: canon.RandomGenerator{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	var next builder.Observer = builder.LogObserver{Logger: o.logger}
	if o.observer != nil {
		logObs, extra := next, o.observer
		next = builder.ObserverFunc(func(d builder.DegradedValue) {
			logObs.OnDegraded(d)
			extra.OnDegraded(d)
		})
	}
	degraded := &builder.CountingObserver{Next: next}

	c := canon.New()
	b := builder.New(builder.Config{
		Canonicalizer: c,
		Compiler:      compiler.New(c, cfg.CompilerVocabulary()),
		Normalizer:    textnorm.New(c),
		Attributes:    cfg.BuilderAttributes(),
		IDs:           o.ids,
		Observer:      degraded,
	})

	if cfg.Workers < 1 {
		cfg.Workers = config.DefaultWorkers
	}
	return &Engine{
		cfg:      cfg,
		src:      src,
		sink:     sink,
		canon:    c,
		builder:  b,
		ids:      o.ids,
		degraded: degraded,
		logger:   o.logger,
	}
}

// Stats returns the running counts.
func (e *Engine) Stats() Snapshot {
	s := e.stats.Snapshot()
	s.Degraded = e.degraded.Count()
	return s
}

// Run migrates every configured space, or every space in the source when
// none are configured, in order.
func (e *Engine) Run(ctx context.Context) (Report, error) {
	spaces := e.cfg.Spaces
	if len(spaces) == 0 {
		var err error
		spaces, err = e.src.Spaces(ctx)
		if err != nil {
			return Report{}, sourceError("", "", err)
		}
	}
	e.logger.Info("migration starting", "spaces", len(spaces), "workers", e.cfg.Workers)

	report := Report{Spaces: make([]SpaceReport, 0, len(spaces))}
	for _, space := range spaces {
		sr, err := e.MigrateSpace(ctx, space)
		if err != nil {
			report.Totals = e.Stats()
			return report, err
		}
		report.Spaces = append(report.Spaces, sr)
	}
	report.Totals = e.Stats()

	e.logger.Info("migration finished",
		"spaces", report.Totals.Spaces,
		"entities", report.Totals.Entities,
		"degraded", report.Totals.Degraded,
	)
	return report, nil
}

// MigrateSpace builds the edit for one space and hands it to the sink.
func (e *Engine) MigrateSpace(ctx context.Context, spaceID string) (SpaceReport, error) {
	before := e.Stats()
	log := e.logger.With("space", spaceID)

	entities, err := e.src.Entities(ctx, spaceID)
	if err != nil {
		return SpaceReport{}, sourceError(spaceID, "", err)
	}
	log.Info("space starting", "entities", len(entities))
	e.warnDuplicates(log, entities)

	results := make([][]graph.Op, len(entities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, entity := range entities {
		i, entity := i, entity
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ops, err := e.migrateEntity(gctx, log, spaceID, entity)
			if err != nil {
				return err
			}
			results[i] = ops
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var me *MigrationError
		if !errors.As(err, &me) {
			err = sourceError(spaceID, "", err)
		}
		return SpaceReport{}, err
	}

	var ops []graph.Op
	for _, r := range results {
		ops = append(ops, r...)
	}
	edit, err := graph.NewEdit(spaceID, e.cfg.Author, ops)
	if err != nil {
		return SpaceReport{}, buildError(spaceID, "", err)
	}
	if err := e.sink.Write(ctx, edit); err != nil {
		return SpaceReport{}, sinkError(spaceID, err)
	}
	e.stats.spaces.Add(1)

	sr := SpaceReport{
		SpaceID:      spaceID,
		OpCount:      len(edit.Ops),
		OpsChecksum:  edit.OpsChecksum,
		EditChecksum: edit.EditChecksum,
		Stats:        e.Stats().Sub(before),
	}
	log.Info("space finished",
		"ops", sr.OpCount,
		"entities", sr.Stats.Entities,
		"properties", sr.Stats.Properties,
		"relations", sr.Stats.Relations,
		"degraded", sr.Stats.Degraded,
		"checksum", sr.EditChecksum,
	)
	return sr, nil
}

// warnDuplicates logs legacy entities that collapse to the same canonical
// ID. Both are still migrated.
func (e *Engine) warnDuplicates(log *slog.Logger, entities []string) {
	seen := make(map[string]string, len(entities))
	for _, entity := range entities {
		id := e.canon.Canonicalize(entity)
		if prev, ok := seen[id]; ok {
			log.Warn("duplicate entity id", "id", id, "first", prev, "second", entity)
			continue
		}
		seen[id] = entity
	}
}

// migrateEntity returns the ops of one entity.
func (e *Engine) migrateEntity(ctx context.Context, log *slog.Logger, spaceID, entity string) ([]graph.Op, error) {
	id := e.canon.Canonicalize(entity)

	isProperty, err := e.src.IsProperty(ctx, entity)
	if err != nil {
		return nil, sourceError(spaceID, entity, err)
	}
	var ops []graph.Op
	if isProperty {
		propOps, err := e.propertyOps(ctx, log, entity, id)
		if err != nil {
			return nil, sourceError(spaceID, entity, err)
		}
		ops = append(ops, propOps...)
	}

	attrs, err := e.src.Attributes(ctx, entity, spaceID)
	if err != nil {
		return nil, sourceError(spaceID, entity, err)
	}
	rels, err := e.src.Relations(ctx, entity, spaceID)
	if err != nil {
		return nil, sourceError(spaceID, entity, err)
	}
	rels, err = graph.Reindex(rels)
	if err != nil {
		return nil, buildError(spaceID, entity, err)
	}

	values := e.builder.BuildValues(attrs)
	relOps := graph.RelationOps(id, e.builder.BuildRelations(rels))

	ops = append(ops, graph.CreateEntity{ID: id, Values: values})
	ops = append(ops, relOps...)

	e.stats.entities.Add(1)
	e.stats.values.Add(int64(len(values)))
	e.stats.relations.Add(int64(len(relOps)))
	return ops, nil
}

// propertyOps declares a property and links its renderable types. A
// property whose value type is missing or unmapped gets no ops.
func (e *Engine) propertyOps(ctx context.Context, log *slog.Logger, entity, id string) ([]graph.Op, error) {
	valueType, ok, err := e.src.ValueType(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("value type: %w", err)
	}
	if !ok {
		log.Warn("property with no value type", "entity", entity)
		e.stats.skippedProperties.Add(1)
		return nil, nil
	}
	dataType, ok := e.cfg.DataTypes[valueType]
	if !ok {
		log.Warn("property with unmapped value type", "entity", entity, "value_type", valueType)
		e.stats.skippedProperties.Add(1)
		return nil, nil
	}

	ops := []graph.Op{graph.CreateProperty{ID: id, DataType: dataType}}
	if slices.Contains(e.cfg.RenderableValueTypes, valueType) {
		ops = append(ops, e.renderable(id, valueType))
	}
	if target, ok := e.cfg.PropertyRenderables[entity]; ok {
		ops = append(ops, e.renderable(id, target))
	}

	e.stats.properties.Add(1)
	e.stats.relations.Add(int64(len(ops) - 1))
	return ops, nil
}

func (e *Engine) renderable(from, target string) graph.CreateRelation {
	return graph.CreateRelation{
		ID:         e.ids.Generate(),
		Type:       e.canon.Canonicalize(e.cfg.WellKnown.RenderableType),
		FromEntity: from,
		ToEntity:   e.canon.Canonicalize(target),
	}
}
