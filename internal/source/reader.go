package source

import (
	"context"
	"fmt"

	"github.com/roach88/geomigrate/internal/ir"
	"github.com/roach88/geomigrate/internal/queryir"
	"github.com/roach88/geomigrate/internal/querysql"
)

// Scanner copies the current row into dest.
type Scanner interface {
	Scan(dest ...any) error
}

// Querier runs a compiled query and calls scan once per row, in order.
type Querier interface {
	Dialect() querysql.Dialect
	QueryRows(ctx context.Context, query string, args []any, scan func(Scanner) error) error
}

// Vocabulary holds the legacy IDs the reader filters on. All IDs are in
// their raw legacy form, as stored in the source tables.
type Vocabulary struct {
	Types      string
	Property   string
	ValueType  string
	NativeType string
	Type       string
	Image      string
	URL        string

	// ExcludedAttributes are attribute IDs never read as values. They
	// describe graph structure rather than content.
	ExcludedAttributes []string
}

// Reader reads legacy rows through a Querier.
type Reader struct {
	q        Querier
	compiler *querysql.SQLCompiler
	vocab    Vocabulary
}

// NewReader returns a Reader over q.
func NewReader(q Querier, vocab Vocabulary) *Reader {
	return &Reader{
		q:        q,
		compiler: querysql.NewSQLCompiler(q.Dialect()),
		vocab:    vocab,
	}
}

// Spaces returns every space that owns at least one attribute or relation
// row, in byte order.
func (r *Reader) Spaces(ctx context.Context) ([]string, error) {
	q := queryir.Union{Queries: []queryir.Select{
		{From: "properties", Bindings: []queryir.Binding{queryir.Col("space_id")}},
		{From: "relations", Bindings: []queryir.Binding{queryir.Col("space_id")}},
	}}
	spaces, err := r.strings(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("read spaces: %w", err)
	}
	return spaces, nil
}

// Entities returns the entities of a space: every entity with an
// attribute row or an outgoing relation in it, de-duplicated, in byte
// order.
func (r *Reader) Entities(ctx context.Context, spaceID string) ([]string, error) {
	q := queryir.Union{Queries: []queryir.Select{
		{
			From:     "properties",
			Bindings: []queryir.Binding{queryir.Col("entity_id")},
			Filter:   queryir.Eq("space_id", spaceID),
		},
		{
			From:     "relations",
			Bindings: []queryir.Binding{{Field: "from_entity_id", As: "entity_id"}},
			Filter:   queryir.Eq("space_id", spaceID),
		},
	}}
	entities, err := r.strings(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("read entities of space %s: %w", spaceID, err)
	}
	return entities, nil
}

// IsProperty reports whether entityID is typed as a property in any space.
func (r *Reader) IsProperty(ctx context.Context, entityID string) (bool, error) {
	q := queryir.Select{
		From:     "relations",
		Bindings: []queryir.Binding{queryir.Col("id")},
		Filter: queryir.All(
			queryir.Eq("from_entity_id", entityID),
			queryir.Eq("type_id", r.vocab.Types),
			queryir.Eq("to_entity_id", r.vocab.Property),
		),
		Limit: 1,
	}
	ids, err := r.strings(ctx, q)
	if err != nil {
		return false, fmt.Errorf("detect property %s: %w", entityID, err)
	}
	return len(ids) > 0, nil
}

// ValueType returns the target of the first value-type relation of a
// property, ordered by relation id. ok is false when there is none.
func (r *Reader) ValueType(ctx context.Context, entityID string) (valueType string, ok bool, err error) {
	q := queryir.Select{
		From:     "relations",
		Bindings: []queryir.Binding{queryir.Col("id"), queryir.Col("to_entity_id")},
		Filter: queryir.All(
			queryir.Eq("from_entity_id", entityID),
			queryir.Eq("type_id", r.vocab.ValueType),
		),
		OrderBy: []string{"id"},
		Limit:   1,
	}
	err = r.run(ctx, q, func(row Scanner) error {
		var id string
		ok = true
		return row.Scan(&id, &valueType)
	})
	if err != nil {
		return "", false, fmt.Errorf("read value type of %s: %w", entityID, err)
	}
	return valueType, ok, nil
}

// Attributes returns the attribute rows of an entity in a space, skipping
// excluded attributes, ordered by row id.
func (r *Reader) Attributes(ctx context.Context, entityID, spaceID string) ([]ir.AttributeRow, error) {
	q := queryir.Select{
		From: "properties",
		Bindings: []queryir.Binding{
			queryir.Col("id"),
			queryir.Col("entity_id"),
			queryir.Col("space_id"),
			queryir.Col("attribute_id"),
			queryir.Col("text_value"),
			queryir.Col("number_value"),
			queryir.Col("boolean_value"),
			{Field: "value_type", As: "value_type", Cast: "TEXT"},
			queryir.Col("unit_option"),
			queryir.Col("language_option"),
			queryir.Col("format_option"),
		},
		Filter: queryir.All(
			queryir.Eq("entity_id", entityID),
			queryir.Eq("space_id", spaceID),
			queryir.Not{Predicate: queryir.InStrings("attribute_id", r.vocab.ExcludedAttributes)},
		),
		OrderBy: []string{"id"},
	}

	var rows []ir.AttributeRow
	err := r.run(ctx, q, func(s Scanner) error {
		var (
			row                    ir.AttributeRow
			valueType              *string
			unit, language, format *string
		)
		if err := s.Scan(
			&row.ID, &row.EntityID, &row.SpaceID, &row.AttributeID,
			&row.TextValue, &row.NumberValue, &row.BooleanValue,
			&valueType, &unit, &language, &format,
		); err != nil {
			return err
		}
		if valueType != nil {
			row.ValueType = ir.ParseValueKind(*valueType)
		}
		row.UnitOption = deref(unit)
		row.LanguageOption = deref(language)
		row.FormatOption = deref(format)
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read attributes of %s in %s: %w", entityID, spaceID, err)
	}
	return rows, nil
}

// Relations returns the outgoing relation rows of an entity in a space,
// ordered by row id. Structural edges are skipped: the property type
// marker, every value-type edge, and the type and native-type markers of
// the image and url entities.
func (r *Reader) Relations(ctx context.Context, entityID, spaceID string) ([]ir.RelationRow, error) {
	v := r.vocab
	typed := func(from, to string) queryir.Predicate {
		preds := []queryir.Predicate{queryir.Eq("type_id", v.Types), queryir.Eq("to_entity_id", to)}
		if from != "" {
			preds = append([]queryir.Predicate{queryir.Eq("from_entity_id", from)}, preds...)
		}
		return queryir.Not{Predicate: queryir.All(preds...)}
	}

	q := queryir.Select{
		From: "relations",
		Bindings: []queryir.Binding{
			queryir.Col("id"),
			queryir.Col("type_id"),
			queryir.Col("from_entity_id"),
			queryir.Col("to_entity_id"),
			queryir.Col("to_space_id"),
			queryir.Col("index"),
			queryir.Col("space_id"),
		},
		Filter: queryir.All(
			queryir.Eq("from_entity_id", entityID),
			queryir.Eq("space_id", spaceID),
			typed("", v.Property),
			queryir.Not{Predicate: queryir.Eq("type_id", v.ValueType)},
			typed(v.Image, v.NativeType),
			typed(v.URL, v.NativeType),
			typed(v.Image, v.Type),
			typed(v.URL, v.Type),
		),
		OrderBy: []string{"id"},
	}

	var rows []ir.RelationRow
	err := r.run(ctx, q, func(s Scanner) error {
		var (
			row          ir.RelationRow
			toSpace, idx *string
		)
		if err := s.Scan(
			&row.ID, &row.TypeID, &row.FromEntityID, &row.ToEntityID,
			&toSpace, &idx, &row.SpaceID,
		); err != nil {
			return err
		}
		row.ToSpaceID = deref(toSpace)
		row.Index = deref(idx)
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read relations of %s in %s: %w", entityID, spaceID, err)
	}
	return rows, nil
}

func (r *Reader) run(ctx context.Context, q queryir.Query, scan func(Scanner) error) error {
	sql, args, err := r.compiler.Compile(q)
	if err != nil {
		return err
	}
	return r.q.QueryRows(ctx, sql, args, scan)
}

// strings runs a single-column query.
func (r *Reader) strings(ctx context.Context, q queryir.Query) ([]string, error) {
	var out []string
	err := r.run(ctx, q, func(s Scanner) error {
		var v string
		if err := s.Scan(&v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
