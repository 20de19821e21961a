package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/roach88/geomigrate/internal/ir"
)

// InsertAttributes writes attribute rows in one transaction.
// Uses ON CONFLICT(id) DO NOTHING, so seeding the same rows twice is a no-op.
func (s *Store) InsertAttributes(ctx context.Context, rows []ir.AttributeRow) error {
	return s.inTx(ctx, "insert attributes", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO properties
			(id, entity_id, space_id, attribute_id, text_value, number_value, boolean_value,
			 language_option, format_option, unit_option, value_type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, row := range rows {
			_, err := stmt.ExecContext(ctx,
				row.ID,
				row.EntityID,
				row.SpaceID,
				row.AttributeID,
				row.TextValue,
				row.NumberValue,
				row.BooleanValue,
				nullable(row.LanguageOption),
				nullable(row.FormatOption),
				nullable(row.UnitOption),
				valueTypeCode(row.ValueType),
			)
			if err != nil {
				return fmt.Errorf("row %s: %w", row.ID, err)
			}
		}
		return nil
	})
}

// InsertRelations writes relation rows in one transaction.
// Uses ON CONFLICT(id) DO NOTHING, so seeding the same rows twice is a no-op.
func (s *Store) InsertRelations(ctx context.Context, rows []ir.RelationRow) error {
	return s.inTx(ctx, "insert relations", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO relations
			(id, type_id, from_entity_id, to_entity_id, to_space_id, "index", space_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, row := range rows {
			_, err := stmt.ExecContext(ctx,
				row.ID,
				row.TypeID,
				row.FromEntityID,
				row.ToEntityID,
				nullable(row.ToSpaceID),
				nullable(row.Index),
				row.SpaceID,
			)
			if err != nil {
				return fmt.Errorf("row %s: %w", row.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback() // no-op after commit

	if err := fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}

// nullable maps the empty string to NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valueTypeCode(k ir.ValueKind) any {
	if k == ir.KindUnknown {
		return nil
	}
	return strconv.Itoa(int(k))
}
