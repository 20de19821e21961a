package store

import (
	"context"
	"fmt"
)

// EditRecord is one ledger row.
type EditRecord struct {
	Seq           int64
	Checksum      string
	SpaceID       string
	Name          string
	Author        string
	OpsChecksum   string
	OpCount       int
	EntityCount   int
	PropertyCount int
	RelationCount int
	Body          string // canonical JSON of the edit
}

// RecordEdit appends an edit to the ledger and reports whether a new row
// was written. An edit whose checksum is already recorded is ignored.
func (s *Store) RecordEdit(ctx context.Context, rec EditRecord) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO edits
		(checksum, space_id, name, author, ops_checksum, op_count, entity_count, property_count, relation_count, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(checksum) DO NOTHING
	`,
		rec.Checksum,
		rec.SpaceID,
		rec.Name,
		rec.Author,
		rec.OpsChecksum,
		rec.OpCount,
		rec.EntityCount,
		rec.PropertyCount,
		rec.RelationCount,
		rec.Body,
	)
	if err != nil {
		return false, fmt.Errorf("record edit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record edit: rows affected: %w", err)
	}
	return n > 0, nil
}

// Edits returns ledger rows in append order. An empty spaceID returns
// every space.
//
// Returns an empty slice (not nil) if nothing is recorded.
func (s *Store) Edits(ctx context.Context, spaceID string) ([]EditRecord, error) {
	query := `
		SELECT seq, checksum, space_id, name, author, ops_checksum,
		       op_count, entity_count, property_count, relation_count, body
		FROM edits`
	var args []any
	if spaceID != "" {
		query += " WHERE space_id = ?"
		args = append(args, spaceID)
	}
	query += " ORDER BY seq ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query edits: %w", err)
	}
	defer rows.Close()

	records := []EditRecord{}
	for rows.Next() {
		var r EditRecord
		if err := rows.Scan(
			&r.Seq, &r.Checksum, &r.SpaceID, &r.Name, &r.Author, &r.OpsChecksum,
			&r.OpCount, &r.EntityCount, &r.PropertyCount, &r.RelationCount, &r.Body,
		); err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edits: %w", err)
	}
	return records, nil
}
