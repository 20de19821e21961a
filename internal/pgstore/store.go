// Package pgstore reads the legacy knowledge graph from PostgreSQL.
//
// The legacy database is read-only from the migrator's point of view;
// Store only runs the queries a source.Reader compiles for it.
package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roach88/geomigrate/internal/querysql"
	"github.com/roach88/geomigrate/internal/source"
)

// Config holds connection settings.
type Config struct {
	DSN      string // connection string for pgxpool
	MaxConns int32  // pool size; zero keeps the pgxpool default
}

// Store is a pgx connection pool over the legacy database.
type Store struct {
	pool *pgxpool.Pool
}

var _ source.Querier = (*Store)(nil)

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases every pooled connection.
func (s *Store) Close() {
	s.pool.Close()
}

// Dialect reports Postgres.
func (s *Store) Dialect() querysql.Dialect {
	return querysql.Postgres
}

// QueryRows runs query and calls scan for each row.
func (s *Store) QueryRows(ctx context.Context, query string, args []any, scan func(source.Scanner) error) error {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}
	return nil
}
