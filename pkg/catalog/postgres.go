package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCatalog implements Provider against a live Postgres database via
// pgx, querying information_schema.columns through pgx's pool/Query API for
// read-only schema lookups.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalog connects to connString and returns a ready Provider.
func NewPostgresCatalog(ctx context.Context, connString string) (*PostgresCatalog, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("catalog: connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("catalog: ping postgres: %w", err)
	}
	return &PostgresCatalog{pool: pool}, nil
}

func (c *PostgresCatalog) TableColumns(ctx context.Context, schema, table string) ([]string, bool, error) {
	if schema == "" {
		schema = "public"
	}
	rows, err := c.pool.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`, schema, table)
	if err != nil {
		return nil, false, fmt.Errorf("catalog: query columns for %s.%s: %w", schema, table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, false, fmt.Errorf("catalog: scan column name: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("catalog: iterate columns for %s.%s: %w", schema, table, err)
	}
	return columns, len(columns) > 0, nil
}

func (c *PostgresCatalog) HasTable(ctx context.Context, schema, table string) (bool, error) {
	if schema == "" {
		schema = "public"
	}
	var exists bool
	err := c.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2
		)
	`, schema, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("catalog: check table %s.%s: %w", schema, table, err)
	}
	return exists, nil
}

func (c *PostgresCatalog) Close() error {
	c.pool.Close()
	return nil
}
