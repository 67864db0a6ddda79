package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// DuckDBCatalog implements Provider against a DuckDB file or in-memory
// database, querying information_schema for the read-only column-lookup
// surface pkg/analysis needs.
type DuckDBCatalog struct {
	db *sql.DB
}

// NewDuckDBCatalog opens path (":memory:" for an in-memory database) and
// returns a ready Provider.
func NewDuckDBCatalog(ctx context.Context, path string) (*DuckDBCatalog, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: ping duckdb: %w", err)
	}
	return &DuckDBCatalog{db: db}, nil
}

func (c *DuckDBCatalog) TableColumns(ctx context.Context, schema, table string) ([]string, bool, error) {
	if schema == "" {
		schema = "main"
	}
	rows, err := c.db.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
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

func (c *DuckDBCatalog) HasTable(ctx context.Context, schema, table string) (bool, error) {
	cols, ok, err := c.TableColumns(ctx, schema, table)
	_ = cols
	return ok, err
}

func (c *DuckDBCatalog) Close() error {
	return c.db.Close()
}
