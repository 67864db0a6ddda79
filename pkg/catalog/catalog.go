// Package catalog provides optional, read-only schema introspection for
// pkg/analysis: a live database's table/column shape, queried on demand so
// C10's name resolution can work from real schema instead of syntax alone.
// A catalog is optional — C10 falls back to heuristic resolution with
// none configured.
package catalog

import "context"

// Column describes one column of a cataloged table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
}

// Table describes one cataloged table's columns, keyed by unqualified name
// within its schema.
type Table struct {
	Schema  string
	Name    string
	Columns []Column
}

// Provider resolves table shape from a live database, read-only. Nothing
// in this core ever calls Exec or any data-mutating method — only
// TableColumns and HasTable.
type Provider interface {
	// TableColumns returns the column names of schema.table, or ok=false if
	// the table doesn't exist.
	TableColumns(ctx context.Context, schema, table string) (columns []string, ok bool, err error)
	// HasTable reports whether schema.table exists.
	HasTable(ctx context.Context, schema, table string) (bool, error)
	// Close releases the provider's connection.
	Close() error
}

// ToSchema queries every table named in refs and assembles an
// analysis.Schema map, skipping refs that don't resolve to a real table.
// Callers typically call this once per lint run with the distinct table
// names found by pkg/analysis.GetAliasesFromSelect, rather than querying
// the whole database up front.
func ToSchema(ctx context.Context, p Provider, schema string, tableNames []string) (map[string][]string, error) {
	out := make(map[string][]string, len(tableNames))
	for _, name := range tableNames {
		cols, ok, err := p.TableColumns(ctx, schema, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out[name] = cols
	}
	return out, nil
}
