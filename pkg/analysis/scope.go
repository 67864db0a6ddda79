package analysis

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
)

// ErrDialectRequired is returned by NewScope when called with a nil dialect.
var ErrDialectRequired = errors.New("analysis: dialect required")

// Schema maps table names to their known columns, used for SELECT *
// expansion and unqualified-column resolution when external schema
// information is available.
type Schema map[string][]string

// ScopeType distinguishes the three kinds of source a scope entry can
// describe.
type ScopeType int

const (
	ScopeTable ScopeType = iota
	ScopeCTE
	ScopeDerived
)

// ScopeEntry is one table, CTE, or derived table visible in a scope.
type ScopeEntry struct {
	Type              ScopeType
	Name              string
	Alias             string
	Columns           []string
	SourceTable       string
	UnderlyingSources []string
}

// EffectiveName returns the alias if present, else the source name —
// the name by which other parts of the query would refer to this entry.
func (e *ScopeEntry) EffectiveName() string {
	if e.Alias != "" {
		return e.Alias
	}
	return e.Name
}

// Scope tracks the tables, CTEs, and derived tables visible within one
// SELECT and its ancestors, mirroring the nesting of subqueries.
type Scope struct {
	parent  *Scope
	entries map[string]*ScopeEntry
	dialect *dialect.Dialect
	schema  Schema
}

// NewScope creates a root scope. d is required and is carried by the scope
// and its children; identifier comparisons use the ANSI lower-case fold
// (see normalize) whatever the dialect. schema may be nil.
func NewScope(d *dialect.Dialect, schema Schema) (*Scope, error) {
	if d == nil {
		return nil, ErrDialectRequired
	}
	return &Scope{entries: make(map[string]*ScopeEntry), dialect: d, schema: schema}, nil
}

// Child creates a nested scope for a subquery, sharing dialect and
// schema but starting with an empty entry set.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, entries: make(map[string]*ScopeEntry), dialect: s.dialect, schema: s.schema}
}

// normalize folds name the way unquoted identifiers compare in ANSI SQL.
// Dialects with case-sensitive unquoted identifiers would override this;
// the core ships only the ANSI fold.
func (s *Scope) normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterTable adds a physical table, keyed by its effective name
// (alias if present, else table name).
func (s *Scope) RegisterTable(ref TableRef) {
	entry := &ScopeEntry{Type: ScopeTable, Name: ref.Name(), Alias: ref.Alias, SourceTable: ref.QualifiedName()}

	if s.schema != nil {
		for _, key := range []string{entry.SourceTable, ref.Name(), s.normalize(entry.SourceTable), s.normalize(ref.Name())} {
			if cols, ok := s.schema[key]; ok {
				entry.Columns = cols
				break
			}
		}
	}

	s.entries[s.normalize(entry.EffectiveName())] = entry
}

// RegisterCTE adds a named CTE with its resolved output columns.
func (s *Scope) RegisterCTE(name string, columns []string) {
	s.entries[s.normalize(name)] = &ScopeEntry{Type: ScopeCTE, Name: name, Columns: columns}
}

// RegisterCTEWithSources adds a CTE together with the physical tables it
// was ultimately derived from, for lineage-aware rules.
func (s *Scope) RegisterCTEWithSources(name string, columns, underlyingSources []string) {
	s.entries[s.normalize(name)] = &ScopeEntry{Type: ScopeCTE, Name: name, Columns: columns, UnderlyingSources: underlyingSources}
}

// RegisterDerived adds a subquery-in-FROM, keyed by its required alias.
func (s *Scope) RegisterDerived(alias string, columns []string) {
	s.entries[s.normalize(alias)] = &ScopeEntry{Type: ScopeDerived, Name: alias, Alias: alias, Columns: columns}
}

// RegisterDerivedWithSources is RegisterDerived plus lineage tracking.
func (s *Scope) RegisterDerivedWithSources(alias string, columns, underlyingSources []string) {
	s.entries[s.normalize(alias)] = &ScopeEntry{Type: ScopeDerived, Name: alias, Alias: alias, Columns: columns, UnderlyingSources: underlyingSources}
}

// Lookup finds an entry by table name or alias, current scope first then
// parents (for correlated subqueries).
func (s *Scope) Lookup(name string) (*ScopeEntry, bool) {
	if entry, ok := s.entries[s.normalize(name)]; ok {
		return entry, true
	}
	if s.parent != nil {
		return s.parent.Lookup(name)
	}
	return nil, false
}

// LookupCTE finds a CTE by name, searching only scopes where CTEs would
// have been registered (this and parents), never derived tables.
func (s *Scope) LookupCTE(name string) (*ScopeEntry, bool) {
	if entry, ok := s.entries[s.normalize(name)]; ok && entry.Type == ScopeCTE {
		return entry, true
	}
	if s.parent != nil {
		return s.parent.LookupCTE(name)
	}
	return nil, false
}

// AllEntries returns every entry registered directly in s, excluding
// parent scopes.
func (s *Scope) AllEntries() []*ScopeEntry {
	out := make([]*ScopeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

// ColumnRef is an unresolved column reference: Table is the qualifier
// (if any), Column the final identifier.
type ColumnRef struct {
	Table  string
	Column string
}

// ResolveColumn finds the scope entry a column reference belongs to.
// Qualified references resolve by table/alias lookup; unqualified ones
// search every entry's known columns, falling back to the sole physical
// table in scope when no schema distinguishes them.
func (s *Scope) ResolveColumn(ref ColumnRef) (*ScopeEntry, bool) {
	if ref.Table != "" {
		return s.Lookup(ref.Table)
	}

	for _, entry := range s.entries {
		for _, col := range entry.Columns {
			if s.normalize(col) == s.normalize(ref.Column) {
				return entry, true
			}
		}
	}

	var singleTable *ScopeEntry
	tableCount := 0
	for _, entry := range s.entries {
		if entry.Type == ScopeTable {
			tableCount++
			singleTable = entry
		}
	}
	if tableCount == 1 {
		return singleTable, true
	}

	if s.parent != nil {
		return s.parent.ResolveColumn(ref)
	}
	return nil, false
}

// ExpandStar expands a bare or table-qualified * into its known column
// references. Returns nil when the table (or, for a bare *, every table)
// has no schema information to expand against.
func (s *Scope) ExpandStar(tableName string) []ColumnRef {
	if tableName != "" {
		entry, ok := s.Lookup(tableName)
		if !ok || len(entry.Columns) == 0 {
			return nil
		}
		refs := make([]ColumnRef, len(entry.Columns))
		for i, col := range entry.Columns {
			refs[i] = ColumnRef{Table: entry.EffectiveName(), Column: col}
		}
		return refs
	}

	var refs []ColumnRef
	for _, entry := range s.entries {
		for _, col := range entry.Columns {
			refs = append(refs, ColumnRef{Table: entry.EffectiveName(), Column: col})
		}
	}
	return refs
}

// HasSchemaInfo reports whether any entry in this scope carries known
// columns, i.e. whether star-expansion or unqualified resolution has
// anything to work with.
func (s *Scope) HasSchemaInfo() bool {
	for _, entry := range s.entries {
		if len(entry.Columns) > 0 {
			return true
		}
	}
	return false
}

// ColumnSource is the fully resolved origin of a column reference.
type ColumnSource struct {
	Table       string
	SourceTable string
	Column      string
	FromCTE     bool
	FromDerived bool
}

// ResolveColumnFull resolves ref and fills in lineage flags. With no
// schema information it still returns a best-effort source built from
// the reference's own qualifier, since that's all heuristic resolution
// can offer without a catalog.
func (s *Scope) ResolveColumnFull(ref ColumnRef) (*ColumnSource, bool) {
	entry, ok := s.ResolveColumn(ref)
	if !ok {
		if ref.Table != "" {
			return &ColumnSource{Table: ref.Table, Column: ref.Column}, true
		}
		return nil, false
	}

	source := &ColumnSource{
		Table:       entry.EffectiveName(),
		Column:      ref.Column,
		FromCTE:     entry.Type == ScopeCTE,
		FromDerived: entry.Type == ScopeDerived,
	}
	if entry.SourceTable != "" {
		source.SourceTable = entry.SourceTable
	} else {
		source.SourceTable = entry.Name
	}
	return source, true
}
