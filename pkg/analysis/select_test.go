package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfmt/pkg/analysis"
	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/lexer"
	"github.com/leapstack-labs/sqlfmt/pkg/parse"
	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

func parseSelect(t *testing.T, sql string) (*segment.Segment, *dialect.Dialect) {
	t.Helper()
	d := dialect.NewANSI()
	tbl := segment.NewTables()
	leaves := lexer.Lex(sql, d.LexerMatchers(lexer.DefaultMatchers()))
	toks := make([]*segment.Segment, 0, len(leaves))
	for _, l := range leaves {
		m := posmap.NewMarker(l.Offset, l.Offset+len(l.Raw))
		toks = append(toks, segment.NewLeaf(tbl.NextID(), l.Kind, l.Raw, &m))
	}
	tree := parse.Parse(toks, d, tbl)
	stmt := tree.SegmentsOfKind(token.SelectStatement)
	require.NotEmpty(t, stmt)
	return stmt[0], d
}

func TestGetSelectInfoTableAliases(t *testing.T) {
	stmt, d := parseSelect(t, "select c.id, o.total from customers c join orders o on c.id = o.customer_id;")
	info := analysis.GetSelectInfo(stmt, d, false)
	require.NotNil(t, info)

	names := make([]string, 0, len(info.TableAliases))
	for _, ref := range info.TableAliases {
		names = append(names, ref.EffectiveName())
	}
	assert.Contains(t, names, "c")
	assert.Contains(t, names, "o")
	assert.NotEmpty(t, info.ReferenceBuffer)
}

func TestGetSelectInfoUsingCols(t *testing.T) {
	stmt, d := parseSelect(t, "select * from a join b using (id);")
	info := analysis.GetSelectInfo(stmt, d, false)
	require.NotNil(t, info)
	assert.Contains(t, info.UsingCols, "id")
}

func TestGetSelectInfoColAliases(t *testing.T) {
	stmt, d := parseSelect(t, "select amount as total from orders;")
	info := analysis.GetSelectInfo(stmt, d, false)
	require.NotNil(t, info)
	require.Len(t, info.ColAliases, 1)
	assert.Equal(t, "total", info.ColAliases[0].Alias)
}

func TestScopeResolvesQualifiedColumn(t *testing.T) {
	stmt, d := parseSelect(t, "select c.id from customers c;")
	scope, err := analysis.NewScope(d, nil)
	require.NoError(t, err)

	info := analysis.GetSelectInfo(stmt, d, false)
	require.NotNil(t, info)
	for _, ref := range info.TableAliases {
		scope.RegisterTable(ref)
	}

	entry, ok := scope.ResolveColumn(analysis.ColumnRef{Table: "c", Column: "id"})
	require.True(t, ok)
	assert.Equal(t, "customers", entry.Name)
}

func TestScopeSingleTableInference(t *testing.T) {
	stmt, d := parseSelect(t, "select id from customers;")
	scope, err := analysis.NewScope(d, nil)
	require.NoError(t, err)

	info := analysis.GetSelectInfo(stmt, d, false)
	for _, ref := range info.TableAliases {
		scope.RegisterTable(ref)
	}

	entry, ok := scope.ResolveColumn(analysis.ColumnRef{Column: "id"})
	require.True(t, ok)
	assert.Equal(t, "customers", entry.Name)
}

func TestObjectReferenceLevel(t *testing.T) {
	stmt, _ := parseSelect(t, "select db.schema.tbl.col from db.schema.tbl;")
	refs := analysis.GetObjectReferences(stmt)
	require.NotEmpty(t, refs)

	found := false
	for _, r := range refs {
		if len(r.Parts) == 4 {
			found = true
			assert.Equal(t, analysis.LevelSchema, r.Level())
			assert.Equal(t, "col", r.Name())
		}
	}
	assert.True(t, found)
}
