package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfmt/pkg/catalog"
)

type fakeProvider struct {
	tables map[string][]string
}

func (f *fakeProvider) TableColumns(_ context.Context, _, table string) ([]string, bool, error) {
	cols, ok := f.tables[table]
	return cols, ok, nil
}

func (f *fakeProvider) HasTable(_ context.Context, _, table string) (bool, error) {
	_, ok := f.tables[table]
	return ok, nil
}

func (f *fakeProvider) Close() error { return nil }

func TestToSchemaSkipsUnknownTables(t *testing.T) {
	p := &fakeProvider{tables: map[string][]string{
		"customers": {"id", "name"},
	}}

	schema, err := catalog.ToSchema(context.Background(), p, "public", []string{"customers", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, schema["customers"])
	_, ok := schema["ghost"]
	assert.False(t, ok)
}
