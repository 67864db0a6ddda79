package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfmt/internal/driver"
	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/lint"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunLintsEveryDiscoveredFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sql", "select * from t where a = NULL;")
	writeFile(t, dir, "b.sql", "select * from t where a is null;")
	writeFile(t, dir, "c.txt", "not sql")

	cfg := lint.NewConfig()
	cfg.Include = []string{"convention.is_null"}

	results, err := driver.Run(context.Background(), []string{dir}, driver.Options{
		Dialect: dialect.NewANSI(),
		Config:  cfg,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, filepath.Join(dir, "a.sql"), results[0].Path)
	assert.NotEmpty(t, results[0].Violation)
	assert.Equal(t, filepath.Join(dir, "b.sql"), results[1].Path)
	assert.Empty(t, results[1].Violation)
}

func TestRunFixRewritesFilesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "messy.sql", "select a , b from t;")

	cfg := lint.NewConfig()
	cfg.Include = []string{"layout"}

	results, err := driver.Run(context.Background(), []string{path}, driver.Options{
		Dialect: dialect.NewANSI(),
		Config:  cfg,
		Fix:     true,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Changed)

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "select a, b from t;", string(rewritten))
}

func TestToFileResultsDropsCleanFiles(t *testing.T) {
	results := []driver.Result{
		{Path: "a.sql", Violation: nil},
		{Path: "b.sql", Violation: []lint.Violation{{RuleCode: "CV05"}}},
	}
	out := driver.ToFileResults(results)
	require.Len(t, out, 1)
	assert.Equal(t, "b.sql", out[0].Path)
}
