package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfmt/internal/config"
)

func TestLoadDefaultsWithNoFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDialect, cfg.Dialect)
	assert.Equal(t, config.DefaultMaxLineLength, cfg.MaxLineLength)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	contents := "dialect: postgres\nmax_line_length: 100\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(contents), 0o644))

	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, 100, cfg.MaxLineLength)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	contents := "dialect: postgres\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(contents), 0o644))

	t.Setenv("SQLFMT_DIALECT", "snowflake")

	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "snowflake", cfg.Dialect)
}

func TestFindProjectRootWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("dialect: ansi\n"), 0o644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, config.FindProjectRoot(nested))
}

func TestFindProjectRootReturnsEmptyWhenNotFound(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", config.FindProjectRoot(dir))
}

func TestToLintConfigTranslatesRuleOptionsAndSeverity(t *testing.T) {
	cfg := config.Defaults()
	cfg.Include = []string{"convention.blocked_words"}
	cfg.Rules = map[string]map[string]any{
		"convention.blocked_words": {"blocked_words": []string{"foo"}},
	}
	cfg.Severity = map[string]string{"CV09": "hint"}

	lc, err := cfg.ToLintConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"convention.blocked_words"}, lc.Include)
	assert.Contains(t, lc.RuleOptions, "convention.blocked_words")
	assert.Equal(t, lc.SeverityOverrides["CV09"].String(), "hint")
}
