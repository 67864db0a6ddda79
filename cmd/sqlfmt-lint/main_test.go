// Package main provides tests for the sqlfmt-lint CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfmt/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "sqlfmt-lint")
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	for _, name := range []string{"lint", "fix", "watch", "rules", "dialects"} {
		assert.Contains(t, out, name)
	}
}

func TestLintCommandCleanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.sql")
	require.NoError(t, os.WriteFile(path, []byte("select 1 from foo as f\n"), 0o644))

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"lint", "--config", dir, path})

	assert.NoError(t, cmd.Execute())
}

func TestLintCommandReportsViolation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sql")
	require.NoError(t, os.WriteFile(path, []byte("select * from foo where x = NULL\n"), 0o644))

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"lint", "--config", dir, path})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, buf.String(), path)
}

func TestFixCommandRewritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sql")
	require.NoError(t, os.WriteFile(path, []byte("select * from foo where x = NULL\n"), 0o644))

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"fix", "--config", dir, path})

	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "select * from foo where x = NULL\n", string(out))
}

func TestRulesListCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"rules", "list"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "CV05")
}

func TestDialectsListCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"dialects", "list"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "ansi")
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			cmd := cli.NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"completion", shell})

			assert.NoError(t, cmd.Execute())
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"unknown-command"})

	assert.Error(t, cmd.Execute())
}
