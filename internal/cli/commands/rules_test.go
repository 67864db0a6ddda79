package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesListPrintsKnownRule(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"list"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "convention.is_null")
	assert.Contains(t, buf.String(), "CV05")
}

func TestRulesListFiltersByGroup(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"list", "--group", "layout"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.False(t, strings.Contains(out, "convention.is_null"))
}
