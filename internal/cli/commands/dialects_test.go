package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectsListPrintsBuiltins(t *testing.T) {
	cmd := NewDialectsCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"list"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "ansi")
	assert.Contains(t, out, "postgres")
}
