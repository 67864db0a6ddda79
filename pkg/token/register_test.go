package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotent(t *testing.T) {
	a := Register("bigquery.struct_literal")
	b := Register("bigquery.struct_literal")
	require.Equal(t, a, b)
	require.True(t, IsDynamic(a))
}

func TestRegisterAssignsDistinctKinds(t *testing.T) {
	a := Register("snowflake.qualify_clause")
	b := Register("snowflake.semi_structured_access")
	require.NotEqual(t, a, b)
}

func TestStringFallsBackForUnknownKind(t *testing.T) {
	require.Equal(t, "Whitespace", Whitespace.String())
	require.Contains(t, SyntaxKind(123456).String(), "Kind(")
}
