package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommaSpacing(t *testing.T) {
	violations := runRule(t, "select a , b from t;", "LT01")
	assert.NotEmpty(t, violations)

	violations = runRule(t, "select a, b from t;", "LT01")
	assert.Empty(t, violations)
}
