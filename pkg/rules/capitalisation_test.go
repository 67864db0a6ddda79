package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordCapitalisationFlagsInconsistentMix(t *testing.T) {
	violations := runRule(t, "SeLeCt 1 from blah;", "CP01")
	assert.NotEmpty(t, violations)
}

func TestKeywordCapitalisationAcceptsConsistentUpper(t *testing.T) {
	violations := runRule(t, "SELECT 1 FROM blah;", "CP01")
	assert.Empty(t, violations)
}

func TestKeywordCapitalisationAcceptsConsistentLower(t *testing.T) {
	violations := runRule(t, "select 1 from blah;", "CP01")
	assert.Empty(t, violations)
}
