package history_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfmt/internal/history"
	"github.com/leapstack-labs/sqlfmt/pkg/lint"
	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
)

func openTestStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRunsMigrations(t *testing.T) {
	s := openTestStore(t)
	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestBeginRunAndRecordViolations(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "ansi", 2, false)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)

	violations := []lint.Violation{
		{
			RuleName:    "convention.is_null",
			RuleCode:    "CV05",
			Severity:    lint.SeverityWarning,
			Description: "use IS NULL instead of = NULL",
			Pos:         posmap.LineCol{Line: 1, Col: 30},
			Fixable:     false,
		},
	}
	require.NoError(t, s.RecordViolations(ctx, run.ID, "models/customers.sql", violations))
	require.NoError(t, s.CompleteRun(ctx, run.ID))

	stored, err := s.ViolationsForRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "CV05", stored[0].RuleCode)
	assert.Equal(t, "models/customers.sql", stored[0].FilePath)
	assert.Equal(t, "warning", stored[0].Severity)

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotNil(t, runs[0].CompletedAt)
}

func TestRecordViolationsNoOpOnEmpty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "ansi", 1, false)
	require.NoError(t, err)

	require.NoError(t, s.RecordViolations(ctx, run.ID, "models/clean.sql", nil))

	stored, err := s.ViolationsForRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRuleTrendCountsAcrossRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		run, err := s.BeginRun(ctx, "ansi", 1, false)
		require.NoError(t, err)
		require.NoError(t, s.RecordViolations(ctx, run.ID, "models/a.sql", []lint.Violation{
			{RuleName: "convention.is_null", RuleCode: "CV05", Severity: lint.SeverityWarning, Pos: posmap.LineCol{Line: 1, Col: 1}},
		}))
	}

	trend, err := s.RuleTrend(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, trend["CV05"])
}
