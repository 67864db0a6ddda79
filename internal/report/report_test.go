package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/sqlfmt/internal/report"
	"github.com/leapstack-labs/sqlfmt/pkg/lint"
	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
)

func sampleResults() []report.FileResult {
	return []report.FileResult{
		{
			Path: "models/customers.sql",
			Violations: []lint.Violation{
				{RuleCode: "CV05", Severity: lint.SeverityWarning, Description: "use IS NULL", Pos: posmap.LineCol{Line: 3, Col: 12}},
				{RuleCode: "LT01", Severity: lint.SeverityError, Description: "extra whitespace", Pos: posmap.LineCol{Line: 4, Col: 1}},
			},
		},
	}
}

func TestSummarizeCountsBySeverity(t *testing.T) {
	s := report.Summarize(sampleResults())
	assert.Equal(t, 1, s.Files)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 1, s.Warnings)
	assert.Equal(t, 2, s.Total())
}

func TestTableRendersFileAndRuleCode(t *testing.T) {
	var buf bytes.Buffer
	report.Table(&buf, sampleResults())

	out := buf.String()
	assert.Contains(t, out, "models/customers.sql")
	assert.Contains(t, out, "CV05")
	assert.Contains(t, out, "1 warnings")
}

func TestGithubAnnotationsFormatsWorkflowCommands(t *testing.T) {
	var buf bytes.Buffer
	report.GithubAnnotations(&buf, sampleResults())

	out := buf.String()
	assert.Contains(t, out, "::warning file=models/customers.sql,line=3,col=12,title=CV05::use IS NULL\n")
	assert.Contains(t, out, "::error file=models/customers.sql,line=4,col=1,title=LT01::extra whitespace\n")
}

func TestEmptyResultsProduceNoAnnotations(t *testing.T) {
	var buf bytes.Buffer
	report.GithubAnnotations(&buf, nil)
	assert.Empty(t, buf.String())
}
