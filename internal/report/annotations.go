package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/lint"
)

// GithubAnnotations writes one GitHub Actions workflow command per violation
// (`::error file=...,line=...,col=...,title=<rule code>::message`), so a lint step surfaces
// its findings directly on the diff in a pull request.
func GithubAnnotations(w io.Writer, results []FileResult) {
	for _, r := range results {
		for _, v := range r.Violations {
			fmt.Fprintf(w, "::%s file=%s,line=%d,col=%d,title=%s::%s\n",
				githubLevel(v.Severity), r.Path, v.Pos.Line, v.Pos.Col, v.RuleCode,
				escapeAnnotation(v.Description),
			)
		}
	}
}

func githubLevel(sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return "error"
	case lint.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}

// escapeAnnotation escapes the characters GitHub's workflow-command parser
// treats as significant in a message payload.
func escapeAnnotation(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
