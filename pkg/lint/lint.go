// Package lint provides the top-level Linter façade: LintString and
// FixString wire the lexer, parser, rule engine, and fix applier into the
// two operations a caller actually needs, without requiring them to touch
// pkg/dialect, pkg/parse, or pkg/rules directly.
package lint

import (
	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/lexer"
	"github.com/leapstack-labs/sqlfmt/pkg/parse"
	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/rules"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/templater"
)

// Severity is rules.Severity under the name callers of this façade expect.
type Severity = rules.Severity

const (
	SeverityError   = rules.SeverityError
	SeverityWarning = rules.SeverityWarning
	SeverityInfo    = rules.SeverityInfo
	SeverityHint    = rules.SeverityHint
)

// Violation is one reported lint finding, with its position resolved from
// the anchor segment's marker for callers that don't want to walk the CST
// themselves.
type Violation struct {
	RuleName    string
	RuleCode    string
	Severity    Severity
	Description string
	Pos         posmap.LineCol
	Fixable     bool
}

// LintedFile is the result of running the rule engine over one SQL string:
// the violations found, the templated-file mapping the tree was parsed
// against, and (in fix mode) the patches the rule engine's fixes lowered to.
type LintedFile struct {
	Source     string
	Tree       *segment.Segment
	Tables     *segment.Tables
	Violations []Violation
	Templated  *templater.TemplatedFile
	Patches    []fix.FixPatch
}

// Fixed renders the fixed source text by splicing Patches into Templated's
// source string, leaving every source-only slice (templating markers,
// comments) untouched. With no patches — LintString's result, or a fix run
// that changed nothing — it returns the original source unmodified.
func (f *LintedFile) Fixed() string {
	if f.Templated == nil {
		return f.Source
	}
	return fix.RenderFixedSource(f.Templated, f.Patches)
}

func parseTree(source string, d *dialect.Dialect, tables *segment.Tables) *segment.Segment {
	leaves := lexer.Lex(source, d.LexerMatchers(lexer.DefaultMatchers()))
	toks := make([]*segment.Segment, 0, len(leaves))
	for _, l := range leaves {
		m := posmap.NewMarker(l.Offset, l.Offset+len(l.Raw))
		toks = append(toks, segment.NewLeaf(tables.NextID(), l.Kind, l.Raw, &m))
	}
	return parse.Parse(toks, d, tables)
}

func toViolations(tree *segment.Segment, violations []rules.Violation, cfg *Config) []Violation {
	out := make([]Violation, 0, len(violations))
	index := posmap.NewLineIndex(tree.Raw())
	for _, v := range violations {
		var lc posmap.LineCol
		if v.Result.Anchor != nil {
			if m := v.Result.Anchor.Marker(); m != nil {
				lc = index.LineCol(m.Source.Start)
			}
		}
		out = append(out, Violation{
			RuleName:    v.Rule.Name(),
			RuleCode:    v.Rule.Code(),
			Severity:    cfg.severityFor(v.Rule),
			Description: v.Result.Description,
			Pos:         lc,
			Fixable:     len(v.Result.Fixes) > 0,
		})
	}
	return out
}

// LintString parses source under d and reports every violation from the
// resolved rule pack, without applying any fixes.
func LintString(source string, d *dialect.Dialect, cfg *Config) (*LintedFile, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	tables := segment.NewTables()
	tree := parseTree(source, d, tables)

	rulesInOrder, err := cfg.resolveRules(d.Name)
	if err != nil {
		return nil, err
	}

	result, err := rules.Run(tree, rulesInOrder, d, tables, fix.TreeApplier{}, false)
	if err != nil {
		return nil, err
	}

	return &LintedFile{
		Source:     source,
		Tree:       result.Tree,
		Tables:     tables,
		Violations: toViolations(result.Tree, result.Violations, cfg),
		Templated:  templater.NewIdentityTemplatedFile(source),
	}, nil
}

// FixString parses source under d, applies every fix-compatible rule's
// proposed edits to a fixed point (or each phase's iteration cap), and
// returns the rewritten source alongside the violations each rule reported
// on the first pass of each phase. Fixes are applied rule by rule within
// that pass, so a rule evaluated after another rule's fix, and every Post
// phase rule, reports against the already-fixed tree.
func FixString(source string, d *dialect.Dialect, cfg *Config) (string, *LintedFile, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	tables := segment.NewTables()
	tree := parseTree(source, d, tables)

	rulesInOrder, err := cfg.resolveRules(d.Name)
	if err != nil {
		return source, nil, err
	}

	result, err := rules.Run(tree, rulesInOrder, d, tables, fix.TreeApplier{}, true)
	if err != nil {
		return source, nil, err
	}

	lf := &LintedFile{
		Source:     source,
		Tree:       result.Tree,
		Tables:     tables,
		Violations: toViolations(result.Tree, result.Violations, cfg),
		Templated:  templater.NewIdentityTemplatedFile(source),
		Patches:    result.Patches,
	}
	return lf.Fixed(), lf, nil
}
