// Package script runs user-authored Starlark scripts as lint rule bodies:
// a Go value <-> Starlark value bridge and one Starlark thread per loaded
// rule executing that rule's check(ctx) function once per crawled segment, the way pkg/rules'
// Go-native rule families do.
package script

import (
	"fmt"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/rules"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// namedKinds maps the kind names a script's crawl_kinds list may name to the
// corresponding SyntaxKind, covering the statement/clause granularity a
// script is expected to reason about; finer leaf kinds aren't exposed here.
var namedKinds = map[string]token.SyntaxKind{
	"select_statement": token.SelectStatement,
	"select_clause":    token.SelectClause,
	"from_clause":      token.FromClause,
	"from_expression":  token.FromExpression,
	"where_clause":     token.WhereClause,
	"group_by_clause":  token.GroupByClause,
	"join_clause":      token.JoinClause,
	"case_expression":  token.CaseExpression,
	"column_reference": token.ColumnReference,
	"object_reference":  token.ObjectReference,
	"alias_expression": token.AliasExpression,
}

func resolveKind(name string) (token.SyntaxKind, bool) {
	if k, ok := namedKinds[name]; ok {
		return k, true
	}
	return token.LookupRegistered(name)
}

// ScriptRule is a Rule whose Eval body is a Starlark check(ctx) function
// loaded from a .star file. The script's top level sets a handful of plain
// globals describing the rule, mirroring the metadata that a Go rule file
// hardcodes in its method bodies:
//
//	name = "script.no_select_star"
//	code = "SC01"
//	description = "Avoid SELECT *."
//	crawl_kinds = ["select_clause"]
//
//	def check(ctx):
//	    if ctx.raw.upper().startswith("SELECT *"):
//	        return [{"message": "avoid SELECT *"}]
//	    return []
type ScriptRule struct {
	path    string
	name    string
	code    string
	desc    string
	kinds   []token.SyntaxKind
	fixable bool

	thread *starlark.Thread
	check  starlark.Callable
}

// Load compiles path and validates its required globals.
func Load(path string) (*ScriptRule, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	thread := &starlark.Thread{
		Name: path,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(os.Stderr, "script "+path+": "+msg)
		},
	}
	globals, err := starlark.ExecFile(thread, path, src, nil)
	if err != nil {
		return nil, fmt.Errorf("script: exec %s: %w", path, err)
	}

	r := &ScriptRule{path: path, thread: thread}
	r.name, err = globalString(globals, "name")
	if err != nil {
		return nil, err
	}
	r.code, err = globalString(globals, "code")
	if err != nil {
		return nil, err
	}
	r.desc, _ = globalString(globals, "description")

	checkFn, ok := globals["check"]
	if !ok {
		return nil, fmt.Errorf("script: %s: missing check(ctx) function", path)
	}
	callable, ok := checkFn.(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("script: %s: check is not callable", path)
	}
	r.check = callable

	kindNames, _ := globals["crawl_kinds"].(*starlark.List)
	if kindNames != nil {
		for i := 0; i < kindNames.Len(); i++ {
			s, ok := kindNames.Index(i).(starlark.String)
			if !ok {
				continue
			}
			if k, ok := resolveKind(string(s)); ok {
				r.kinds = append(r.kinds, k)
			}
		}
	}
	if len(r.kinds) == 0 {
		return nil, fmt.Errorf("script: %s: crawl_kinds named no kind this build recognizes", path)
	}

	if fixable, ok := globals["fix_compatible"].(starlark.Bool); ok {
		r.fixable = bool(fixable)
	}
	return r, nil
}

func globalString(globals starlark.StringDict, key string) (string, error) {
	v, ok := globals[key]
	if !ok {
		return "", fmt.Errorf("script: missing required global %q", key)
	}
	s, ok := v.(starlark.String)
	if !ok {
		return "", fmt.Errorf("script: global %q must be a string, got %s", key, v.Type())
	}
	return string(s), nil
}

func (r *ScriptRule) Name() string              { return r.name }
func (r *ScriptRule) Code() string              { return r.code }
func (r *ScriptRule) Groups() []rules.Group     { return []rules.Group{rules.Group("script")} }
func (r *ScriptRule) Description() string       { return r.desc }
func (r *ScriptRule) LongDescription() string   { return r.desc }
func (r *ScriptRule) DefaultSeverity() rules.Severity { return rules.SeverityInfo }
func (r *ScriptRule) IsFixCompatible() bool     { return r.fixable }
func (r *ScriptRule) LintPhase() rules.Phase    { return rules.PhaseMain }
func (r *ScriptRule) DialectSkip() []string     { return nil }

func (r *ScriptRule) CrawlBehaviour() rules.Crawler {
	return rules.SegmentSeekerCrawler{Kinds: token.NewKindSet(r.kinds...)}
}

// Eval calls the script's check(ctx) with a read-only view of the visited
// segment, converting each returned {"message": ...} dict into a LintResult
// anchored on that segment.
func (r *ScriptRule) Eval(ctx rules.Context) []fix.LintResult {
	segVal := segmentToStarlark(ctx.Segment)
	result, err := starlark.Call(r.thread, r.check, starlark.Tuple{segVal}, nil)
	if err != nil {
		return []fix.LintResult{{
			Anchor:      ctx.Segment,
			Description: fmt.Sprintf("script %s failed: %v", r.name, err),
		}}
	}
	list, ok := result.(*starlark.List)
	if !ok {
		return nil
	}
	var out []fix.LintResult
	for i := 0; i < list.Len(); i++ {
		dict, ok := list.Index(i).(*starlark.Dict)
		if !ok {
			continue
		}
		msgVal, found, _ := dict.Get(starlark.String("message"))
		if !found {
			continue
		}
		msg, ok := msgVal.(starlark.String)
		if !ok {
			continue
		}
		out = append(out, fix.LintResult{Anchor: ctx.Segment, Description: string(msg)})
	}
	return out
}

// segmentToStarlark exposes the fields a check() function needs: the raw
// source text, the syntax kind name, and the number of direct children —
// enough for text-pattern rules without handing the script the whole
// tree, as a fixed struct rather than an arbitrary map conversion.
func segmentToStarlark(s *segment.Segment) starlark.Value {
	return starlarkstruct.FromStringDict(starlark.String("segment"), starlark.StringDict{
		"raw":       starlark.String(s.Raw()),
		"kind":      starlark.String(s.Kind().String()),
		"num_children": starlark.MakeInt(len(s.Children())),
	})
}
