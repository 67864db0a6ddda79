// Package reflow derives whitespace and line-break fixes from a finished
// parse tree: given the flat sequence of leaves a statement renders to,
// it decides where a single space is required, where none is allowed,
// and where a line runs long — and emits the edits as fix.LintFix values
// the same way a rule's Eval would, rather than re-printing the
// statement from scratch.
//
// Rebuilding SQL text from an AST on every run only works when the tree
// owns no source positions; here every leaf already carries its
// original text and position, so reformatting means editing the
// existing leaf stream in place, preserving everything the rewrite
// doesn't touch.
package reflow

import "github.com/leapstack-labs/sqlfmt/pkg/segment"

// Block is one code leaf in a reflowed sequence: a token that
// contributes to line length and participates in spacing decisions.
// Whitespace, newlines, and comments never become Blocks — they're the
// Points between them.
type Block struct {
	Segment *segment.Segment
}
