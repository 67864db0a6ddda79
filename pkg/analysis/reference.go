// Package analysis derives name-resolution facts from a finished parse
// tree: which tables a SELECT draws from, what aliases they go by, and
// which object references in the statement resolve to which source.
//
// It never reparses or mutates anything; it is a read-only view layered
// on top of a *segment.Segment, built once per statement by a rule or by
// the lint façade and then queried freely.
package analysis

import (
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// ObjectReferenceLevel classifies a reference by how many dotted parts
// qualify it, from the right: a bare name is a Column/Table (ambiguous
// without scope), two parts is Table-qualified, three or more is
// Schema-qualified.
type ObjectReferenceLevel int

const (
	LevelColumn ObjectReferenceLevel = iota
	LevelTable
	LevelSchema
)

// ObjectReference is an ObjectReference or ColumnReference segment
// decomposed into its dotted identifier parts.
type ObjectReference struct {
	Segment *segment.Segment
	Parts   []string
}

// NewObjectReference decomposes seg's identifier leaves (skipping dots
// and other punctuation) into dotted parts.
func NewObjectReference(seg *segment.Segment) ObjectReference {
	var parts []string
	for _, leaf := range seg.Leaves() {
		if leaf.Kind() == token.NakedIdentifier || leaf.Kind() == token.QuotedIdentifier {
			parts = append(parts, leaf.Raw())
		}
	}
	return ObjectReference{Segment: seg, Parts: parts}
}

// Level reports the qualification depth of the reference.
func (r ObjectReference) Level() ObjectReferenceLevel {
	switch {
	case len(r.Parts) >= 3:
		return LevelSchema
	case len(r.Parts) == 2:
		return LevelTable
	default:
		return LevelColumn
	}
}

// Qualifier returns the dotted prefix before the final part, or "" if
// the reference is unqualified.
func (r ObjectReference) Qualifier() string {
	if len(r.Parts) < 2 {
		return ""
	}
	return strings.Join(r.Parts[:len(r.Parts)-1], ".")
}

// Name returns the final (rightmost) part of the reference.
func (r ObjectReference) Name() string {
	if len(r.Parts) == 0 {
		return r.Segment.Raw()
	}
	return r.Parts[len(r.Parts)-1]
}

// GetObjectReferences returns every ObjectReference/ColumnReference
// segment under root, stopping descent at nested SelectStatements so a
// subquery's own references aren't attributed to the outer query.
func GetObjectReferences(root *segment.Segment) []ObjectReference {
	found := root.RecursiveCrawl(segment.CrawlOptions{
		Kinds:       token.NewKindSet(token.ObjectReference, token.ColumnReference),
		StopAtKinds: token.NewKindSet(token.SelectStatement),
		AllowSelf:   true,
	})
	out := make([]ObjectReference, len(found))
	for i, s := range found {
		out[i] = NewObjectReference(s)
	}
	return out
}
