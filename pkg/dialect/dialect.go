// Package dialect implements the open, extensible dialect registry: an
// inheritance chain of {name -> Matchable} grammar dictionaries, lexer
// matcher patches, keyword/unit sets, and bracket pairs. Concrete
// dialects are built by deriving a raw base dialect and then patching it
// layer by layer, one override per derived dialect.
package dialect

import (
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/grammar"
	"github.com/leapstack-labs/sqlfmt/pkg/lexer"
)

// SetName identifies one of a dialect's word sets.
type SetName string

const (
	ReservedKeywords    SetName = "reserved_keywords"
	UnreservedKeywords  SetName = "unreserved_keywords"
	DatetimeUnits       SetName = "datetime_units"
	BareFunctions       SetName = "bare_functions"
	ValueTableFunctions SetName = "value_table_functions"
	DatePartFunctionNames SetName = "date_part_function_names"
)

// Dialect is one named grammar dictionary, optionally inheriting from a
// parent. Lookups and set membership fall back through the parent chain;
// Add/Replace/patch calls always write to this dialect's own layer,
// leaving the parent untouched.
type Dialect struct {
	Name   string
	parent *Dialect

	grammars map[string]grammar.Matchable

	lexerPatches []lexer.Matcher // patches/additions applied over parent's list

	sets map[SetName]map[string]struct{}

	brackets map[string]grammar.BracketType

	expanded bool
	cachedLexerMatchers []lexer.Matcher
}

// NewRawDialect creates a dialect with no parent: the root of an
// inheritance chain.
func NewRawDialect(name string) *Dialect {
	return &Dialect{
		Name:     name,
		grammars: make(map[string]grammar.Matchable),
		sets:     make(map[SetName]map[string]struct{}),
		brackets: make(map[string]grammar.BracketType),
	}
}

// Derive creates a new dialect inheriting from d, used by e.g. postgres
// to start from ansi and override a handful of grammars/sets.
func (d *Dialect) Derive(name string) *Dialect {
	child := NewRawDialect(name)
	child.parent = d
	return child
}

// Parent returns the dialect this one derives from, or nil for a root.
func (d *Dialect) Parent() *Dialect { return d.parent }

// Add registers a new named grammar. Conventionally used for grammars that
// don't exist in the parent chain yet; Replace is used for overrides, but
// both simply write to this dialect's own layer.
func (d *Dialect) Add(name string, m grammar.Matchable) *Dialect {
	d.grammars[name] = m
	d.expanded = false
	return d
}

// Replace overrides a grammar inherited from a parent — the parent's definition is unaffected.
func (d *Dialect) Replace(name string, m grammar.Matchable) *Dialect {
	return d.Add(name, m)
}

// Lookup implements grammar.DialectLookup: check this dialect's own layer,
// then fall back through the parent chain.
func (d *Dialect) Lookup(name string) (grammar.Matchable, bool) {
	if m, ok := d.grammars[name]; ok {
		return m, true
	}
	if d.parent != nil {
		return d.parent.Lookup(name)
	}
	return nil, false
}

// PatchLexerMatchers appends or (by matching Name()) replaces lexer
// matchers over the parent chain's list — e.g. Postgres patching in a
// dollar-quote-aware string matcher, Snowflake patching identifier quoting.
func (d *Dialect) PatchLexerMatchers(patches ...lexer.Matcher) *Dialect {
	d.lexerPatches = append(d.lexerPatches, patches...)
	d.expanded = false
	return d
}

// LexerMatchers resolves the effective, patched matcher list: the parent
// chain's matchers (outermost ancestor first) with this dialect's patches
// applied in declaration order, replacing any matcher sharing a patch's
// name and appending the rest.
func (d *Dialect) LexerMatchers(base []lexer.Matcher) []lexer.Matcher {
	var chain []*Dialect
	for cur := d; cur != nil; cur = cur.parent {
		chain = append([]*Dialect{cur}, chain...)
	}
	matchers := append([]lexer.Matcher{}, base...)
	for _, layer := range chain {
		matchers = applyLexerPatches(matchers, layer.lexerPatches)
	}
	return matchers
}

func applyLexerPatches(matchers []lexer.Matcher, patches []lexer.Matcher) []lexer.Matcher {
	out := append([]lexer.Matcher{}, matchers...)
	for _, patch := range patches {
		replaced := false
		for i, m := range out {
			if m.Name() == patch.Name() {
				out[i] = patch
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, patch)
		}
	}
	return out
}

// AddToSet adds words to one of this dialect's own sets, normalized to
// lowercase.
func (d *Dialect) AddToSet(name SetName, words ...string) *Dialect {
	if d.sets[name] == nil {
		d.sets[name] = make(map[string]struct{})
	}
	for _, w := range words {
		d.sets[name][strings.ToLower(w)] = struct{}{}
	}
	d.expanded = false
	return d
}

// RemoveFromSet removes words from this dialect's own set layer — it
// does not affect words contributed by a parent's own layer, matching
// how membership tests walk the whole chain.
func (d *Dialect) RemoveFromSet(name SetName, words ...string) *Dialect {
	if d.sets[name] == nil {
		return d
	}
	for _, w := range words {
		delete(d.sets[name], strings.ToLower(w))
	}
	return d
}

// InSet reports whether word (case-insensitively) is a member of the named
// set in this dialect or any ancestor.
func (d *Dialect) InSet(name SetName, word string) bool {
	w := strings.ToLower(word)
	for cur := d; cur != nil; cur = cur.parent {
		if cur.sets[name] != nil {
			if _, ok := cur.sets[name][w]; ok {
				return true
			}
		}
	}
	return false
}

// UpdateBracketSets registers a named bracket pair, e.g. "round" -> (StartBracket, EndBracket).
func (d *Dialect) UpdateBracketSets(name string, bt grammar.BracketType) *Dialect {
	d.brackets[name] = bt
	return d
}

// Bracket resolves a named bracket pair through the parent chain.
func (d *Dialect) Bracket(name string) (grammar.BracketType, bool) {
	if bt, ok := d.brackets[name]; ok {
		return bt, true
	}
	if d.parent != nil {
		return d.parent.Bracket(name)
	}
	return grammar.BracketType{}, false
}

// Expand finalises the dialect after all patches have been applied; it
// is idempotent and, for this registry's lazily-resolving design, exists
// mainly as the documented point at which a dialect is considered
// immutable and safe to share across goroutines.
func (d *Dialect) Expand() *Dialect {
	d.expanded = true
	return d
}
