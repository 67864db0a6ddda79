package rules

import (
	"path/filepath"
)

// PackConfig selects which registered rules make up a run, resolved
// from config: name globs plus group inclusions/exclusions.
type PackConfig struct {
	// Include is a set of name/code globs (path.Match syntax) or group
	// names; empty means "everything".
	Include []string
	// Exclude is applied after Include and always wins.
	Exclude []string
	// Dialect restricts to rules that apply to this dialect (DialectSkip).
	Dialect string
}

func matchesAny(patterns []string, r Rule) bool {
	for _, p := range patterns {
		if Group(p) == GroupAll {
			return true
		}
		for _, g := range r.Groups() {
			if string(g) == p {
				return true
			}
		}
		if ok, _ := filepath.Match(p, r.Name()); ok {
			return true
		}
		if ok, _ := filepath.Match(p, r.Code()); ok {
			return true
		}
	}
	return false
}

// Resolve builds the ordered set of rule instances for one run. Resolution order: start from every registered rule,
// keep only those matching Include (or all, if Include is empty), drop
// those matching Exclude, then drop those that skip the configured dialect.
// The result stays sorted by name since All() already returns it that way.
func Resolve(cfg PackConfig) []Rule {
	var out []Rule
	for _, r := range All() {
		if len(cfg.Include) > 0 && !matchesAny(cfg.Include, r) {
			continue
		}
		if len(cfg.Exclude) > 0 && matchesAny(cfg.Exclude, r) {
			continue
		}
		if cfg.Dialect != "" && !AppliesToDialect(r, cfg.Dialect) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// InPhase filters a resolved rule set to just those running in phase p.
func InPhase(rules []Rule, p Phase) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.LintPhase() == p {
			out = append(out, r)
		}
	}
	return out
}
