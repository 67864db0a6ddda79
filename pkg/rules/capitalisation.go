package rules

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

func init() {
	Register(func() Rule { return &KeywordCapitalisation{policy: "consistent"} })
}

// KeywordCapitalisation enforces one capitalisation style for keywords and
// binary operators across a query: upper, lower, capitalise (leading letter
// only), pascal, or — the default — whatever style the query has already
// committed to.
type KeywordCapitalisation struct {
	policy string
}

const (
	capPolicyConsistent  = "consistent"
	capPolicyUpper       = "upper"
	capPolicyLower       = "lower"
	capPolicyCapitalise  = "capitalise"
	capPolicyPascal      = "pascal"
	capMemoryRefuted     = "cp01.refuted"
	capMemoryLatestGuess = "cp01.latest"
)

var capPolicyOptions = []string{capPolicyUpper, capPolicyLower, capPolicyCapitalise}

func (r *KeywordCapitalisation) Name() string    { return "capitalisation.keywords" }
func (r *KeywordCapitalisation) Code() string    { return "CP01" }
func (r *KeywordCapitalisation) Groups() []Group { return []Group{GroupCapitalisation} }
func (r *KeywordCapitalisation) Description() string {
	return "Inconsistent capitalisation of keywords."
}
func (r *KeywordCapitalisation) LongDescription() string {
	return "Keywords should share one capitalisation style throughout a query. With the default \"consistent\" policy, the first keyword encountered sets the style and later ones are checked against it; a fixed policy (upper, lower, capitalise, pascal) can be configured instead."
}
func (r *KeywordCapitalisation) DefaultSeverity() Severity { return SeverityWarning }
func (r *KeywordCapitalisation) IsFixCompatible() bool     { return true }
func (r *KeywordCapitalisation) LintPhase() Phase          { return PhaseMain }
func (r *KeywordCapitalisation) DialectSkip() []string     { return nil }
func (r *KeywordCapitalisation) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.Keyword, token.BinaryOperator)}
}

// LoadFromConfig reads the "capitalisation_policy" option: one of
// consistent (default), upper, lower, capitalise, pascal.
func (r *KeywordCapitalisation) LoadFromConfig(opts map[string]any) (Rule, error) {
	policy := capPolicyConsistent
	if v, ok := opts["capitalisation_policy"]; ok {
		if s, ok := v.(string); ok && s != "" {
			policy = s
		}
	}
	return &KeywordCapitalisation{policy: policy}, nil
}

func (r *KeywordCapitalisation) Eval(ctx Context) []fix.LintResult {
	raw := ctx.Segment.Raw()
	if raw == "" {
		return nil
	}

	refuted, _ := ctx.Memory[capMemoryRefuted].(map[string]bool)
	if refuted == nil {
		refuted = make(map[string]bool)
	}

	firstLetterLower := isFirstLetterLower(raw)
	if firstLetterLower {
		refuted["upper"] = true
		refuted["capitalise"] = true
		refuted["pascal"] = true
		if raw != strings.ToLower(raw) {
			refuted["lower"] = true
		}
	} else {
		refuted["lower"] = true
		if raw != strings.ToUpper(raw) {
			refuted["upper"] = true
		}
		if raw != capitalise(raw) {
			refuted["capitalise"] = true
		}
		if !isAlphanumeric(raw) {
			refuted["pascal"] = true
		}
	}
	ctx.Memory[capMemoryRefuted] = refuted

	concretePolicy := r.policy
	if r.policy == capPolicyConsistent {
		var possible []string
		for _, opt := range capPolicyOptions {
			if !refuted[opt] {
				possible = append(possible, opt)
			}
		}
		if len(possible) > 0 {
			ctx.Memory[capMemoryLatestGuess] = possible[0]
			return nil
		}
		guess, _ := ctx.Memory[capMemoryLatestGuess].(string)
		if guess == "" {
			guess = capPolicyUpper
		}
		concretePolicy = guess
	}

	fixedRaw := applyCapPolicy(concretePolicy, raw)
	if fixedRaw == raw {
		return nil
	}
	return []fix.LintResult{{
		Anchor:      ctx.Segment,
		Description: "keywords must be " + capPolicyDescription(concretePolicy),
		Fixes:       []fix.LintFix{fix.NewReplace(ctx.Segment, ctx.Segment.Edit(ctx.Tables.NextID(), fixedRaw, ctx.Segment.Kind()))},
	}}
}

func capPolicyDescription(policy string) string {
	switch policy {
	case capPolicyUpper:
		return "upper case"
	case capPolicyLower:
		return "lower case"
	case capPolicyCapitalise:
		return "capitalised"
	case capPolicyPascal:
		return "pascal case"
	default:
		return policy
	}
}

func applyCapPolicy(policy, raw string) string {
	switch policy {
	case capPolicyUpper:
		return cases.Upper(language.Und).String(raw)
	case capPolicyLower:
		return cases.Lower(language.Und).String(raw)
	case capPolicyCapitalise:
		return capitalise(raw)
	case capPolicyPascal:
		return pascalCase(raw)
	default:
		return raw
	}
}

func capitalise(raw string) string {
	if raw == "" {
		return raw
	}
	lower := strings.ToLower(raw)
	r := []rune(lower)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

var pascalWordRe = regexp.MustCompile(`([^a-zA-Z0-9]+|^)([a-zA-Z0-9])([a-zA-Z0-9]*)`)

func pascalCase(raw string) string {
	return pascalWordRe.ReplaceAllStringFunc(raw, func(m string) string {
		parts := pascalWordRe.FindStringSubmatch(m)
		return parts[1] + strings.ToUpper(parts[2]) + strings.ToLower(parts[3])
	})
}

func isFirstLetterLower(raw string) bool {
	for _, ch := range raw {
		if isCapitalizable(ch) {
			return unicode.IsLower(ch)
		}
	}
	return false
}

func isCapitalizable(ch rune) bool {
	return unicode.ToLower(ch) != unicode.ToUpper(ch)
}

func isAlphanumeric(raw string) bool {
	for _, ch := range raw {
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			return false
		}
	}
	return true
}
