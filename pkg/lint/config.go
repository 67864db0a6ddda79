package lint

import (
	"github.com/leapstack-labs/sqlfmt/pkg/rules"
)

// Config controls which rules run, their per-rule options, and how the
// resolved pack is filtered by name/group and dialect.
type Config struct {
	// Include/Exclude are name, code, or group globs (rules.PackConfig);
	// empty Include means every registered rule.
	Include []string
	Exclude []string

	// RuleOptions holds rule-specific config, keyed by rule name or code,
	// applied via the Configurable interface when a rule implements it.
	RuleOptions map[string]map[string]any

	// SeverityOverrides changes the default severity of rules by name or code.
	SeverityOverrides map[string]Severity
}

// NewConfig creates a default configuration that runs every registered rule
// at its default severity.
func NewConfig() *Config {
	return &Config{
		RuleOptions:       make(map[string]map[string]any),
		SeverityOverrides: make(map[string]Severity),
	}
}

// Disable excludes a rule by name or code.
func (c *Config) Disable(ruleID string) *Config {
	c.Exclude = append(c.Exclude, ruleID)
	return c
}

// SetSeverity overrides the severity reported for a rule's violations.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOptions attaches rule-specific config, consumed by rules that
// implement rules.Configurable (e.g. convention.blocked_words).
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[ruleID] = opts
	return c
}

func (c *Config) severityFor(r rules.Rule) Severity {
	if sev, ok := c.SeverityOverrides[r.Name()]; ok {
		return sev
	}
	if sev, ok := c.SeverityOverrides[r.Code()]; ok {
		return sev
	}
	return r.DefaultSeverity()
}

// resolveRules builds the ordered rule pack for a run: resolve Include/Exclude/dialect via rules.Resolve, then apply
// each rule's config options through Configurable, if it implements one.
func (c *Config) resolveRules(dialectName string) ([]rules.Rule, error) {
	resolved := rules.Resolve(rules.PackConfig{
		Include: c.Include,
		Exclude: c.Exclude,
		Dialect: dialectName,
	})

	out := make([]rules.Rule, 0, len(resolved))
	for _, r := range resolved {
		configurable, ok := r.(rules.Configurable)
		if !ok {
			out = append(out, r)
			continue
		}
		opts, hasOpts := c.RuleOptions[r.Name()]
		if !hasOpts {
			opts, hasOpts = c.RuleOptions[r.Code()]
		}
		if !hasOpts {
			out = append(out, r)
			continue
		}
		loaded, err := configurable.LoadFromConfig(opts)
		if err != nil {
			return nil, err
		}
		out = append(out, loaded)
	}
	return out, nil
}
