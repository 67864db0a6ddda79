// Package config loads the layered configuration this core and its CLI run
// under: built-in defaults, an optional project file, environment
// variables, and command-line flags, in that order of increasing
// precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/lint"
)

// Config is the typed configuration surface every consumer (the CLI, the
// watch loop, the driver) resolves down to before calling pkg/lint.
type Config struct {
	Dialect       string                       `koanf:"dialect"`
	Include       []string                     `koanf:"include"`
	Exclude       []string                     `koanf:"exclude"`
	MaxLineLength int                          `koanf:"max_line_length"`
	Rules         map[string]map[string]any    `koanf:"rules"`
	Severity      map[string]string            `koanf:"severity"`
	History       HistoryConfig                `koanf:"history"`
}

// HistoryConfig configures the violation-history store (internal/history).
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// DefaultDialect is used when no dialect is configured anywhere in the
// layering chain.
const DefaultDialect = "ansi"

// DefaultMaxLineLength has the same value as pkg/reflow.DefaultMaxLineLength.
// pkg/reflow applies no fallback of its own: BreakLongLines checks against
// whatever length it is passed, including zero.
const DefaultMaxLineLength = 80

// DefaultHistoryPath is where internal/history opens its sqlite database
// when Config.History.Path is unset.
const DefaultHistoryPath = ".sqlfmt/history.db"

// Defaults returns a Config with every field set to its built-in default,
// the bottom layer of the defaults → file → env → flags stack.
func Defaults() *Config {
	return &Config{
		Dialect:       DefaultDialect,
		MaxLineLength: DefaultMaxLineLength,
		Rules:         make(map[string]map[string]any),
		Severity:      make(map[string]string),
		History: HistoryConfig{
			Path: DefaultHistoryPath,
		},
	}
}

func parseSeverity(s string) (lint.Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return lint.SeverityError, nil
	case "warning":
		return lint.SeverityWarning, nil
	case "info":
		return lint.SeverityInfo, nil
	case "hint":
		return lint.SeverityHint, nil
	default:
		return 0, fmt.Errorf("config: unknown severity %q", s)
	}
}

// ToLintConfig translates the layered Config into a pkg/lint.Config, the
// shape LintString/FixString actually take.
func (c *Config) ToLintConfig() (*lint.Config, error) {
	lc := lint.NewConfig()
	lc.Include = c.Include
	lc.Exclude = c.Exclude

	for ruleID, opts := range c.Rules {
		lc.SetRuleOptions(ruleID, opts)
	}
	for ruleID, sev := range c.Severity {
		parsed, err := parseSeverity(sev)
		if err != nil {
			return nil, fmt.Errorf("config: severity override for %q: %w", ruleID, err)
		}
		lc.SetSeverity(ruleID, parsed)
	}
	return lc, nil
}
