package commands

import (
	"context"
	"fmt"

	intconfig "github.com/leapstack-labs/sqlfmt/internal/config"
	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/lint"
)

// configKey stores the loaded configuration in a command's context. Root
// command setup calls SetConfig; subcommands call GetConfig. Kept in this
// package (rather than package cli) so commands doesn't import cli and
// create an import cycle.
type configKey struct{}

// SetConfig returns a context carrying cfg, for the root command's
// PersistentPreRunE to stash the loaded configuration.
func SetConfig(ctx context.Context, cfg *intconfig.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the configuration stashed by SetConfig, falling back
// to built-in defaults if none was set.
func GetConfig(ctx context.Context) *intconfig.Config {
	if cfg, ok := ctx.Value(configKey{}).(*intconfig.Config); ok {
		return cfg
	}
	return intconfig.Defaults()
}

func resolveDialect(name string) (*dialect.Dialect, error) {
	if name == "" {
		name = "ansi"
	}
	d, err := dialect.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown dialect %q: %w", name, err)
	}
	return d, nil
}

// defaultPaths is used when a command is invoked with no path arguments.
var defaultPaths = []string{"."}

func pathsOrDefault(args []string) []string {
	if len(args) == 0 {
		return defaultPaths
	}
	return args
}

func hasErrorSeverity(violations []lint.Violation) bool {
	for _, v := range violations {
		if v.Severity == lint.SeverityError {
			return true
		}
	}
	return false
}
