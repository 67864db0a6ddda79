package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
)

// init registers the built-in dialect set, so anything importing this
// package can resolve a Config.Dialect string via dialect.Get without its
// own separate wiring step.
func init() {
	dialect.RegisterBuiltins()
}

// FileName is the project config file name this core looks for.
const FileName = ".sqlfmt.yml"

// FileNameAlt is the alternate spelling accepted alongside FileName.
const FileNameAlt = ".sqlfmt.yaml"

// EnvPrefix is the environment variable prefix layered over the file
// config (e.g. SQLFMT_DIALECT, SQLFMT_MAX_LINE_LENGTH).
const EnvPrefix = "SQLFMT_"

// Load resolves the layered Config for dir: built-in defaults, then
// FileName/FileNameAlt if present in dir, then SQLFMT_*-prefixed
// environment variables, then flags if a non-nil flag set is given
//. Each layer only overrides keys it actually sets.
func Load(dir string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, err
	}

	if path := findConfigFile(dir); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envTransform turns SQLFMT_MAX_LINE_LENGTH into max_line_length and
// SQLFMT_HISTORY__PATH into history.path: a double underscore is the
// nesting separator, a single one stays part of the key name.
func envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	return key, value
}

// defaultsMap mirrors Defaults() as a dotted-key map, the shape
// confmap.Provider expects as the bottom layer of the stack.
func defaultsMap() map[string]any {
	d := Defaults()
	return map[string]any{
		"dialect":         d.Dialect,
		"max_line_length": d.MaxLineLength,
		"history.enabled": d.History.Enabled,
		"history.path":    d.History.Path,
	}
}

func findConfigFile(dir string) string {
	for _, name := range []string{FileName, FileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindProjectRoot walks up from startDir looking for a directory
// containing FileName or FileNameAlt, returning "" if it reaches the
// filesystem root without finding one.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		if findConfigFile(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
