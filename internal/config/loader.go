package config

import (
	"fmt"
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
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// a config file.
const maxUpwardSearchLevels = 10

var configFileUsed string

// configExistsIn returns the socql config file in dir, if any.
func configExistsIn(dir string) string {
	for _, name := range []string{"socql.yaml", "socql.yml"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigFile returns the config file to use: the explicit path if
// given, else the nearest socql.yaml/socql.yml walking upward from the
// working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configExistsIn(dir); found != "" {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"schema_path":   "",
		"verbose":       false,
		"output":        DefaultOutput,
		"server.listen": DefaultListen,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file.
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables (SOCQL_ prefix).
	// Transform: SOCQL_SCHEMA_PATH -> schema_path, SOCQL_SERVER__LISTEN ->
	// server.listen (double underscore separates nesting levels).
	if err := k.Load(env.Provider("SOCQL_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "SOCQL_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority).
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// The CLI uses --schema for brevity; the config key is
			// schema_path.
			if key == "schema" {
				return "schema_path", posflag.FlagVal(flags, f)
			}
			if key == "listen" {
				return "server.listen", posflag.FlagVal(flags, f)
			}
			if key == "watch" {
				return "server.watch_schema", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Resolve a file-sourced schema path relative to the config file's
	// directory so a project-level socql.yaml works from any subdirectory.
	if cfg.SchemaPath != "" && !filepath.IsAbs(cfg.SchemaPath) && configFileUsed != "" {
		if flags == nil || !flags.Changed("schema") {
			cfg.SchemaPath = filepath.Join(filepath.Dir(configFileUsed), cfg.SchemaPath)
		}
	}

	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}
