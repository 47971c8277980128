package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soclabs/socql/pkg/validate"
)

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "socql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.SchemaPath)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultListen, cfg.Server.Listen)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
output: json
verbose: true
server:
  listen: ":9000"
validation:
  disabled:
    - UNKNOWN_FIELD
  max_regex_pattern_length: 50
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ":9000", cfg.Server.Listen)
	assert.Equal(t, []string{"UNKNOWN_FIELD"}, cfg.Validation.Disabled)
	assert.Equal(t, 50, cfg.Validation.MaxRegexPatternLength)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadFindsConfigUpward(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "output: markdown\n")

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "output: markdown\n")

	t.Setenv("SOCQL_OUTPUT", "json")
	t.Setenv("SOCQL_SERVER__LISTEN", ":7777")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, ":7777", cfg.Server.Listen)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SOCQL_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", DefaultOutput, "")
	flags.String("schema", "", "")
	require.NoError(t, flags.Set("output", "text"))
	require.NoError(t, flags.Set("schema", "fields.yaml"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, "fields.yaml", cfg.SchemaPath)
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "output: markdown\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", DefaultOutput, "")

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestSchemaPathRelativeToConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "schema_path: schemas/fields.yaml\n")

	nested := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "schemas", "fields.yaml"), cfg.SchemaPath)
}

func TestValidatorConfig(t *testing.T) {
	cfg := &Config{
		Validation: ValidationConfig{
			Disabled:              []string{"DUPLICATE_FIELD"},
			Severity:              map[string]string{"UNKNOWN_FIELD": "error"},
			MaxRegexPatternLength: 99,
		},
	}

	vcfg, err := cfg.ValidatorConfig()
	require.NoError(t, err)
	assert.Contains(t, vcfg.Disabled, "DUPLICATE_FIELD")
	assert.Equal(t, validate.SeverityError, vcfg.Severity["UNKNOWN_FIELD"])
	assert.Equal(t, 99, vcfg.MaxRegexPatternLength)
}

func TestValidatorConfigBadSeverity(t *testing.T) {
	cfg := &Config{
		Validation: ValidationConfig{
			Severity: map[string]string{"UNKNOWN_FIELD": "fatal"},
		},
	}

	_, err := cfg.ValidatorConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNKNOWN_FIELD")
}
