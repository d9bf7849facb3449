package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), nil)
	require.NoError(t, err)

	d := DefaultConfig()
	assert.Equal(t, d.Workspace, cfg.Workspace)
	assert.Equal(t, d.PlantUML.Server, cfg.PlantUML.Server)
	assert.Equal(t, d.Generate.Parallelism, cfg.Generate.Parallelism)
	assert.True(t, cfg.Serve.LiveReload)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	yaml := "workspace: shop.hcl\n" +
		"variables:\n  brand: Shop\n" +
		"plantuml:\n  server: http://file.example/plantuml\n  cacheSize: 10\n" +
		"generate:\n  parallelism: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "generatr.yaml"), []byte(yaml), 0o644))
	t.Setenv("GENERATR_PLANTUML_SERVER", "http://env.example/plantuml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("parallelism", 1, "")
	require.NoError(t, flags.Parse([]string{"--parallelism=4"}))

	cfg, err := Load(dir, flags)
	require.NoError(t, err)

	assert.Equal(t, "shop.hcl", cfg.Workspace)
	assert.Equal(t, map[string]string{"brand": "Shop"}, cfg.Variables)
	assert.Equal(t, "http://env.example/plantuml", cfg.PlantUML.Server, "env overrides file")
	assert.Equal(t, 10, cfg.PlantUML.CacheSize)
	assert.Equal(t, 4, cfg.Generate.Parallelism, "flag overrides file")
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "generatr.yaml"), []byte("output: [unclosed"), 0o644))

	_, err := Load(dir, nil)
	assert.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"no workspace", func(c *Config) { c.Workspace = "" }, "workspace"},
		{"no output", func(c *Config) { c.Output = "" }, "output"},
		{"bad server", func(c *Config) { c.PlantUML.Server = "ftp://x" }, "plantuml.server"},
		{"zero parallelism", func(c *Config) { c.Generate.Parallelism = 0 }, "generate.parallelism"},
		{"too parallel", func(c *Config) { c.Generate.Parallelism = MaxParallelism + 1 }, "generate.parallelism"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			var ce *Error
			require.ErrorAs(t, cfg.Validate(), &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Field: "output", Message: "required"}
	assert.Equal(t, "config error in field 'output': required", err.Error())
}
