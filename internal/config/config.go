package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds generator settings.
type Config struct {
	Workspace string            `mapstructure:"workspace"`
	Output    string            `mapstructure:"output"`
	SiteTitle string            `mapstructure:"siteTitle"`
	Variables map[string]string `mapstructure:"variables"`
	PlantUML  PlantUMLConfig    `mapstructure:"plantuml"`
	Generate  GenerateConfig    `mapstructure:"generate"`
	Serve     ServeConfig       `mapstructure:"serve"`
	Logging   LoggingConfig     `mapstructure:"logging"`
}

// PlantUMLConfig configures diagram rendering.
type PlantUMLConfig struct {
	Server         string `mapstructure:"server"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
	CacheSize      int    `mapstructure:"cacheSize"`
}

// GenerateConfig configures page generation.
type GenerateConfig struct {
	Parallelism int `mapstructure:"parallelism"`
}

// ServeConfig configures the development server.
type ServeConfig struct {
	Addr       string `mapstructure:"addr"`
	LiveReload bool   `mapstructure:"liveReload"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MaxParallelism caps concurrent page generation.
const MaxParallelism = 32

// EnvPrefix prefixes environment overrides, e.g. GENERATR_PLANTUML_SERVER.
const EnvPrefix = "GENERATR"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workspace: "workspace.json",
		Output:    "build/site",
		PlantUML: PlantUMLConfig{
			Server:         "https://www.plantuml.com/plantuml",
			TimeoutSeconds: 30,
			CacheSize:      256,
		},
		Generate: GenerateConfig{
			Parallelism: defaultParallelism(),
		},
		Serve: ServeConfig{
			Addr:       "127.0.0.1:8080",
			LiveReload: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func defaultParallelism() int {
	n := runtime.NumCPU()
	if n > MaxParallelism {
		n = MaxParallelism
	}
	return n
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("workspace", d.Workspace)
	v.SetDefault("output", d.Output)
	v.SetDefault("siteTitle", d.SiteTitle)
	v.SetDefault("plantuml.server", d.PlantUML.Server)
	v.SetDefault("plantuml.timeoutSeconds", d.PlantUML.TimeoutSeconds)
	v.SetDefault("plantuml.cacheSize", d.PlantUML.CacheSize)
	v.SetDefault("generate.parallelism", d.Generate.Parallelism)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("serve.liveReload", d.Serve.LiveReload)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"workspace":       "workspace",
	"output":          "output",
	"site-title":      "siteTitle",
	"plantuml-server": "plantuml.server",
	"parallelism":     "generate.parallelism",
	"addr":            "serve.addr",
	"live-reload":     "serve.liveReload",
	"log-level":       "logging.level",
	"log-format":      "logging.format",
}

// Load reads generatr.yaml from dir (if present), then GENERATR_* environment
// variables, then any of the given flags that were set explicitly.
func Load(dir string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("generatr")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if dir != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Workspace == "" {
		return &Error{Field: "workspace", Message: "a workspace file is required"}
	}
	if c.Output == "" {
		return &Error{Field: "output", Message: "an output directory is required"}
	}
	if !strings.HasPrefix(c.PlantUML.Server, "http://") && !strings.HasPrefix(c.PlantUML.Server, "https://") {
		return &Error{Field: "plantuml.server", Message: "must be an http or https URL"}
	}
	if c.Generate.Parallelism < 1 || c.Generate.Parallelism > MaxParallelism {
		return &Error{Field: "generate.parallelism", Message: fmt.Sprintf("must be between 1 and %d", MaxParallelism)}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return &Error{Field: "logging.format", Message: "must be json or text"}
	}
	return nil
}

// Error is a configuration problem in one field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
