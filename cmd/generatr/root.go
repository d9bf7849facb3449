package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/structurizr-site/generatr/internal/config"
	"github.com/structurizr-site/generatr/internal/logger"
	"github.com/structurizr-site/generatr/internal/plantuml"
	"github.com/structurizr-site/generatr/internal/site"
	"github.com/structurizr-site/generatr/internal/workspace"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "generatr",
		Short: "Generate a static documentation site from a Structurizr workspace",
		Long: `generatr turns a Structurizr workspace (JSON or HCL) into a static HTML site:
one page per software system and tab, C4 diagrams rendered through a PlantUML
server, and redirect stubs for tabs that have nothing to show.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("generatr version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.String("config-dir", ".", "Directory searched for generatr.yaml")
	pf.StringP("workspace", "w", "", "Workspace file (.json or .hcl)")
	pf.StringToString("var", nil, "HCL workspace variable, name=value (repeatable)")
	pf.String("site-title", "", "Override the site title")
	pf.String("plantuml-server", "", "PlantUML server URL")
	pf.Int("parallelism", 0, fmt.Sprintf("Pages built at once (1-%d)", config.MaxParallelism))
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: json or text")

	root.AddCommand(newGenerateCmd(), newServeCmd(), newConvertCmd(), newVersionCmd())
	return root
}

// loadConfig resolves configuration for cmd from defaults, generatr.yaml,
// the environment and the command line, in increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir, cmd.Flags())
	if err != nil {
		return nil, err
	}
	vars, err := cmd.Flags().GetStringToString("var")
	if err != nil {
		return nil, err
	}
	if len(vars) > 0 && cfg.Variables == nil {
		cfg.Variables = make(map[string]string, len(vars))
	}
	for k, v := range vars {
		cfg.Variables[k] = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
}

func loadWorkspace(cfg *config.Config) (*workspace.Workspace, error) {
	return workspace.Load(cfg.Workspace, workspace.DecodeOptions{Variables: cfg.Variables})
}

func newRenderer(ws *workspace.Workspace, cfg *config.Config) *plantuml.Renderer {
	return plantuml.NewRenderer(ws, plantuml.Options{
		ServerURL: cfg.PlantUML.Server,
		Timeout:   time.Duration(cfg.PlantUML.TimeoutSeconds) * time.Second,
	})
}

func siteOptions(cfg *config.Config) site.Options {
	return site.Options{
		SiteTitle:   cfg.SiteTitle,
		Parallelism: cfg.Generate.Parallelism,
	}
}
