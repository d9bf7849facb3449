package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/structurizr-site/generatr/internal/config"
	"github.com/structurizr-site/generatr/internal/output"
	"github.com/structurizr-site/generatr/internal/plantuml"
	"github.com/structurizr-site/generatr/internal/serve"
	"github.com/structurizr-site/generatr/internal/site"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site locally and regenerate it when the workspace changes",
		Long: `serve generates the site into memory and serves it over HTTP. The workspace
file is watched; every change regenerates the site and, with live reload
enabled, reloads open browser tabs.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address")
	cmd.Flags().Bool("live-reload", true, "Reload open pages after every rebuild")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)

	cached, err := plantuml.NewCachedRenderer(newRenderer(nil, cfg), cfg.PlantUML.CacheSize)
	if err != nil {
		return err
	}
	srv := serve.New(siteBuilder(cfg, cached, log), log)

	ctx := cmd.Context()
	if err := srv.Rebuild(ctx); err != nil {
		return err
	}
	go func() {
		if err := srv.Watch(ctx, cfg.Workspace); err != nil {
			log.Error("watch stopped", "error", err)
		}
	}()
	return srv.ListenAndServe(ctx, cfg.Serve.Addr)
}

// siteBuilder reloads the workspace and regenerates the whole site in memory.
// Diagrams whose source did not change come from the shared cache.
func siteBuilder(cfg *config.Config, cached *plantuml.CachedRenderer, log *slog.Logger) serve.BuildFunc {
	return func(ctx context.Context) (*output.MemWriter, error) {
		ws, err := loadWorkspace(cfg)
		if err != nil {
			return nil, err
		}
		opts := siteOptions(cfg)
		opts.LiveReload = cfg.Serve.LiveReload
		gctx := site.NewGeneratorContext(ws, cached.WithWorkspace(ws), opts)
		gctx.Logger = log

		out := output.NewMemWriter()
		res, err := site.Generate(ctx, gctx, out)
		if err != nil {
			return nil, err
		}
		if !res.Success {
			return nil, errors.New(res.Summary())
		}
		if len(res.Warnings) > 0 {
			log.Warn(res.Summary(), "skipped", res.Skipped)
		} else {
			log.Info(res.Summary())
		}
		return out, nil
	}
}
