package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/structurizr-site/generatr/internal/output"
	"github.com/structurizr-site/generatr/internal/result"
	"github.com/structurizr-site/generatr/internal/site"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-site",
		Short: "Generate the site into an output directory",
		Example: `  generatr generate-site -w workspace.json -o build/site
  generatr generate-site -w workspace.hcl --var env=prod --json`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	cmd.Flags().StringP("output", "o", "", "Output directory")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)

	ws, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}
	gctx := site.NewGeneratorContext(ws, newRenderer(ws, cfg), siteOptions(cfg))
	gctx.Logger = log

	res, genErr := site.Generate(cmd.Context(), gctx, output.NewDirWriter(cfg.Output))
	if err := printResult(cmd, res); err != nil {
		return err
	}
	if genErr != nil {
		return fmt.Errorf("generate site: %w", genErr)
	}
	if !res.Success {
		return errors.New("generate site: see errors above")
	}
	return nil
}

func printResult(cmd *cobra.Command, res *result.GenerateResult) error {
	if res == nil {
		return nil
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	errOut := cmd.ErrOrStderr()
	for _, e := range res.Errors {
		fmt.Fprintf(errOut, "ERROR [%s] %s\n", e.Entity, e.Message)
		if e.Suggestion != "" {
			fmt.Fprintf(errOut, "  suggestion: %s\n", e.Suggestion)
		}
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(errOut, "WARN [%s] %s\n", w.Entity, w.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
	return nil
}
