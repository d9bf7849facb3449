package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/structurizr-site/generatr/internal/workspace"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a workspace between JSON and HCL",
		Long: `convert reads a workspace and writes it in the other format. The output
format is taken from the output file extension (.hcl or .json).`,
		Example: `  generatr convert workspace.json workspace.hcl
  generatr convert workspace.hcl workspace.json --var env=prod`,
		Args: cobra.ExactArgs(2),
		RunE: runConvert,
	}
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	vars, err := cmd.Flags().GetStringToString("var")
	if err != nil {
		return err
	}
	ws, err := workspace.Load(args[0], workspace.DecodeOptions{Variables: vars})
	if err != nil {
		return err
	}
	data, err := encodeWorkspace(ws, workspace.DetectFormat(args[1]))
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args[1], err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "wrote", args[1])
	return nil
}

func encodeWorkspace(ws *workspace.Workspace, format workspace.Format) ([]byte, error) {
	if format == workspace.FormatHCL {
		return workspace.EncodeHCL(ws), nil
	}
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}
