package workspace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is the on-disk encoding of a workspace.
type Format string

const (
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// DetectFormat picks the format from a file extension; anything but .hcl is JSON.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return FormatHCL
	}
	return FormatJSON
}

// DecodeOptions configures workspace decoding.
type DecodeOptions struct {
	// Variables are exposed to HCL workspaces as var.<name>.
	Variables map[string]string
	// Filename is used in diagnostics.
	Filename string
}

// Load reads, decodes and validates the workspace at path.
func Load(path string, opts DecodeOptions) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if opts.Filename == "" {
		opts.Filename = path
	}
	ws, err := Decode(data, DetectFormat(path), opts)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	return ws, nil
}

// Decode parses a workspace in the given format and validates it.
// Every failure is a *ParseError.
func Decode(data []byte, format Format, opts DecodeOptions) (*Workspace, error) {
	var ws *Workspace
	switch format {
	case FormatJSON:
		ws = &Workspace{}
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(ws); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("parse JSON: %w", err)}
		}
	case FormatHCL:
		var err error
		ws, err = decodeHCL(data, opts)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
	default:
		return nil, &ParseError{Err: fmt.Errorf("unsupported workspace format %q", format)}
	}
	if problems := Validate(ws); len(problems) > 0 {
		return nil, &ParseError{Problems: problems}
	}
	return ws, nil
}
