package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structurizr-site/generatr/internal/workspace"
)

var shopWorkspace = filepath.Join("..", "..", "internal", "workspace", "testdata", "shop.json")

func fakePlantUML(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--config-dir", t.TempDir()))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateSite(t *testing.T) {
	plantuml := fakePlantUML(t)
	out := t.TempDir()

	stdout, _, err := execute(t, "generate-site",
		"-w", shopWorkspace, "-o", out,
		"--plantuml-server", plantuml.URL, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok: 14 pages")

	for _, p := range []string{
		"index.html",
		"css/style.css",
		"software-systems/orders/index.html",
		"software-systems/payments/deployment/index.html",
		"svg/orders-context.svg",
		"puml/orders-context.puml",
	} {
		assert.FileExists(t, filepath.Join(out, p))
	}
}

func TestGenerateSiteBadWorkspace(t *testing.T) {
	ws := filepath.Join(t.TempDir(), "workspace.json")
	require.NoError(t, os.WriteFile(ws, []byte(`{"model":`), 0o644))

	_, _, err := execute(t, "generate-site", "-w", ws, "-o", t.TempDir())
	var pe *workspace.ParseError
	require.ErrorAs(t, err, &pe)
}

func TestGenerateSiteInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "generate-site", "-w", shopWorkspace, "--parallelism", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate.parallelism")
}

func TestConvertRoundTrip(t *testing.T) {
	dir := t.TempDir()
	hclPath := filepath.Join(dir, "shop.hcl")
	jsonPath := filepath.Join(dir, "shop.json")

	_, _, err := execute(t, "convert", shopWorkspace, hclPath)
	require.NoError(t, err)
	_, _, err = execute(t, "convert", hclPath, jsonPath)
	require.NoError(t, err)

	ws, err := workspace.Load(jsonPath, workspace.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Shop Architecture", ws.SiteTitle())
	assert.Len(t, ws.DynamicViews("2"), 2)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "generatr dev")
}
