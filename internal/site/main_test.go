package site

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/structurizr-site/generatr/internal/plantuml"
	"github.com/structurizr-site/generatr/internal/workspace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeRenderer builds real diagram sources but returns a stub SVG without a server.
type fakeRenderer struct {
	ws    *workspace.Workspace
	calls atomic.Int32
	fail  map[string]bool
}

func (f *fakeRenderer) Render(ctx context.Context, v *workspace.View) (string, []byte, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if f.fail[v.Key] {
		return "", nil, errors.New("server unavailable")
	}
	src, err := plantuml.Source(f.ws, v)
	if err != nil {
		return "", nil, err
	}
	return src, []byte(`<?xml version="1.0" encoding="UTF-8"?><svg data-view="` + v.Key + `"></svg>`), nil
}

func newContext(t *testing.T, ws *workspace.Workspace) (*GeneratorContext, *fakeRenderer) {
	t.Helper()
	r := &fakeRenderer{ws: ws}
	return NewGeneratorContext(ws, r, Options{Parallelism: 4}), r
}

func loadShop(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.Load(filepath.Join("..", "workspace", "testdata", "shop.json"), workspace.DecodeOptions{})
	require.NoError(t, err)
	return ws
}

// ordersPayments has one dynamic view for Orders, one for Payments and a system without views.
const ordersPayments = `{
  "name": "Scenario",
  "model": {
    "people": [{
      "id": "u", "name": "User",
      "relationships": [
        {"id": "r1", "sourceId": "u", "destinationId": "o", "description": "Orders"},
        {"id": "r2", "sourceId": "u", "destinationId": "p", "description": "Pays"}
      ]
    }],
    "softwareSystems": [
      {"id": "o", "name": "Orders"},
      {"id": "p", "name": "Payments"},
      {"id": "e", "name": "Empty"}
    ]
  },
  "views": {
    "dynamicViews": [
      {"key": "place-order", "elementId": "o", "relationships": [{"id": "r1", "order": "1"}]},
      {"key": "pay", "elementId": "p", "relationships": [{"id": "r2", "order": "1"}]}
    ]
  }
}`

func loadScenario(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.Decode([]byte(ordersPayments), workspace.FormatJSON, workspace.DecodeOptions{})
	require.NoError(t, err)
	return ws
}

func systemNamed(t *testing.T, ws *workspace.Workspace, name string) *workspace.SoftwareSystem {
	t.Helper()
	for _, s := range ws.SoftwareSystems() {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no software system %q", name)
	return nil
}
