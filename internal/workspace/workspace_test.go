package workspace

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadShop(t *testing.T) *Workspace {
	t.Helper()
	ws, err := Load(filepath.Join("testdata", "shop.json"), DecodeOptions{})
	require.NoError(t, err)
	return ws
}

func keys(views []*View) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Key)
	}
	return out
}

func TestLoadJSON(t *testing.T) {
	ws := loadShop(t)

	assert.Equal(t, "Shop Architecture", ws.SiteTitle())
	require.Len(t, ws.SoftwareSystems(), 2)
	assert.Equal(t, "Orders", ws.SoftwareSystem("2").Name)
	assert.Equal(t, "Markdown", ws.Documentation.Sections[0].Format)

	ci, ok := ws.Element("12")
	require.True(t, ok)
	assert.Equal(t, KindContainerInstance, ci.Kind)
	assert.Equal(t, "Orders API", ci.Name)
	assert.Equal(t, "Production", ci.Environment, "environment inherited from the parent node")
}

func TestViewAccessors(t *testing.T) {
	ws := loadShop(t)

	assert.Equal(t, []string{"orders-context"}, keys(ws.SystemContextViews("2")))
	assert.Equal(t, []string{"orders-containers"}, keys(ws.ContainerViews("2")))
	assert.Equal(t, []string{"api-components"}, keys(ws.ComponentViews("4")))
	assert.Equal(t, []string{"orders-prod"}, keys(ws.DeploymentViews("2")))
	assert.False(t, ws.HasContainerViews("3"))
	assert.False(t, ws.HasDeploymentViews("3"))

	// api-flow is scoped to a container of Orders and belongs to Orders.
	assert.Equal(t, []string{"checkout", "api-flow"}, keys(ws.DynamicViews("2")))
	assert.Equal(t, []string{"payment-flow"}, keys(ws.DynamicViews("3")))
	assert.True(t, ws.HasDynamicViews("3"))
}

func TestElementsInDefaults(t *testing.T) {
	ws := loadShop(t)

	assert.Equal(t, []string{"1", "2", "3"}, ws.ElementsIn(ws.View("landscape")))
	assert.Equal(t, []string{"2", "1", "3"}, ws.ElementsIn(ws.View("orders-context")))
	assert.Equal(t, []string{"4", "5", "1", "3"}, ws.ElementsIn(ws.View("orders-containers")))
	assert.Equal(t, []string{"1", "2", "3"}, ws.ElementsIn(ws.View("checkout")))
	assert.Equal(t, []string{"10", "13", "11", "12"}, ws.ElementsIn(ws.View("orders-prod")))

	rels := ws.RelationshipsIn(ws.View("orders-context"))
	require.Len(t, rels, 2)
	assert.Equal(t, "r1", rels[0].ID)
	assert.Equal(t, "r2", rels[1].ID)
}

func TestStepsSortedByOrder(t *testing.T) {
	ws := loadShop(t)
	steps := Steps(ws.View("checkout"))
	require.Len(t, steps, 2)
	assert.Equal(t, "r1", steps[0].ID)
	assert.Equal(t, "r2", steps[1].ID)
}

func TestValidateProblems(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "duplicate id",
			json: `{"model":{"softwareSystems":[{"id":"1","name":"A"},{"id":"1","name":"B"}]}}`,
			want: "duplicate element id: 1",
		},
		{
			name: "duplicate system name",
			json: `{"model":{"softwareSystems":[{"id":"1","name":"A"},{"id":"2","name":"A"}]}}`,
			want: `software system name "A" is also used by 1`,
		},
		{
			name: "dangling relationship",
			json: `{"model":{"softwareSystems":[{"id":"1","name":"A","relationships":[{"id":"r","sourceId":"1","destinationId":"9"}]}]}}`,
			want: "relationship destination not found: 9",
		},
		{
			name: "view scoped to unknown system",
			json: `{"model":{"softwareSystems":[{"id":"1","name":"A"}]},"views":{"systemContextViews":[{"key":"c","softwareSystemId":"7"}]}}`,
			want: "system_context view c is scoped to unknown element 7",
		},
		{
			name: "duplicate view key",
			json: `{"model":{"softwareSystems":[{"id":"1","name":"A"}]},"views":{"systemLandscapeViews":[{"key":"k"}],"containerViews":[{"key":"k","softwareSystemId":"1"}]}}`,
			want: "duplicate view key: k",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.json), FormatJSON, DecodeOptions{})
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %v", err)
			assert.Contains(t, pe.Error(), tt.want)
		})
	}
}

func TestUnknownViewElementIsNotFatal(t *testing.T) {
	ws, err := Decode([]byte(`{
		"model":{"softwareSystems":[{"id":"1","name":"A"}]},
		"views":{"systemContextViews":[{"key":"c","softwareSystemId":"1","elements":[{"id":"1"},{"id":"ghost"}]}]}
	}`), FormatJSON, DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "ghost"}, ws.ElementsIn(ws.View("c")))
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"model":`), FormatJSON, DecodeOptions{})
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "parse JSON")
}

func TestLoadHCL(t *testing.T) {
	ws, err := Load(filepath.Join("testdata", "shop.hcl"), DecodeOptions{
		Variables: map[string]string{"brand": "Shop"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Shop Architecture", ws.SiteTitle())
	assert.Equal(t, "TAKES ORDERS", ws.SoftwareSystem("orders").Description)
	assert.Equal(t, "orders", ws.SoftwareSystemOf("checkout"))

	checkout := ws.View("checkout")
	require.NotNil(t, checkout)
	require.Len(t, checkout.Relationships, 2)
	assert.Equal(t, "1", checkout.Relationships[0].Order)
	assert.Equal(t, "Submit order", checkout.Relationships[0].Description)
	assert.Equal(t, "customer", ws.Relationship(checkout.Relationships[0].ID).SourceID)

	inst, ok := ws.Element("ecs.orders-api")
	require.True(t, ok)
	assert.Equal(t, "Production", inst.Environment)
	assert.Equal(t, []string{"checkout"}, keys(ws.DynamicViews("orders")))
}

func TestLoadHCLUnknownStep(t *testing.T) {
	src := `workspace {
  software_system "a" {}
  software_system "b" {}
  view "dynamic" "d" {
    step {
      from = "a"
      to   = "b"
    }
  }
}`
	_, err := Decode([]byte(src), FormatHCL, DecodeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no relationship from "a" to "b"`)
}

func TestLoadHCLSyntaxError(t *testing.T) {
	_, err := Decode([]byte(`workspace {`), FormatHCL, DecodeOptions{})
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "parse HCL")
}

func TestEncodeHCLRoundTrip(t *testing.T) {
	ws := loadShop(t)

	out := EncodeHCL(ws)
	back, err := Decode(out, FormatHCL, DecodeOptions{})
	require.NoError(t, err, string(out))

	assert.Equal(t, ws.SiteTitle(), back.SiteTitle())
	assert.Equal(t, keys(ws.DynamicViews("2")), keys(back.DynamicViews("2")))
	assert.Len(t, back.View("checkout").Relationships, 2)
	assert.Equal(t, "Submit order", back.View("checkout").Relationships[0].Description)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatHCL, DetectFormat("site/workspace.HCL"))
	assert.Equal(t, FormatJSON, DetectFormat("workspace.json"))
	assert.Equal(t, FormatJSON, DetectFormat("workspace"))
}
