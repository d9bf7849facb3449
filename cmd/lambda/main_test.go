package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallWorkspace = `{
  "name": "Tiny",
  "model": {
    "people": [{"id": "1", "name": "User", "relationships": [{"id": "r1", "sourceId": "1", "destinationId": "2", "description": "Uses"}]}],
    "softwareSystems": [{"id": "2", "name": "App"}]
  },
  "views": {
    "systemContextViews": [{"key": "app-context", "softwareSystemId": "2"}]
  }
}`

func invoke(t *testing.T, event LambdaEvent) LambdaResponse {
	t.Helper()
	resp, err := handler(context.Background(), event)
	require.NoError(t, err)
	var out LambdaResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	assert.Equal(t, resp.StatusCode, out.StatusCode)
	return out
}

func TestHandlerGeneratesSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	}))
	defer srv.Close()
	t.Setenv("GENERATR_PLANTUML_SERVER", srv.URL)
	t.Setenv("GENERATR_LOGGING_LEVEL", "error")

	out := invoke(t, LambdaEvent{
		Body:      base64.StdEncoding.EncodeToString([]byte(smallWorkspace)),
		IsBase64:  true,
		SiteTitle: "Tiny Site",
	})
	require.True(t, out.Success, out.Errors)
	assert.Equal(t, http.StatusOK, out.StatusCode)

	page, ok := out.Files["software-systems/app/context/index.html"]
	require.True(t, ok)
	html, err := base64.StdEncoding.DecodeString(page)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Tiny Site")
	assert.Contains(t, out.Files, "svg/app-context.svg")
}

func TestHandlerRejectsBadInput(t *testing.T) {
	out := invoke(t, LambdaEvent{Body: "not base64!", IsBase64: true})
	assert.Equal(t, http.StatusBadRequest, out.StatusCode)
	assert.Equal(t, "invalid_input", out.Errors[0].Type)

	out = invoke(t, LambdaEvent{Body: `workspace {`, Format: "hcl"})
	assert.Equal(t, http.StatusBadRequest, out.StatusCode)
	assert.Equal(t, "invalid_workspace", out.Errors[0].Type)

	out = invoke(t, LambdaEvent{Body: smallWorkspace, Format: "yaml"})
	assert.Equal(t, http.StatusBadRequest, out.StatusCode)
	assert.Contains(t, out.Errors[0].Message, `unsupported workspace format "yaml"`)
}

func TestHandlerFormatIsCaseInsensitive(t *testing.T) {
	// A JSON body read as HCL fails to parse, which shows the HCL decoder was picked.
	out := invoke(t, LambdaEvent{Body: smallWorkspace, Format: "HCL"})
	assert.Equal(t, http.StatusBadRequest, out.StatusCode)
	assert.Equal(t, "invalid_workspace", out.Errors[0].Type)
	assert.Contains(t, out.Errors[0].Message, "HCL")
}
