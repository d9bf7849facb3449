package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structurizr-site/generatr/internal/config"
	"github.com/structurizr-site/generatr/internal/logger"
	"github.com/structurizr-site/generatr/internal/plantuml"
)

func TestSiteBuilderLogsWarnings(t *testing.T) {
	srv := fakePlantUML(t)
	cfg := config.DefaultConfig()
	cfg.Workspace = shopWorkspace
	cfg.PlantUML.Server = srv.URL

	cached, err := plantuml.NewCachedRenderer(newRenderer(nil, cfg), 16)
	require.NoError(t, err)
	var logs bytes.Buffer
	log := logger.New(logger.Options{Level: "info", Format: "text", Writer: &logs})

	out, err := siteBuilder(cfg, cached, log)(context.Background())
	require.NoError(t, err)
	_, ok := out.Get("software-systems/payments/dynamic/index.html")
	assert.True(t, ok)

	// payment-flow has no elements, so its page is replaced by a placeholder.
	assert.Contains(t, logs.String(), "diagram rendering failed")
	assert.Contains(t, logs.String(), "view=payment-flow")
	assert.Contains(t, logs.String(), "1 skipped")
}
