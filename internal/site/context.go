package site

import (
	"context"
	"log/slog"

	"github.com/structurizr-site/generatr/internal/logger"
	"github.com/structurizr-site/generatr/internal/markup"
	"github.com/structurizr-site/generatr/internal/workspace"
)

// DiagramRenderer produces diagrams for views. Implementations must be safe for concurrent use.
type DiagramRenderer interface {
	// Render returns the diagram source of v and the SVG rendered from it.
	Render(ctx context.Context, v *workspace.View) (source string, svg []byte, err error)
}

// GeneratorContext carries what every page constructor and renderer needs.
// It is read-only once generation starts.
type GeneratorContext struct {
	Workspace *workspace.Workspace
	Renderer  DiagramRenderer
	Markup    *markup.Registry
	Logger    *slog.Logger
	Options   Options
}

// NewGeneratorContext returns a context using the default markup registry and a discarding logger.
func NewGeneratorContext(ws *workspace.Workspace, r DiagramRenderer, opts Options) *GeneratorContext {
	return &GeneratorContext{
		Workspace: ws,
		Renderer:  r,
		Markup:    markup.Default,
		Logger:    logger.Discard(),
		Options:   opts,
	}
}

// SiteTitle is the title shown on every page.
func (g *GeneratorContext) SiteTitle() string {
	if g.Options.SiteTitle != "" {
		return g.Options.SiteTitle
	}
	return g.Workspace.SiteTitle()
}
