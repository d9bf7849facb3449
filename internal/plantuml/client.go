package plantuml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/structurizr-site/generatr/internal/workspace"
)

const (
	// DefaultServerURL is the public PlantUML server.
	DefaultServerURL = "https://www.plantuml.com/plantuml"
	// DefaultTimeout bounds a single render request.
	DefaultTimeout = 30 * time.Second

	maxSVGBytes = 16 << 20
)

// ErrTooLarge is returned for SVG answers over the size limit.
var ErrTooLarge = errors.New("diagram too large")

// Options configures a Renderer.
type Options struct {
	ServerURL  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// ServerError is a non-200 answer from the PlantUML server.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("plantuml server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("plantuml server returned %d", e.Status)
}

// Renderer turns views into SVG through a PlantUML server.
type Renderer struct {
	ws     *workspace.Workspace
	server string
	client *http.Client
}

// NewRenderer creates a Renderer for the views of ws.
func NewRenderer(ws *workspace.Workspace, opts Options) *Renderer {
	server := opts.ServerURL
	if server == "" {
		server = DefaultServerURL
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Renderer{ws: ws, server: strings.TrimRight(server, "/"), client: client}
}

// Source returns the PlantUML source of a view.
func (r *Renderer) Source(v *workspace.View) (string, error) {
	return Source(r.ws, v)
}

// Render builds the source of a view and renders it to SVG.
func (r *Renderer) Render(ctx context.Context, v *workspace.View) (string, []byte, error) {
	src, err := r.Source(v)
	if err != nil {
		return "", nil, err
	}
	svg, err := r.RenderSource(ctx, src)
	if err != nil {
		return "", nil, err
	}
	return src, svg, nil
}

// RenderSource renders PlantUML source to SVG.
func (r *Renderer) RenderSource(ctx context.Context, src string) ([]byte, error) {
	encoded, err := Encode(src)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.server+"/svg/"+encoded, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request svg: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSVGBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ServerError{Status: resp.StatusCode, Message: resp.Header.Get("X-PlantUML-Diagram-Error")}
	}
	if len(body) > maxSVGBytes {
		return nil, fmt.Errorf("svg exceeds %d bytes: %w", maxSVGBytes, ErrTooLarge)
	}
	return body, nil
}
