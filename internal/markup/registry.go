package markup

import (
	"errors"
	"fmt"
	"html"
	"html/template"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupportedFormat is wrapped by RenderError when no renderer handles a format.
var ErrUnsupportedFormat = errors.New("unsupported documentation format")

// Renderer converts documentation source of one format to HTML.
type Renderer interface {
	Format() string
	Render(src string) (template.HTML, error)
}

// RenderError reports documentation that could not be converted.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s documentation: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Default is the global markup registry.
var Default = New()

// Registry holds documentation renderers keyed by case-insensitive format name.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// New returns a new empty registry.
func New() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer for its format.
func (r *Registry) Register(h Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[strings.ToLower(h.Format())] = h
}

// Get returns the renderer for format, or nil and false.
func (r *Registry) Get(format string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.renderers[strings.ToLower(format)]
	return h, ok
}

// ListSupportedFormats returns the registered formats, sorted.
func (r *Registry) ListSupportedFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formats := make([]string, 0, len(r.renderers))
	for _, h := range r.renderers {
		formats = append(formats, h.Format())
	}
	sort.Strings(formats)
	return formats
}

// Render converts src using the renderer for format. Failures are *RenderError.
func (r *Registry) Render(format, src string) (template.HTML, error) {
	h, ok := r.Get(format)
	if !ok {
		return "", &RenderError{Format: format, Err: ErrUnsupportedFormat}
	}
	out, err := h.Render(src)
	if err != nil {
		return "", &RenderError{Format: format, Err: err}
	}
	return out, nil
}

// Literal shows src verbatim, for documentation that could not be rendered.
func Literal(src string) template.HTML {
	return template.HTML("<pre>" + html.EscapeString(src) + "</pre>")
}
