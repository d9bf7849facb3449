package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed templates/style.css
var stylesheet []byte

var templates = template.Must(template.New("site").ParseFS(templateFS, "templates/*.html"))

// Stylesheet returns the site's CSS.
func Stylesheet() []byte {
	return append([]byte(nil), stylesheet...)
}

// bodyTemplates selects the content template of each page kind.
var bodyTemplates = map[PageKind]string{
	KindHome:                     "home",
	KindSoftwareSystems:          "systems",
	KindSoftwareSystemInfo:       "info",
	KindSoftwareSystemContext:    "diagrams",
	KindSoftwareSystemStructure:  "diagrams",
	KindContainerComponents:      "diagrams",
	KindSoftwareSystemDynamic:    "diagrams",
	KindSoftwareSystemDeployment: "diagrams",
}

type layoutData struct {
	Page *PageViewModel
	Body template.HTML
}

// RenderPage renders a page, or the redirect-up stub when the page is not visible.
// The same view model always renders to the same bytes.
func RenderPage(p *PageViewModel) ([]byte, error) {
	if !p.Visible {
		return execute("redirect", p)
	}
	name, ok := bodyTemplates[p.Kind]
	if !ok {
		return nil, fmt.Errorf("no template for page kind %s", p.Kind)
	}
	body, err := execute(name, p)
	if err != nil {
		return nil, err
	}
	return execute("layout", layoutData{Page: p, Body: template.HTML(body)})
}

// RenderPlaceholder renders the diagnostic page shown instead of a page whose diagram failed.
func RenderPlaceholder(p *PageViewModel, cause error) ([]byte, error) {
	body, err := execute("placeholder", struct {
		Page    *PageViewModel
		Message string
	}{p, cause.Error()})
	if err != nil {
		return nil, err
	}
	return execute("layout", layoutData{Page: p, Body: template.HTML(body)})
}

func execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Resolve makes the URLs of links relative to the page. Links without a URL stay unlinked.
func (p *PageViewModel) Resolve(links []Link) []Link {
	out := make([]Link, len(links))
	for i, l := range links {
		out[i] = l
		if l.URL != "" {
			out[i].URL = p.Href(l.URL)
		}
	}
	return out
}
