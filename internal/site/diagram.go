package site

import (
	"context"
	"html/template"
	"sort"
	"strings"
	"sync"

	"github.com/structurizr-site/generatr/internal/workspace"
)

// ElementLink points from a diagram element to the page describing it.
type ElementLink struct {
	Name string
	Href string
}

// DiagramViewModel is one rendered view on one page.
type DiagramViewModel struct {
	Key         string
	Title       string
	Description string
	Anchor      string
	SVG         template.HTML
	SVGHref     string
	PUMLHref    string

	raw     []byte
	source  string
	view    *workspace.View
	ws      *workspace.Workspace
	pageURL string

	linksOnce sync.Once
	links     []ElementLink
}

// NewDiagramViewModel renders v for the page at pageURL.
// Any renderer failure is returned as a *RenderError.
func NewDiagramViewModel(ctx context.Context, gctx *GeneratorContext, pageURL string, v *workspace.View) (*DiagramViewModel, error) {
	src, svg, err := gctx.Renderer.Render(ctx, v)
	if err != nil {
		return nil, &RenderError{View: v.Key, Err: err}
	}
	return &DiagramViewModel{
		Key:         v.Key,
		Title:       v.Name(),
		Description: v.Description,
		Anchor:      diagramAnchor(v.Key),
		SVG:         template.HTML(stripProlog(string(svg))),
		SVGHref:     Relative(pageURL, SVGPath(v.Key)),
		PUMLHref:    Relative(pageURL, PUMLPath(v.Key)),
		raw:         svg,
		source:      src,
		view:        v,
		ws:          gctx.Workspace,
		pageURL:     pageURL,
	}, nil
}

func diagramAnchor(key string) string {
	return "diagram-" + Slug(key)
}

// stripProlog drops the XML declaration so the SVG can be inlined in HTML.
func stripProlog(svg string) string {
	s := strings.TrimSpace(svg)
	if strings.HasPrefix(s, "<?xml") {
		if i := strings.Index(s, "?>"); i >= 0 {
			s = strings.TrimSpace(s[i+2:])
		}
	}
	return s
}

// Links returns the pages of the elements shown in the diagram, sorted by name.
// Computed on first use.
func (d *DiagramViewModel) Links() []ElementLink {
	d.linksOnce.Do(func() {
		for _, id := range d.ws.ElementsIn(d.view) {
			e, ok := d.ws.Element(id)
			if !ok {
				continue
			}
			url := elementURL(d.ws, e)
			if url == "" || url == d.pageURL {
				continue
			}
			d.links = append(d.links, ElementLink{Name: e.Name, Href: Relative(d.pageURL, url)})
		}
		sort.SliceStable(d.links, func(i, j int) bool {
			if d.links[i].Name != d.links[j].Name {
				return d.links[i].Name < d.links[j].Name
			}
			return d.links[i].Href < d.links[j].Href
		})
	})
	return d.links
}

// elementURL is the page an element links to, or "" for elements without one.
func elementURL(ws *workspace.Workspace, e *workspace.ElementInfo) string {
	switch e.Kind {
	case workspace.KindSoftwareSystem:
		return SystemURL(e.Name)
	case workspace.KindContainer:
		s := ws.SoftwareSystem(e.ParentID)
		if s == nil {
			return ""
		}
		if ws.HasComponentViews(e.ID) {
			return ContainerURL(s.Name, e.Name)
		}
		return SystemPageURL(s.Name, TabStructure)
	case workspace.KindComponent:
		if c, ok := ws.Element(e.ParentID); ok {
			if s := ws.SoftwareSystem(c.ParentID); s != nil {
				return ContainerURL(s.Name, c.Name)
			}
		}
	case workspace.KindSoftwareSystemInstance, workspace.KindContainerInstance:
		if ref, ok := ws.Element(e.RefID); ok {
			return elementURL(ws, ref)
		}
	}
	return ""
}

// viewURL is the page showing view v, with the fragment of its diagram.
// Views that belong to no software system are shown on the home page.
func viewURL(ws *workspace.Workspace, v *workspace.View) string {
	page := HomeURL
	switch v.Kind {
	case workspace.ViewSystemContext:
		if s := ws.SoftwareSystem(v.SoftwareSystemID); s != nil {
			page = SystemPageURL(s.Name, TabContext)
		}
	case workspace.ViewContainer:
		if s := ws.SoftwareSystem(v.SoftwareSystemID); s != nil {
			page = SystemPageURL(s.Name, TabStructure)
		}
	case workspace.ViewComponent:
		c := ws.Container(v.ContainerID)
		if s := ws.SoftwareSystem(ws.SoftwareSystemOf(v.ContainerID)); c != nil && s != nil {
			page = ContainerURL(s.Name, c.Name)
		}
	case workspace.ViewDynamic:
		if s := ws.SoftwareSystem(ws.SoftwareSystemOf(v.ElementID)); s != nil {
			page = SystemPageURL(s.Name, TabDynamic)
		}
	case workspace.ViewDeployment:
		if s := ws.SoftwareSystem(v.SoftwareSystemID); s != nil {
			page = SystemPageURL(s.Name, TabDeployment)
		}
	}
	return page + "#" + diagramAnchor(v.Key)
}

// DiagramIndexEntry is one line of a page's diagram table of contents.
type DiagramIndexEntry struct {
	Key    string
	Title  string
	Anchor string
}

// DiagramIndexViewModel lists the diagrams of a page.
type DiagramIndexViewModel struct {
	Entries []DiagramIndexEntry
}

// NewDiagramIndexViewModel indexes diagrams in page order.
func NewDiagramIndexViewModel(diagrams []*DiagramViewModel) *DiagramIndexViewModel {
	idx := &DiagramIndexViewModel{Entries: make([]DiagramIndexEntry, 0, len(diagrams))}
	for _, d := range diagrams {
		idx.Entries = append(idx.Entries, DiagramIndexEntry{Key: d.Key, Title: d.Title, Anchor: d.Anchor})
	}
	return idx
}
