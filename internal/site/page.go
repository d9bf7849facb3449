package site

import (
	"context"
	"html/template"
	"sort"
	"strings"

	"github.com/structurizr-site/generatr/internal/markup"
	"github.com/structurizr-site/generatr/internal/result"
	"github.com/structurizr-site/generatr/internal/workspace"
)

// Link is a labelled reference to a site URL.
type Link struct {
	Name        string
	Description string
	Technology  string
	URL         string
}

// TabViewModel is one entry of a software system's tab bar.
type TabViewModel struct {
	Tab     Tab
	Label   string
	URL     string
	Active  bool
	Visible bool
}

// Section is rendered documentation.
type Section struct {
	Title string
	Body  template.HTML
}

// Property is a key/value pair shown on info pages.
type Property struct {
	Key   string
	Value string
}

// PageViewModel is everything one page template needs. Every page kind shares this shape.
type PageViewModel struct {
	Kind         PageKind
	Tab          Tab
	URL          string
	Title        string
	SiteTitle    string
	Entity       string
	Visible      bool
	Diagrams     []*DiagramViewModel
	DiagramIndex *DiagramIndexViewModel
	// ParentURL is the nearest visible ancestor page, the target of redirect stubs.
	ParentURL   string
	Breadcrumbs []Link
	Tabs        []TabViewModel
	LiveReload  bool

	Description string
	Sections    []Section
	Properties  []Property
	Systems     []Link
	Uses        []Link
	UsedBy      []Link
	Views       []Link

	warnings []result.Warning
}

// Href links from this page to a site URL or file path.
func (p *PageViewModel) Href(to string) string {
	return Relative(p.URL, to)
}

// OutputPath is the file this page is written to.
func (p *PageViewModel) OutputPath() string {
	return OutputPath(p.URL)
}

// Warnings are the recoverable problems met while building the page.
func (p *PageViewModel) Warnings() []result.Warning {
	return p.warnings
}

func newPage(gctx *GeneratorContext, kind PageKind, tab Tab, url, title string) *PageViewModel {
	return &PageViewModel{
		Kind:       kind,
		Tab:        tab,
		URL:        url,
		Title:      title,
		SiteTitle:  gctx.SiteTitle(),
		Visible:    true,
		ParentURL:  HomeURL,
		LiveReload: gctx.Options.LiveReload,
		Breadcrumbs: []Link{
			{Name: "Home", URL: HomeURL},
		},
	}
}

// newSystemPage builds the shell shared by the pages of software system s.
func newSystemPage(gctx *GeneratorContext, s *workspace.SoftwareSystem, kind PageKind, tab Tab) *PageViewModel {
	ws := gctx.Workspace
	p := newPage(gctx, kind, tab, SystemPageURL(s.Name, tab), s.Name)
	p.Entity = s.ID
	p.ParentURL = SystemURL(s.Name)
	p.Breadcrumbs = append(p.Breadcrumbs,
		Link{Name: "Software systems", URL: SoftwareSystemsURL},
		Link{Name: s.Name, URL: SystemURL(s.Name)},
	)
	visible := map[Tab]bool{
		TabInfo:       true,
		TabContext:    ws.HasSystemContextViews(s.ID),
		TabStructure:  ws.HasContainerViews(s.ID),
		TabDynamic:    ws.HasDynamicViews(s.ID),
		TabDeployment: ws.HasDeploymentViews(s.ID),
	}
	for _, t := range systemTabs {
		p.Tabs = append(p.Tabs, TabViewModel{
			Tab:     t,
			Label:   t.String(),
			URL:     SystemPageURL(s.Name, t),
			Active:  t == tab,
			Visible: visible[t],
		})
	}
	return p
}

// withDiagrams marks the page visible iff views is non-empty and renders each view in order.
// On a render failure the page keeps the diagrams rendered so far and the *RenderError is returned.
func (p *PageViewModel) withDiagrams(ctx context.Context, gctx *GeneratorContext, views []*workspace.View) (*PageViewModel, error) {
	p.Visible = len(views) > 0
	if !p.Visible {
		return p, nil
	}
	for _, v := range views {
		d, err := NewDiagramViewModel(ctx, gctx, p.URL, v)
		if err != nil {
			p.DiagramIndex = NewDiagramIndexViewModel(p.Diagrams)
			return p, err
		}
		p.Diagrams = append(p.Diagrams, d)
	}
	p.DiagramIndex = NewDiagramIndexViewModel(p.Diagrams)
	return p, nil
}

// renderSections converts documentation to HTML, degrading to literal text on failure.
func (p *PageViewModel) renderSections(gctx *GeneratorContext, doc workspace.Documentation) {
	sections := append([]workspace.Section(nil), doc.Sections...)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })
	for _, s := range sections {
		body, err := gctx.Markup.Render(s.Format, s.Content)
		if err != nil {
			body = markup.Literal(s.Content)
			p.warnings = append(p.warnings, result.Warning{
				Type:       "markup_error",
				Severity:   "warning",
				Entity:     p.Entity,
				Page:       p.OutputPath(),
				Message:    err.Error(),
				Suggestion: "Use one of the supported formats: " + strings.Join(gctx.Markup.ListSupportedFormats(), ", "),
			})
		}
		p.Sections = append(p.Sections, Section{Title: s.Title, Body: body})
	}
}

func sortProperties(props []Property) {
	sort.Slice(props, func(i, j int) bool { return props[i].Key < props[j].Key })
}
