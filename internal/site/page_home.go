package site

import (
	"context"

	"github.com/structurizr-site/generatr/internal/workspace"
)

// NewHomePage shows the workspace documentation and the views that belong to no software system.
func NewHomePage(ctx context.Context, gctx *GeneratorContext) (*PageViewModel, error) {
	ws := gctx.Workspace
	p := newPage(gctx, KindHome, TabHome, HomeURL, gctx.SiteTitle())
	p.Breadcrumbs = nil
	p.Description = ws.Description
	p.renderSections(gctx, ws.Documentation)

	views := append(ws.SystemLandscapeViews(), ws.UnscopedViews()...)
	_, err := p.withDiagrams(ctx, gctx, views)
	// The home page exists even without landscape views.
	p.Visible = true
	return p, err
}

// NewSoftwareSystemsPage lists every software system.
func NewSoftwareSystemsPage(gctx *GeneratorContext) *PageViewModel {
	p := newPage(gctx, KindSoftwareSystems, TabHome, SoftwareSystemsURL, "Software systems")
	for _, s := range gctx.Workspace.SoftwareSystems() {
		p.Systems = append(p.Systems, Link{Name: s.Name, Description: s.Description, URL: SystemURL(s.Name)})
	}
	return p
}

// NewSoftwareSystemInfoPage describes software system s: documentation, properties,
// relationships and the views it appears in.
func NewSoftwareSystemInfoPage(gctx *GeneratorContext, s *workspace.SoftwareSystem) *PageViewModel {
	ws := gctx.Workspace
	p := newSystemPage(gctx, s, KindSoftwareSystemInfo, TabInfo)
	p.ParentURL = SoftwareSystemsURL
	p.Description = s.Description
	p.renderSections(gctx, s.Documentation)

	for k, v := range s.Properties {
		p.Properties = append(p.Properties, Property{Key: k, Value: v})
	}
	sortProperties(p.Properties)

	for _, r := range ws.RelationshipsFrom(s.ID) {
		p.Uses = append(p.Uses, relationshipLink(ws, r, r.DestinationID))
	}
	for _, r := range ws.RelationshipsTo(s.ID) {
		p.UsedBy = append(p.UsedBy, relationshipLink(ws, r, r.SourceID))
	}
	for _, v := range ws.ViewsOf(s.ID) {
		p.Views = append(p.Views, Link{Name: v.Name(), Description: v.Kind.String(), URL: viewURL(ws, v)})
	}
	return p
}

func relationshipLink(ws *workspace.Workspace, r *workspace.Relationship, other string) Link {
	l := Link{Name: other, Description: r.Description, Technology: r.Technology}
	if e, ok := ws.Element(other); ok {
		l.Name = e.Name
		l.URL = elementURL(ws, e)
	}
	return l
}
