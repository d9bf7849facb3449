package site

import (
	"context"

	"github.com/structurizr-site/generatr/internal/workspace"
)

// NewSoftwareSystemContextPage shows the system context views of s.
func NewSoftwareSystemContextPage(ctx context.Context, gctx *GeneratorContext, s *workspace.SoftwareSystem) (*PageViewModel, error) {
	p := newSystemPage(gctx, s, KindSoftwareSystemContext, TabContext)
	return p.withDiagrams(ctx, gctx, gctx.Workspace.SystemContextViews(s.ID))
}

// NewSoftwareSystemStructurePage shows the container views of s.
// A system without container views still gets the page, as a redirect stub.
func NewSoftwareSystemStructurePage(ctx context.Context, gctx *GeneratorContext, s *workspace.SoftwareSystem) (*PageViewModel, error) {
	p := newSystemPage(gctx, s, KindSoftwareSystemStructure, TabStructure)
	return p.withDiagrams(ctx, gctx, gctx.Workspace.ContainerViews(s.ID))
}

// NewSoftwareSystemDynamicPage shows the dynamic views whose software system is s,
// including views scoped to one of its containers.
func NewSoftwareSystemDynamicPage(ctx context.Context, gctx *GeneratorContext, s *workspace.SoftwareSystem) (*PageViewModel, error) {
	p := newSystemPage(gctx, s, KindSoftwareSystemDynamic, TabDynamic)
	return p.withDiagrams(ctx, gctx, gctx.Workspace.DynamicViews(s.ID))
}

// NewSoftwareSystemDeploymentPage shows the deployment views of s.
func NewSoftwareSystemDeploymentPage(ctx context.Context, gctx *GeneratorContext, s *workspace.SoftwareSystem) (*PageViewModel, error) {
	p := newSystemPage(gctx, s, KindSoftwareSystemDeployment, TabDeployment)
	return p.withDiagrams(ctx, gctx, gctx.Workspace.DeploymentViews(s.ID))
}

// NewContainerComponentsPage shows the component views of container c of s.
func NewContainerComponentsPage(ctx context.Context, gctx *GeneratorContext, s *workspace.SoftwareSystem, c *workspace.Container) (*PageViewModel, error) {
	ws := gctx.Workspace
	p := newSystemPage(gctx, s, KindContainerComponents, TabStructure)
	p.URL = ContainerURL(s.Name, c.Name)
	p.Title = c.Name
	p.Entity = c.ID
	p.Description = c.Description
	p.Breadcrumbs = append(p.Breadcrumbs, Link{Name: c.Name, URL: p.URL})
	if ws.HasContainerViews(s.ID) {
		p.ParentURL = SystemPageURL(s.Name, TabStructure)
	}
	return p.withDiagrams(ctx, gctx, ws.ComponentViews(c.ID))
}
