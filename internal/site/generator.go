package site

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/structurizr-site/generatr/internal/output"
	"github.com/structurizr-site/generatr/internal/result"
)

// PlannedPage is one entry of the site's page inventory.
type PlannedPage struct {
	Kind   PageKind
	URL    string
	Entity string

	build func(ctx context.Context) (*PageViewModel, error)
}

// Path is the file the page is written to.
func (p PlannedPage) Path() string {
	return OutputPath(p.URL)
}

// Generator builds a whole site into an output.Writer.
type Generator struct {
	gctx *GeneratorContext
	out  output.Writer
}

// NewGenerator returns a generator writing to out.
func NewGenerator(gctx *GeneratorContext, out output.Writer) *Generator {
	return &Generator{gctx: gctx, out: out}
}

// Plan enumerates every page in a stable order: home, the systems list, then for each
// software system its info, context and structure pages, one components page per
// container, and its dynamic and deployment pages. Every system gets every page so
// inbound links never break. Paths are checked for collisions, including diagram downloads.
func (g *Generator) Plan() ([]PlannedPage, error) {
	gctx := g.gctx
	ws := gctx.Workspace
	var pages []PlannedPage
	add := func(kind PageKind, url, entity string, build func(ctx context.Context) (*PageViewModel, error)) {
		pages = append(pages, PlannedPage{Kind: kind, URL: url, Entity: entity, build: build})
	}

	add(KindHome, HomeURL, "workspace", func(ctx context.Context) (*PageViewModel, error) {
		return NewHomePage(ctx, gctx)
	})
	add(KindSoftwareSystems, SoftwareSystemsURL, "workspace", func(context.Context) (*PageViewModel, error) {
		return NewSoftwareSystemsPage(gctx), nil
	})
	for _, s := range ws.SoftwareSystems() {
		entity := fmt.Sprintf("software system %s (%s)", s.Name, s.ID)
		add(KindSoftwareSystemInfo, SystemURL(s.Name), entity, func(context.Context) (*PageViewModel, error) {
			return NewSoftwareSystemInfoPage(gctx, s), nil
		})
		add(KindSoftwareSystemContext, SystemPageURL(s.Name, TabContext), entity, func(ctx context.Context) (*PageViewModel, error) {
			return NewSoftwareSystemContextPage(ctx, gctx, s)
		})
		add(KindSoftwareSystemStructure, SystemPageURL(s.Name, TabStructure), entity, func(ctx context.Context) (*PageViewModel, error) {
			return NewSoftwareSystemStructurePage(ctx, gctx, s)
		})
		for i := range s.Containers {
			c := &s.Containers[i]
			centity := fmt.Sprintf("container %s (%s)", c.Name, c.ID)
			add(KindContainerComponents, ContainerURL(s.Name, c.Name), centity, func(ctx context.Context) (*PageViewModel, error) {
				return NewContainerComponentsPage(ctx, gctx, s, c)
			})
		}
		add(KindSoftwareSystemDynamic, SystemPageURL(s.Name, TabDynamic), entity, func(ctx context.Context) (*PageViewModel, error) {
			return NewSoftwareSystemDynamicPage(ctx, gctx, s)
		})
		add(KindSoftwareSystemDeployment, SystemPageURL(s.Name, TabDeployment), entity, func(ctx context.Context) (*PageViewModel, error) {
			return NewSoftwareSystemDeploymentPage(ctx, gctx, s)
		})
	}

	owners := map[string]string{StylesheetPath: "stylesheet"}
	claim := func(path, owner string) error {
		if first, ok := owners[path]; ok {
			return &OutputPathCollisionError{Path: path, First: first, Second: owner}
		}
		owners[path] = owner
		return nil
	}
	for _, p := range pages {
		if err := claim(p.Path(), p.Entity); err != nil {
			return nil, err
		}
	}
	for _, v := range ws.AllViews() {
		owner := "view " + v.Key
		if err := claim(SVGPath(v.Key), owner); err != nil {
			return nil, err
		}
		if err := claim(PUMLPath(v.Key), owner); err != nil {
			return nil, err
		}
	}
	return pages, nil
}

type builtPage struct {
	planned     PlannedPage
	vm          *PageViewModel
	html        []byte
	placeholder bool
	warnings    []result.Warning
}

// Generate builds every page concurrently, then writes the site in inventory order.
// Nothing is written when a fatal error occurs. Diagram failures only replace the
// affected page with a placeholder and are reported as warnings.
func (g *Generator) Generate(ctx context.Context) (*result.GenerateResult, error) {
	log := g.gctx.Logger
	res := &result.GenerateResult{Success: true}

	pages, err := g.Plan()
	if err != nil {
		res.Success = false
		e := result.Error{
			Type:       "output_path_collision",
			Severity:   "error",
			Message:    err.Error(),
			Suggestion: "Give software systems, containers and views distinct names",
		}
		var ce *OutputPathCollisionError
		if errors.As(err, &ce) {
			e.Entity = ce.Second
			e.Page = ce.Path
		}
		res.Errors = append(res.Errors, e)
		return res, err
	}

	built := make([]builtPage, len(pages))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.gctx.Options.parallelism())
	for i, p := range pages {
		eg.Go(func() error {
			b, err := g.buildPage(egctx, p)
			if err != nil {
				return err
			}
			built[i] = b
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		res.Success = false
		res.Errors = append(res.Errors, result.Error{
			Type:     "generation_error",
			Severity: "error",
			Message:  err.Error(),
		})
		return res, err
	}

	if err := g.write(res, StylesheetPath, Stylesheet()); err != nil {
		return res, err
	}
	for _, b := range built {
		res.Pages++
		res.Warnings = append(res.Warnings, b.warnings...)
		switch {
		case b.placeholder:
			res.Skipped = append(res.Skipped, b.planned.Path())
		case !b.vm.Visible:
			res.Redirects++
		}
		if err := g.write(res, b.planned.Path(), b.html); err != nil {
			return res, err
		}
	}
	for _, b := range built {
		for _, d := range b.vm.Diagrams {
			if err := g.write(res, SVGPath(d.Key), d.raw); err != nil {
				return res, err
			}
			if err := g.write(res, PUMLPath(d.Key), []byte(d.source)); err != nil {
				return res, err
			}
		}
	}
	log.Info("site generated", "pages", res.Pages, "files", len(res.Files),
		"redirects", res.Redirects, "skipped", len(res.Skipped), "warnings", len(res.Warnings))
	return res, nil
}

func (g *Generator) buildPage(ctx context.Context, p PlannedPage) (builtPage, error) {
	log := g.gctx.Logger
	vm, err := p.build(ctx)
	if cerr := ctx.Err(); cerr != nil {
		return builtPage{}, cerr
	}
	b := builtPage{planned: p, vm: vm}
	if vm != nil {
		b.warnings = append(b.warnings, vm.Warnings()...)
	}

	var re *RenderError
	switch {
	case err == nil:
		b.html, err = RenderPage(vm)
	case errors.As(err, &re) && vm != nil:
		log.Warn("diagram rendering failed, writing placeholder",
			"page", p.Path(), "entity", p.Entity, "view", re.View, "error", re.Err)
		b.placeholder = true
		b.warnings = append(b.warnings, result.Warning{
			Type:       "render_error",
			Severity:   "warning",
			Entity:     p.Entity,
			Page:       p.Path(),
			Message:    err.Error(),
			Suggestion: "Check that the view includes at least one element and that every element exists",
		})
		b.html, err = RenderPlaceholder(vm, err)
	default:
		return builtPage{}, fmt.Errorf("build %s for %s: %w", p.Path(), p.Entity, err)
	}
	if err != nil {
		return builtPage{}, fmt.Errorf("render %s: %w", p.Path(), err)
	}
	for _, w := range vm.Warnings() {
		log.Warn(w.Message, "type", w.Type, "page", w.Page, "entity", w.Entity)
	}
	return b, nil
}

func (g *Generator) write(res *result.GenerateResult, path string, content []byte) error {
	if err := g.out.Write(path, content); err != nil {
		res.Success = false
		res.Errors = append(res.Errors, result.Error{
			Type:     "write_error",
			Severity: "error",
			Page:     path,
			Message:  err.Error(),
		})
		return err
	}
	res.Files = append(res.Files, path)
	return nil
}

// Generate builds the site for gctx into out.
func Generate(ctx context.Context, gctx *GeneratorContext, out output.Writer) (*result.GenerateResult, error) {
	return NewGenerator(gctx, out).Generate(ctx)
}
