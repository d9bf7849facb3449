package plantuml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/structurizr-site/generatr/internal/workspace"
)

// ErrEmptyView is returned for views that contain no elements.
var ErrEmptyView = errors.New("view contains no elements")

// UnknownElementError reports a view that references an element missing from the model.
type UnknownElementError struct {
	View    string
	Element string
}

func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("view %s references unknown element %s", e.View, e.Element)
}

// Source generates the C4-PlantUML source for a view.
func Source(ws *workspace.Workspace, v *workspace.View) (string, error) {
	ids := ws.ElementsIn(v)
	if len(ids) == 0 {
		return "", fmt.Errorf("view %s: %w", v.Key, ErrEmptyView)
	}
	elems := make([]*workspace.ElementInfo, 0, len(ids))
	in := make(map[string]bool, len(ids))
	for _, id := range ids {
		info, ok := ws.Element(id)
		if !ok {
			return "", &UnknownElementError{View: v.Key, Element: id}
		}
		elems = append(elems, info)
		in[id] = true
	}

	b := NewBuilder()
	writePreamble(b, v)

	switch v.Kind {
	case workspace.ViewContainer:
		writeBoundary(b, "System_Boundary", scopeOf(ws, v.SoftwareSystemID), elems)
	case workspace.ViewComponent:
		writeBoundary(b, "Container_Boundary", scopeOf(ws, v.ContainerID), elems)
	case workspace.ViewDeployment:
		writeDeployment(b, elems, in)
	default:
		for _, e := range elems {
			writeElement(b, e)
		}
	}

	b.Blank()
	for _, rv := range relationshipsOf(ws, v) {
		r := ws.Relationship(rv.ID)
		if r == nil || !in[r.SourceID] || !in[r.DestinationID] {
			continue
		}
		label := rv.Description
		if label == "" {
			label = r.Description
		}
		if v.Kind == workspace.ViewDynamic && rv.Order != "" {
			label = rv.Order + ". " + label
		}
		if r.Technology != "" {
			b.Line("Rel(%s, %s, %s, %s)", b.Alias(r.SourceID), b.Alias(r.DestinationID), Quote(label), Quote(r.Technology))
		} else {
			b.Line("Rel(%s, %s, %s)", b.Alias(r.SourceID), b.Alias(r.DestinationID), Quote(label))
		}
	}
	return b.Build(), nil
}

func relationshipsOf(ws *workspace.Workspace, v *workspace.View) []workspace.RelationshipView {
	if v.Kind == workspace.ViewDynamic {
		return workspace.Steps(v)
	}
	return ws.RelationshipsIn(v)
}

func scopeOf(ws *workspace.Workspace, id string) *workspace.ElementInfo {
	info, _ := ws.Element(id)
	return info
}

// writeBoundary draws the elements whose parent is scope inside a boundary block.
func writeBoundary(b *Builder, macro string, scope *workspace.ElementInfo, elems []*workspace.ElementInfo) {
	var inside, outside []*workspace.ElementInfo
	for _, e := range elems {
		if scope != nil && e.ID == scope.ID {
			continue
		}
		if scope != nil && e.ParentID == scope.ID {
			inside = append(inside, e)
		} else {
			outside = append(outside, e)
		}
	}
	for _, e := range outside {
		writeElement(b, e)
	}
	if len(inside) == 0 {
		return
	}
	b.Open("%s(%s, %s)", macro, b.Alias(scope.ID), Quote(scope.Name))
	for _, e := range inside {
		writeElement(b, e)
	}
	b.Close()
}

// writeDeployment nests nodes, infrastructure and instances by parent.
func writeDeployment(b *Builder, elems []*workspace.ElementInfo, in map[string]bool) {
	children := make(map[string][]*workspace.ElementInfo)
	var roots []*workspace.ElementInfo
	for _, e := range elems {
		if e.ParentID != "" && in[e.ParentID] {
			children[e.ParentID] = append(children[e.ParentID], e)
		} else {
			roots = append(roots, e)
		}
	}
	var walk func(e *workspace.ElementInfo)
	walk = func(e *workspace.ElementInfo) {
		if e.Kind != workspace.KindDeploymentNode {
			writeElement(b, e)
			return
		}
		b.Open("Deployment_Node(%s, %s, %s)", b.Alias(e.ID), Quote(e.Name), Quote(e.Technology))
		for _, c := range children[e.ID] {
			walk(c)
		}
		b.Close()
	}
	for _, e := range roots {
		walk(e)
	}
}

func writeElement(b *Builder, e *workspace.ElementInfo) {
	alias := b.Alias(e.ID)
	external := strings.EqualFold(e.Location, "External")
	switch e.Kind {
	case workspace.KindPerson:
		b.Line("%s(%s, %s, %s)", ext("Person", external), alias, Quote(e.Name), Quote(e.Description))
	case workspace.KindSoftwareSystem, workspace.KindSoftwareSystemInstance:
		b.Line("%s(%s, %s, %s)", ext("System", external), alias, Quote(e.Name), Quote(e.Description))
	case workspace.KindContainer, workspace.KindContainerInstance:
		macro := "Container"
		if hasTag(e.Tags, "Database") {
			macro = "ContainerDb"
		}
		b.Line("%s(%s, %s, %s, %s)", macro, alias, Quote(e.Name), Quote(e.Technology), Quote(e.Description))
	case workspace.KindComponent:
		b.Line("Component(%s, %s, %s, %s)", alias, Quote(e.Name), Quote(e.Technology), Quote(e.Description))
	case workspace.KindInfrastructureNode:
		b.Line("Node(%s, %s, %s, %s)", alias, Quote(e.Name), Quote(e.Technology), Quote(e.Description))
	case workspace.KindDeploymentNode:
		b.Line("Deployment_Node(%s, %s, %s)", alias, Quote(e.Name), Quote(e.Technology))
	}
}

func ext(macro string, external bool) string {
	if external {
		return macro + "_Ext"
	}
	return macro
}

func hasTag(tags, tag string) bool {
	for _, t := range strings.Split(tags, ",") {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}
