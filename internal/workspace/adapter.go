package workspace

import "sort"

// PropertySiteTitle overrides the title of the generated site.
const PropertySiteTitle = "generatr.site.title"

// SiteTitle returns the title to show on every page.
func (w *Workspace) SiteTitle() string {
	if t := w.Properties[PropertySiteTitle]; t != "" {
		return t
	}
	if w.Name != "" {
		return w.Name
	}
	return "Workspace"
}

// SoftwareSystems returns the software systems in declaration order.
func (w *Workspace) SoftwareSystems() []*SoftwareSystem {
	out := make([]*SoftwareSystem, 0, len(w.Model.SoftwareSystems))
	for i := range w.Model.SoftwareSystems {
		out = append(out, &w.Model.SoftwareSystems[i])
	}
	return out
}

// SoftwareSystem returns the software system with the given id, or nil.
func (w *Workspace) SoftwareSystem(id string) *SoftwareSystem {
	return w.idx().systems[id]
}

// Container returns the container with the given id, or nil.
func (w *Workspace) Container(id string) *Container {
	return w.idx().containers[id]
}

// Element returns the flattened element with the given id.
func (w *Workspace) Element(id string) (*ElementInfo, bool) {
	e, ok := w.idx().elements[id]
	return e, ok
}

// ElementIDs returns every element id in declaration order.
func (w *Workspace) ElementIDs() []string {
	return append([]string(nil), w.idx().order...)
}

// SoftwareSystemOf returns the software system an element belongs to, or "".
func (w *Workspace) SoftwareSystemOf(id string) string {
	ix := w.idx()
	for id != "" {
		e, ok := ix.elements[id]
		if !ok {
			return ""
		}
		switch e.Kind {
		case KindSoftwareSystem:
			return e.ID
		case KindContainer, KindComponent:
			id = e.ParentID
		case KindSoftwareSystemInstance, KindContainerInstance:
			id = e.RefID
		default:
			return ""
		}
	}
	return ""
}

// Relationship returns the relationship with the given id, or nil.
func (w *Workspace) Relationship(id string) *Relationship {
	return w.idx().relByID[id]
}

// Relationships returns every relationship in declaration order.
func (w *Workspace) Relationships() []*Relationship {
	return append([]*Relationship(nil), w.idx().relationships...)
}

// RelationshipsFrom returns relationships whose source is id.
func (w *Workspace) RelationshipsFrom(id string) []*Relationship {
	var out []*Relationship
	for _, r := range w.idx().relationships {
		if r.SourceID == id {
			out = append(out, r)
		}
	}
	return out
}

// RelationshipsTo returns relationships whose destination is id.
func (w *Workspace) RelationshipsTo(id string) []*Relationship {
	var out []*Relationship
	for _, r := range w.idx().relationships {
		if r.DestinationID == id {
			out = append(out, r)
		}
	}
	return out
}

// View returns the view with the given key, or nil.
func (w *Workspace) View(key string) *View {
	return w.idx().views[key]
}

// AllViews returns every view definition, grouped by kind in declaration order.
func (w *Workspace) AllViews() []*View {
	return append([]*View(nil), w.idx().viewList...)
}

// SystemLandscapeViews returns the system landscape views.
func (w *Workspace) SystemLandscapeViews() []*View {
	return w.viewsWhere(ViewSystemLandscape, func(*View) bool { return true })
}

// SystemContextViews returns the system context views of a software system.
func (w *Workspace) SystemContextViews(systemID string) []*View {
	return w.viewsWhere(ViewSystemContext, func(v *View) bool { return v.SoftwareSystemID == systemID })
}

// HasSystemContextViews reports whether the software system has a system context view.
func (w *Workspace) HasSystemContextViews(systemID string) bool {
	return len(w.SystemContextViews(systemID)) > 0
}

// ContainerViews returns the container views of a software system.
func (w *Workspace) ContainerViews(systemID string) []*View {
	return w.viewsWhere(ViewContainer, func(v *View) bool { return v.SoftwareSystemID == systemID })
}

// HasContainerViews reports whether the software system has a container view.
func (w *Workspace) HasContainerViews(systemID string) bool {
	return len(w.ContainerViews(systemID)) > 0
}

// ComponentViews returns the component views of a container.
func (w *Workspace) ComponentViews(containerID string) []*View {
	return w.viewsWhere(ViewComponent, func(v *View) bool { return v.ContainerID == containerID })
}

// HasComponentViews reports whether the container has a component view.
func (w *Workspace) HasComponentViews(containerID string) bool {
	return len(w.ComponentViews(containerID)) > 0
}

// DynamicViews returns the dynamic views belonging to a software system.
// A dynamic view scoped to a container belongs to that container's software system.
func (w *Workspace) DynamicViews(systemID string) []*View {
	return w.viewsWhere(ViewDynamic, func(v *View) bool { return w.SoftwareSystemOf(v.ElementID) == systemID })
}

// HasDynamicViews reports whether the software system has a dynamic view.
func (w *Workspace) HasDynamicViews(systemID string) bool {
	return len(w.DynamicViews(systemID)) > 0
}

// DeploymentViews returns the deployment views of a software system.
func (w *Workspace) DeploymentViews(systemID string) []*View {
	return w.viewsWhere(ViewDeployment, func(v *View) bool { return v.SoftwareSystemID == systemID })
}

// HasDeploymentViews reports whether the software system has a deployment view.
func (w *Workspace) HasDeploymentViews(systemID string) bool {
	return len(w.DeploymentViews(systemID)) > 0
}

func (w *Workspace) viewsWhere(kind ViewKind, keep func(*View) bool) []*View {
	var out []*View
	for _, v := range w.AllViews() {
		if v.Kind == kind && keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// ViewsOf returns every view that shows the element, sorted by key.
func (w *Workspace) ViewsOf(elementID string) []*View {
	var out []*View
	for _, v := range w.AllViews() {
		for _, id := range w.ElementsIn(v) {
			if id == elementID {
				out = append(out, v)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// UnscopedViews returns the dynamic and deployment views that belong to no software system.
func (w *Workspace) UnscopedViews() []*View {
	var out []*View
	for _, v := range w.AllViews() {
		switch {
		case v.Kind == ViewDynamic && w.SoftwareSystemOf(v.ElementID) == "":
			out = append(out, v)
		case v.Kind == ViewDeployment && v.SoftwareSystemID == "":
			out = append(out, v)
		}
	}
	return out
}
