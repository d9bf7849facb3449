package workspace

import (
	"fmt"
	"strings"
)

// ValidationError represents a single structural problem in a workspace.
type ValidationError struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"` // error
	ElementID  string `json:"element_id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (e ValidationError) String() string {
	if e.ElementID != "" {
		return fmt.Sprintf("[%s] %s", e.ElementID, e.Message)
	}
	return e.Message
}

// ParseError is returned when a workspace cannot be decoded or fails validation.
type ParseError struct {
	Path     string
	Problems []ValidationError
	Err      error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("workspace")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	for i, p := range e.Problems {
		if i == 0 && e.Err == nil {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(p.String())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Validate checks identity and reference integrity of the workspace and fills defaults.
// Elements listed inside a view are not checked here: a bad element reference only
// breaks that one diagram, which is reported when the diagram is rendered.
func Validate(w *Workspace) []ValidationError {
	var errs []ValidationError

	if w == nil {
		return []ValidationError{{Type: "schema_error", Severity: "error", Message: "workspace is nil"}}
	}

	seen := make(map[string]bool)
	check := func(id, what string, i int) {
		switch {
		case id == "":
			errs = append(errs, ValidationError{
				Type: "schema_error", Severity: "error",
				Message: fmt.Sprintf("%s at index %d has empty id", what, i), Suggestion: "Set an id on every element",
			})
		case seen[id]:
			errs = append(errs, ValidationError{
				Type: "schema_error", Severity: "error", ElementID: id,
				Message: "duplicate element id: " + id, Suggestion: "Use unique ids for each element",
			})
		default:
			seen[id] = true
		}
	}

	m := &w.Model
	for i := range m.People {
		check(m.People[i].ID, "person", i)
	}
	systemNames := make(map[string]string)
	for i := range m.SoftwareSystems {
		s := &m.SoftwareSystems[i]
		check(s.ID, "software system", i)
		if s.Name == "" {
			errs = append(errs, ValidationError{
				Type: "schema_error", Severity: "error", ElementID: s.ID,
				Message: "software system name is required", Suggestion: "Set softwareSystem.name",
			})
		} else if other, dup := systemNames[s.Name]; dup {
			errs = append(errs, ValidationError{
				Type: "schema_error", Severity: "error", ElementID: s.ID,
				Message: fmt.Sprintf("software system name %q is also used by %s", s.Name, other),
				Suggestion: "Software system names identify pages and must be unique",
			})
		} else {
			systemNames[s.Name] = s.ID
		}
		for j := range s.Containers {
			c := &s.Containers[j]
			check(c.ID, "container", j)
			for k := range c.Components {
				check(c.Components[k].ID, "component", k)
			}
		}
		normalizeSections(&s.Documentation)
	}
	var walk func(nodes []DeploymentNode)
	walk = func(nodes []DeploymentNode) {
		for i := range nodes {
			n := &nodes[i]
			check(n.ID, "deployment node", i)
			for j := range n.InfrastructureNodes {
				check(n.InfrastructureNodes[j].ID, "infrastructure node", j)
			}
			for j := range n.SoftwareSystemInstances {
				check(n.SoftwareSystemInstances[j].ID, "software system instance", j)
			}
			for j := range n.ContainerInstances {
				check(n.ContainerInstances[j].ID, "container instance", j)
			}
			walk(n.Children)
		}
	}
	walk(m.DeploymentNodes)
	normalizeSections(&w.Documentation)

	if len(errs) > 0 {
		return errs
	}

	ix := w.idx()
	for _, r := range ix.relationships {
		if _, ok := ix.elements[r.SourceID]; !ok {
			errs = append(errs, ValidationError{
				Type: "reference_error", Severity: "error", ElementID: r.ID,
				Message: "relationship source not found: " + r.SourceID, Suggestion: "Reference an existing element id",
			})
		}
		if _, ok := ix.elements[r.DestinationID]; !ok {
			errs = append(errs, ValidationError{
				Type: "reference_error", Severity: "error", ElementID: r.ID,
				Message: "relationship destination not found: " + r.DestinationID, Suggestion: "Reference an existing element id",
			})
		}
	}
	for _, info := range ix.elements {
		if info.RefID == "" {
			continue
		}
		want := KindContainer
		if info.Kind == KindSoftwareSystemInstance {
			want = KindSoftwareSystem
		}
		if ref, ok := ix.elements[info.RefID]; !ok || ref.Kind != want {
			errs = append(errs, ValidationError{
				Type: "reference_error", Severity: "error", ElementID: info.ID,
				Message: fmt.Sprintf("%s references unknown %s %s", info.Kind, want, info.RefID),
				Suggestion: "Reference an existing element id",
			})
		}
	}

	keys := make(map[string]bool)
	for _, v := range ix.viewList {
		if v.Key == "" {
			errs = append(errs, ValidationError{
				Type: "view_error", Severity: "error",
				Message: v.Kind.String() + " view has empty key", Suggestion: "Set a key on every view",
			})
			continue
		}
		if keys[v.Key] {
			errs = append(errs, ValidationError{
				Type: "view_error", Severity: "error", ElementID: v.Key,
				Message: "duplicate view key: " + v.Key, Suggestion: "Use unique keys for each view",
			})
		}
		keys[v.Key] = true
		errs = append(errs, validateScope(ix, v)...)
	}

	return errs
}

func validateScope(ix *index, v *View) []ValidationError {
	var scope string
	var allowed []ElementKind
	switch v.Kind {
	case ViewSystemContext, ViewContainer:
		scope, allowed = v.SoftwareSystemID, []ElementKind{KindSoftwareSystem}
		if scope == "" {
			return []ValidationError{{
				Type: "view_error", Severity: "error", ElementID: v.Key,
				Message: v.Kind.String() + " view requires softwareSystemId", Suggestion: "Set the software system the view describes",
			}}
		}
	case ViewComponent:
		scope, allowed = v.ContainerID, []ElementKind{KindContainer}
		if scope == "" {
			return []ValidationError{{
				Type: "view_error", Severity: "error", ElementID: v.Key,
				Message: "component view requires containerId", Suggestion: "Set the container the view describes",
			}}
		}
	case ViewDynamic:
		scope, allowed = v.ElementID, []ElementKind{KindSoftwareSystem, KindContainer}
	case ViewDeployment:
		scope, allowed = v.SoftwareSystemID, []ElementKind{KindSoftwareSystem}
	}
	if scope == "" {
		return nil
	}
	info, ok := ix.elements[scope]
	if ok {
		for _, k := range allowed {
			if info.Kind == k {
				return nil
			}
		}
	}
	return []ValidationError{{
		Type: "view_error", Severity: "error", ElementID: v.Key,
		Message:    fmt.Sprintf("%s view %s is scoped to unknown element %s", v.Kind, v.Key, scope),
		Suggestion: "Scope the view to an existing " + allowed[0].String(),
	}}
}

func normalizeSections(d *Documentation) {
	for i := range d.Sections {
		if d.Sections[i].Format == "" {
			d.Sections[i].Format = "Markdown"
		}
	}
}
