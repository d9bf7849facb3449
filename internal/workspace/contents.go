package workspace

import (
	"sort"
	"strconv"
)

// ElementsIn returns the ids of the elements a view shows, in a stable order.
// Views without an explicit element list get the default scope of their kind.
// Ids are returned as declared: they may reference elements that do not exist.
func (w *Workspace) ElementsIn(v *View) []string {
	if len(v.Elements) > 0 {
		out := make([]string, 0, len(v.Elements))
		for _, e := range v.Elements {
			out = append(out, e.ID)
		}
		return out
	}

	ix := w.idx()
	set := newOrderedSet()
	switch v.Kind {
	case ViewSystemLandscape:
		for _, id := range ix.order {
			if k := ix.elements[id].Kind; k == KindPerson || k == KindSoftwareSystem {
				set.add(id)
			}
		}
	case ViewSystemContext:
		set.add(v.SoftwareSystemID)
		w.addNeighbours(set, []string{v.SoftwareSystemID}, KindPerson, KindSoftwareSystem)
	case ViewContainer:
		var scope []string
		if s := ix.systems[v.SoftwareSystemID]; s != nil {
			for i := range s.Containers {
				scope = append(scope, s.Containers[i].ID)
			}
		}
		for _, id := range scope {
			set.add(id)
		}
		w.addNeighbours(set, append(scope, v.SoftwareSystemID), KindPerson, KindSoftwareSystem)
	case ViewComponent:
		var scope []string
		if c := ix.containers[v.ContainerID]; c != nil {
			for i := range c.Components {
				scope = append(scope, c.Components[i].ID)
			}
		}
		for _, id := range scope {
			set.add(id)
		}
		w.addNeighbours(set, scope, KindPerson, KindSoftwareSystem, KindContainer)
	case ViewDynamic:
		for _, rv := range Steps(v) {
			if r := ix.relByID[rv.ID]; r != nil {
				set.add(r.SourceID)
				set.add(r.DestinationID)
			}
		}
	case ViewDeployment:
		for _, id := range ix.order {
			e := ix.elements[id]
			if e.Environment == "" || e.Environment != v.Environment {
				continue
			}
			switch e.Kind {
			case KindDeploymentNode, KindInfrastructureNode:
				set.add(id)
			case KindSoftwareSystemInstance, KindContainerInstance:
				if v.SoftwareSystemID == "" || w.SoftwareSystemOf(id) == v.SoftwareSystemID {
					set.add(id)
				}
			}
		}
	}
	return set.items
}

// RelationshipsIn returns the relationships a view shows.
// Dynamic views keep their declared steps; other views without an explicit list
// show every relationship between two of their elements.
func (w *Workspace) RelationshipsIn(v *View) []RelationshipView {
	if len(v.Relationships) > 0 || v.Kind == ViewDynamic {
		return append([]RelationshipView(nil), v.Relationships...)
	}
	in := make(map[string]bool)
	for _, id := range w.ElementsIn(v) {
		in[id] = true
	}
	var out []RelationshipView
	for _, r := range w.idx().relationships {
		if in[r.SourceID] && in[r.DestinationID] && r.SourceID != r.DestinationID {
			out = append(out, RelationshipView{ID: r.ID})
		}
	}
	return out
}

// addNeighbours adds every element of the given kinds directly related to one of scope.
func (w *Workspace) addNeighbours(set *orderedSet, scope []string, kinds ...ElementKind) {
	ix := w.idx()
	inScope := make(map[string]bool, len(scope))
	for _, id := range scope {
		inScope[id] = true
	}
	wanted := func(id string) bool {
		if inScope[id] {
			return false
		}
		e, ok := ix.elements[id]
		if !ok {
			return false
		}
		for _, k := range kinds {
			if e.Kind == k {
				return true
			}
		}
		return false
	}
	for _, r := range ix.relationships {
		if inScope[r.SourceID] && wanted(r.DestinationID) {
			set.add(r.DestinationID)
		}
		if inScope[r.DestinationID] && wanted(r.SourceID) {
			set.add(r.SourceID)
		}
	}
}

type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(id string) {
	if id == "" || s.seen[id] {
		return
	}
	s.seen[id] = true
	s.items = append(s.items, id)
}

// Steps returns the relationships of a view sorted by their order number.
// Steps without a number keep their declared position after numbered ones.
func Steps(v *View) []RelationshipView {
	steps := append([]RelationshipView(nil), v.Relationships...)
	sort.SliceStable(steps, func(i, j int) bool { return orderLess(steps[i].Order, steps[j].Order) })
	return steps
}

func orderLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai < bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}
