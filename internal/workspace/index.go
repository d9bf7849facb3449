package workspace

// ElementInfo is the flattened, read-only view of any model element.
type ElementInfo struct {
	ID          string
	Kind        ElementKind
	Name        string
	Description string
	Technology  string
	Tags        string
	URL         string
	// Location is "External" or "Internal" for people and software systems.
	Location string
	// ParentID is the enclosing software system, container or deployment node.
	ParentID    string
	Environment string
	// RefID is the software system or container an instance stands for.
	RefID string
}

type index struct {
	elements      map[string]*ElementInfo
	order         []string
	systems       map[string]*SoftwareSystem
	containers    map[string]*Container
	relationships []*Relationship
	relByID       map[string]*Relationship
	views         map[string]*View
	viewList      []*View
}

func (w *Workspace) idx() *index {
	w.indexOnce.Do(func() {
		w.index = buildIndex(w)
	})
	return w.index
}

func buildIndex(w *Workspace) *index {
	ix := &index{
		elements:   make(map[string]*ElementInfo),
		systems:    make(map[string]*SoftwareSystem),
		containers: make(map[string]*Container),
		relByID:    make(map[string]*Relationship),
		views:      make(map[string]*View),
	}
	add := func(info *ElementInfo, rels []Relationship) {
		if _, dup := ix.elements[info.ID]; !dup {
			ix.order = append(ix.order, info.ID)
		}
		ix.elements[info.ID] = info
		for i := range rels {
			r := &rels[i]
			ix.relationships = append(ix.relationships, r)
			ix.relByID[r.ID] = r
		}
	}

	m := &w.Model
	for i := range m.People {
		p := &m.People[i]
		add(&ElementInfo{ID: p.ID, Kind: KindPerson, Name: p.Name, Description: p.Description, Tags: p.Tags, URL: p.URL, Location: p.Location}, p.Relationships)
	}
	for i := range m.SoftwareSystems {
		s := &m.SoftwareSystems[i]
		ix.systems[s.ID] = s
		add(&ElementInfo{ID: s.ID, Kind: KindSoftwareSystem, Name: s.Name, Description: s.Description, Tags: s.Tags, URL: s.URL, Location: s.Location}, s.Relationships)
		for j := range s.Containers {
			c := &s.Containers[j]
			ix.containers[c.ID] = c
			add(&ElementInfo{ID: c.ID, Kind: KindContainer, Name: c.Name, Description: c.Description, Technology: c.Technology, Tags: c.Tags, URL: c.URL, ParentID: s.ID}, c.Relationships)
			for k := range c.Components {
				cp := &c.Components[k]
				add(&ElementInfo{ID: cp.ID, Kind: KindComponent, Name: cp.Name, Description: cp.Description, Technology: cp.Technology, Tags: cp.Tags, URL: cp.URL, ParentID: c.ID}, cp.Relationships)
			}
		}
	}
	var walk func(n *DeploymentNode, parent string)
	walk = func(n *DeploymentNode, parent string) {
		add(&ElementInfo{ID: n.ID, Kind: KindDeploymentNode, Name: n.Name, Description: n.Description, Technology: n.Technology, Tags: n.Tags, ParentID: parent, Environment: n.Environment}, n.Relationships)
		for i := range n.InfrastructureNodes {
			in := &n.InfrastructureNodes[i]
			env := in.Environment
			if env == "" {
				env = n.Environment
			}
			add(&ElementInfo{ID: in.ID, Kind: KindInfrastructureNode, Name: in.Name, Description: in.Description, Technology: in.Technology, Tags: in.Tags, ParentID: n.ID, Environment: env}, in.Relationships)
		}
		for i := range n.SoftwareSystemInstances {
			si := &n.SoftwareSystemInstances[i]
			add(&ElementInfo{ID: si.ID, Kind: KindSoftwareSystemInstance, ParentID: n.ID, Environment: n.Environment, RefID: si.SoftwareSystemID}, si.Relationships)
		}
		for i := range n.ContainerInstances {
			ci := &n.ContainerInstances[i]
			add(&ElementInfo{ID: ci.ID, Kind: KindContainerInstance, ParentID: n.ID, Environment: n.Environment, RefID: ci.ContainerID}, ci.Relationships)
		}
		for i := range n.Children {
			if n.Children[i].Environment == "" {
				n.Children[i].Environment = n.Environment
			}
			walk(&n.Children[i], n.ID)
		}
	}
	for i := range m.DeploymentNodes {
		walk(&m.DeploymentNodes[i], "")
	}

	// Instances borrow the name and technology of what they stand for.
	for _, info := range ix.elements {
		if info.RefID == "" {
			continue
		}
		if ref, ok := ix.elements[info.RefID]; ok {
			info.Name = ref.Name
			info.Description = ref.Description
			info.Technology = ref.Technology
			info.Tags = ref.Tags
		}
	}

	ix.viewList = w.Views.all()
	for _, v := range ix.viewList {
		ix.views[v.Key] = v
	}
	return ix
}

// all returns every view in kind order, then declaration order, stamping each with its kind.
// Only called while building the index.
func (vs *Views) all() []*View {
	var out []*View
	for _, group := range []struct {
		kind  ViewKind
		views []View
	}{
		{ViewSystemLandscape, vs.SystemLandscapeViews},
		{ViewSystemContext, vs.SystemContextViews},
		{ViewContainer, vs.ContainerViews},
		{ViewComponent, vs.ComponentViews},
		{ViewDynamic, vs.DynamicViews},
		{ViewDeployment, vs.DeploymentViews},
	} {
		for i := range group.views {
			group.views[i].Kind = group.kind
			out = append(out, &group.views[i])
		}
	}
	return out
}
