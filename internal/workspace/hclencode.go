package workspace

import (
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// EncodeHCL writes the workspace in the HCL workspace format read by Decode.
// Relationship ids are not preserved; dynamic view steps refer to source and destination.
func EncodeHCL(w *Workspace) []byte {
	f := hclwrite.NewEmptyFile()
	wsBody := f.Body().AppendNewBlock("workspace", nil).Body()

	setStr(wsBody, "name", w.Name)
	setStr(wsBody, "description", w.Description)
	setMap(wsBody, "properties", w.Properties)
	appendSections(wsBody, w.Documentation)

	for i := range w.Model.People {
		p := &w.Model.People[i]
		b := appendElement(wsBody, "person", &p.Element)
		setStr(b, "location", p.Location)
		appendUses(b, p.Relationships)
	}
	for i := range w.Model.SoftwareSystems {
		s := &w.Model.SoftwareSystems[i]
		b := appendElement(wsBody, "software_system", &s.Element)
		setStr(b, "location", s.Location)
		setStr(b, "url", s.URL)
		setMap(b, "properties", s.Properties)
		appendUses(b, s.Relationships)
		for j := range s.Containers {
			c := &s.Containers[j]
			cb := appendElement(b, "container", &c.Element)
			setStr(cb, "technology", c.Technology)
			appendUses(cb, c.Relationships)
			for k := range c.Components {
				cp := &c.Components[k]
				pb := appendElement(cb, "component", &cp.Element)
				setStr(pb, "technology", cp.Technology)
				appendUses(pb, cp.Relationships)
			}
		}
		appendSections(b, s.Documentation)
	}
	for i := range w.Model.DeploymentNodes {
		appendNode(wsBody, &w.Model.DeploymentNodes[i], "")
	}
	for _, v := range w.AllViews() {
		appendView(wsBody, w, v)
	}
	return f.Bytes()
}

func appendElement(parent *hclwrite.Body, blockType string, e *Element) *hclwrite.Body {
	parent.AppendNewline()
	b := parent.AppendNewBlock(blockType, []string{e.ID}).Body()
	if e.Name != e.ID {
		setStr(b, "name", e.Name)
	}
	setStr(b, "description", e.Description)
	setList(b, "tags", splitTags(e.Tags))
	return b
}

func appendUses(parent *hclwrite.Body, rels []Relationship) {
	for _, r := range rels {
		b := parent.AppendNewBlock("uses", []string{r.DestinationID}).Body()
		setStr(b, "description", r.Description)
		setStr(b, "technology", r.Technology)
		setList(b, "tags", splitTags(r.Tags))
	}
}

func appendSections(parent *hclwrite.Body, d Documentation) {
	for _, s := range d.Sections {
		b := parent.AppendNewBlock("section", nil).Body()
		setStr(b, "title", s.Title)
		setStr(b, "format", s.Format)
		b.SetAttributeValue("content", cty.StringVal(s.Content))
	}
}

func appendNode(parent *hclwrite.Body, n *DeploymentNode, parentEnv string) {
	b := appendElement(parent, "deployment_node", &n.Element)
	if n.Environment != parentEnv {
		setStr(b, "environment", n.Environment)
	}
	setStr(b, "technology", n.Technology)
	var systems, containers []string
	for _, si := range n.SoftwareSystemInstances {
		systems = append(systems, si.SoftwareSystemID)
	}
	for _, ci := range n.ContainerInstances {
		containers = append(containers, ci.ContainerID)
	}
	setList(b, "software_system_instances", systems)
	setList(b, "container_instances", containers)
	for i := range n.InfrastructureNodes {
		in := &n.InfrastructureNodes[i]
		ib := appendElement(b, "infrastructure_node", &in.Element)
		setStr(ib, "technology", in.Technology)
		appendUses(ib, in.Relationships)
	}
	for i := range n.Children {
		appendNode(b, &n.Children[i], n.Environment)
	}
}

func appendView(parent *hclwrite.Body, w *Workspace, v *View) {
	parent.AppendNewline()
	b := parent.AppendNewBlock("view", []string{v.Kind.String(), v.Key}).Body()
	switch v.Kind {
	case ViewSystemContext, ViewContainer, ViewDeployment:
		setStr(b, "scope", v.SoftwareSystemID)
	case ViewComponent:
		setStr(b, "scope", v.ContainerID)
	case ViewDynamic:
		setStr(b, "scope", v.ElementID)
	}
	setStr(b, "title", v.Title)
	setStr(b, "description", v.Description)
	setStr(b, "environment", v.Environment)
	if v.AutoLayout != nil {
		setStr(b, "auto_layout", v.AutoLayout.RankDirection)
	}
	var include []string
	for _, e := range v.Elements {
		include = append(include, e.ID)
	}
	setList(b, "include", include)
	if v.Kind != ViewDynamic {
		return
	}
	for _, st := range Steps(v) {
		r := w.Relationship(st.ID)
		if r == nil {
			continue
		}
		sb := b.AppendNewBlock("step", nil).Body()
		sb.SetAttributeValue("from", cty.StringVal(r.SourceID))
		sb.SetAttributeValue("to", cty.StringVal(r.DestinationID))
		setStr(sb, "description", st.Description)
	}
}

func setStr(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

func setList(body *hclwrite.Body, name string, values []string) {
	if len(values) == 0 {
		return
	}
	list := make([]cty.Value, len(values))
	for i, v := range values {
		list[i] = cty.StringVal(v)
	}
	body.SetAttributeValue(name, cty.ListVal(list))
}

func setMap(body *hclwrite.Body, name string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	vals := make(map[string]cty.Value, len(m))
	for k, v := range m {
		vals[k] = cty.StringVal(v)
	}
	body.SetAttributeValue(name, cty.MapVal(vals))
}

func splitTags(tags string) []string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
