package workspace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// HCL workspace schema. Block labels carry element ids and view keys.

type hclFile struct {
	Workspace hclWorkspace `hcl:"workspace,block"`
}

type hclWorkspace struct {
	Name        string            `hcl:"name,optional"`
	Description string            `hcl:"description,optional"`
	Properties  map[string]string `hcl:"properties,optional"`
	Sections    []hclSection      `hcl:"section,block"`
	People      []hclPerson       `hcl:"person,block"`
	Systems     []hclSystem       `hcl:"software_system,block"`
	Nodes       []hclNode         `hcl:"deployment_node,block"`
	Views       []hclView         `hcl:"view,block"`
}

type hclSection struct {
	Title   string `hcl:"title,optional"`
	Format  string `hcl:"format,optional"`
	Content string `hcl:"content"`
}

type hclUses struct {
	Destination string   `hcl:"destination,label"`
	Description string   `hcl:"description,optional"`
	Technology  string   `hcl:"technology,optional"`
	Tags        []string `hcl:"tags,optional"`
}

type hclPerson struct {
	ID          string    `hcl:"id,label"`
	Name        string    `hcl:"name,optional"`
	Description string    `hcl:"description,optional"`
	Location    string    `hcl:"location,optional"`
	Tags        []string  `hcl:"tags,optional"`
	Uses        []hclUses `hcl:"uses,block"`
}

type hclSystem struct {
	ID          string            `hcl:"id,label"`
	Name        string            `hcl:"name,optional"`
	Description string            `hcl:"description,optional"`
	Location    string            `hcl:"location,optional"`
	URL         string            `hcl:"url,optional"`
	Tags        []string          `hcl:"tags,optional"`
	Properties  map[string]string `hcl:"properties,optional"`
	Uses        []hclUses         `hcl:"uses,block"`
	Containers  []hclContainer    `hcl:"container,block"`
	Sections    []hclSection      `hcl:"section,block"`
}

type hclContainer struct {
	ID          string         `hcl:"id,label"`
	Name        string         `hcl:"name,optional"`
	Description string         `hcl:"description,optional"`
	Technology  string         `hcl:"technology,optional"`
	Tags        []string       `hcl:"tags,optional"`
	Uses        []hclUses      `hcl:"uses,block"`
	Components  []hclComponent `hcl:"component,block"`
}

type hclComponent struct {
	ID          string    `hcl:"id,label"`
	Name        string    `hcl:"name,optional"`
	Description string    `hcl:"description,optional"`
	Technology  string    `hcl:"technology,optional"`
	Tags        []string  `hcl:"tags,optional"`
	Uses        []hclUses `hcl:"uses,block"`
}

type hclNode struct {
	ID                 string     `hcl:"id,label"`
	Name               string     `hcl:"name,optional"`
	Description        string     `hcl:"description,optional"`
	Environment        string     `hcl:"environment,optional"`
	Technology         string     `hcl:"technology,optional"`
	Tags               []string   `hcl:"tags,optional"`
	ContainerInstances []string   `hcl:"container_instances,optional"`
	SystemInstances    []string   `hcl:"software_system_instances,optional"`
	Infrastructure     []hclInfra `hcl:"infrastructure_node,block"`
	Children           []hclNode  `hcl:"deployment_node,block"`
}

type hclInfra struct {
	ID          string    `hcl:"id,label"`
	Name        string    `hcl:"name,optional"`
	Description string    `hcl:"description,optional"`
	Technology  string    `hcl:"technology,optional"`
	Tags        []string  `hcl:"tags,optional"`
	Uses        []hclUses `hcl:"uses,block"`
}

type hclView struct {
	Kind        string    `hcl:"kind,label"`
	Key         string    `hcl:"key,label"`
	Scope       string    `hcl:"scope,optional"`
	Title       string    `hcl:"title,optional"`
	Description string    `hcl:"description,optional"`
	Environment string    `hcl:"environment,optional"`
	Include     []string  `hcl:"include,optional"`
	AutoLayout  string    `hcl:"auto_layout,optional"`
	Steps       []hclStep `hcl:"step,block"`
}

type hclStep struct {
	From        string `hcl:"from"`
	To          string `hcl:"to"`
	Description string `hcl:"description,optional"`
}

// evalContext exposes var.<name> and a few string functions to HCL workspaces.
func evalContext(vars map[string]string) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(vars))
	for k, v := range vars {
		vals[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vals),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"concat": stdlib.ConcatFunc,
		},
	}
}

func decodeHCL(data []byte, opts DecodeOptions) (*Workspace, error) {
	filename := opts.Filename
	if filename == "" {
		filename = "workspace.hcl"
	}
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse HCL: %w", diags)
	}
	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(opts.Variables), &f); diags.HasErrors() {
		return nil, fmt.Errorf("decode HCL: %w", diags)
	}
	return (&hclConverter{}).convert(&f.Workspace)
}

type relKey struct {
	source, destination, id string
}

type hclConverter struct {
	next int
	rels []relKey
}

func (c *hclConverter) convert(hw *hclWorkspace) (*Workspace, error) {
	ws := &Workspace{
		Name:          hw.Name,
		Description:   hw.Description,
		Properties:    hw.Properties,
		Documentation: convertSections(hw.Sections),
	}
	for _, p := range hw.People {
		ws.Model.People = append(ws.Model.People, Person{
			Element:  c.element(p.ID, p.Name, p.Description, p.Tags, p.Uses),
			Location: p.Location,
		})
	}
	for _, s := range hw.Systems {
		sys := SoftwareSystem{
			Element:       c.element(s.ID, s.Name, s.Description, s.Tags, s.Uses),
			Location:      s.Location,
			Documentation: convertSections(s.Sections),
		}
		sys.URL = s.URL
		sys.Properties = s.Properties
		for _, hc := range s.Containers {
			ctr := Container{
				Element:    c.element(hc.ID, hc.Name, hc.Description, hc.Tags, hc.Uses),
				Technology: hc.Technology,
			}
			for _, hp := range hc.Components {
				ctr.Components = append(ctr.Components, Component{
					Element:    c.element(hp.ID, hp.Name, hp.Description, hp.Tags, hp.Uses),
					Technology: hp.Technology,
				})
			}
			sys.Containers = append(sys.Containers, ctr)
		}
		ws.Model.SoftwareSystems = append(ws.Model.SoftwareSystems, sys)
	}
	for i := range hw.Nodes {
		ws.Model.DeploymentNodes = append(ws.Model.DeploymentNodes, c.node(&hw.Nodes[i], ""))
	}

	for _, hv := range hw.Views {
		v, err := c.view(hv)
		if err != nil {
			return nil, err
		}
		switch v.Kind {
		case ViewSystemLandscape:
			ws.Views.SystemLandscapeViews = append(ws.Views.SystemLandscapeViews, v)
		case ViewSystemContext:
			ws.Views.SystemContextViews = append(ws.Views.SystemContextViews, v)
		case ViewContainer:
			ws.Views.ContainerViews = append(ws.Views.ContainerViews, v)
		case ViewComponent:
			ws.Views.ComponentViews = append(ws.Views.ComponentViews, v)
		case ViewDynamic:
			ws.Views.DynamicViews = append(ws.Views.DynamicViews, v)
		case ViewDeployment:
			ws.Views.DeploymentViews = append(ws.Views.DeploymentViews, v)
		}
	}
	return ws, nil
}

func (c *hclConverter) element(id, name, description string, tags []string, uses []hclUses) Element {
	if name == "" {
		name = id
	}
	e := Element{
		ID:          id,
		Name:        name,
		Description: description,
		Tags:        strings.Join(tags, ","),
	}
	for _, u := range uses {
		e.Relationships = append(e.Relationships, c.relationship(id, u))
	}
	return e
}

func (c *hclConverter) relationship(source string, u hclUses) Relationship {
	c.next++
	r := Relationship{
		ID:            "r" + strconv.Itoa(c.next),
		SourceID:      source,
		DestinationID: u.Destination,
		Description:   u.Description,
		Technology:    u.Technology,
		Tags:          strings.Join(u.Tags, ","),
	}
	c.rels = append(c.rels, relKey{source: source, destination: u.Destination, id: r.ID})
	return r
}

func (c *hclConverter) node(hn *hclNode, parentEnv string) DeploymentNode {
	env := hn.Environment
	if env == "" {
		env = parentEnv
	}
	n := DeploymentNode{
		Element:     c.element(hn.ID, hn.Name, hn.Description, hn.Tags, nil),
		Environment: env,
		Technology:  hn.Technology,
	}
	for _, id := range hn.SystemInstances {
		n.SoftwareSystemInstances = append(n.SoftwareSystemInstances, SoftwareSystemInstance{
			ID: hn.ID + "." + id, SoftwareSystemID: id, Environment: env,
		})
	}
	for _, id := range hn.ContainerInstances {
		n.ContainerInstances = append(n.ContainerInstances, ContainerInstance{
			ID: hn.ID + "." + id, ContainerID: id, Environment: env,
		})
	}
	for _, in := range hn.Infrastructure {
		n.InfrastructureNodes = append(n.InfrastructureNodes, InfrastructureNode{
			Element:     c.element(in.ID, in.Name, in.Description, in.Tags, in.Uses),
			Environment: env,
			Technology:  in.Technology,
		})
	}
	for i := range hn.Children {
		n.Children = append(n.Children, c.node(&hn.Children[i], env))
	}
	return n
}

func (c *hclConverter) view(hv hclView) (View, error) {
	kind, ok := ParseViewKind(hv.Kind)
	if !ok {
		return View{}, fmt.Errorf("view %q: unknown kind %q", hv.Key, hv.Kind)
	}
	v := View{
		Kind:        kind,
		Key:         hv.Key,
		Title:       hv.Title,
		Description: hv.Description,
		Environment: hv.Environment,
	}
	switch kind {
	case ViewSystemContext, ViewContainer, ViewDeployment:
		v.SoftwareSystemID = hv.Scope
	case ViewComponent:
		v.ContainerID = hv.Scope
	case ViewDynamic:
		v.ElementID = hv.Scope
	}
	for _, id := range hv.Include {
		v.Elements = append(v.Elements, ElementView{ID: id})
	}
	if hv.AutoLayout != "" {
		v.AutoLayout = &AutoLayout{RankDirection: hv.AutoLayout}
	}
	for i, st := range hv.Steps {
		id, ok := c.find(st.From, st.To)
		if !ok {
			return View{}, fmt.Errorf("view %q step %d: no relationship from %q to %q", hv.Key, i+1, st.From, st.To)
		}
		v.Relationships = append(v.Relationships, RelationshipView{
			ID: id, Order: strconv.Itoa(i + 1), Description: st.Description,
		})
	}
	return v, nil
}

func (c *hclConverter) find(source, destination string) (string, bool) {
	for _, r := range c.rels {
		if r.source == source && r.destination == destination {
			return r.id, true
		}
	}
	return "", false
}

func convertSections(in []hclSection) Documentation {
	var d Documentation
	for i, s := range in {
		d.Sections = append(d.Sections, Section{
			Title:   s.Title,
			Order:   i + 1,
			Format:  s.Format,
			Content: s.Content,
		})
	}
	return d
}
