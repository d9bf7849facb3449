package workspace

import "sync"

// Workspace is the root structure of a Structurizr workspace (JSON export shape).
type Workspace struct {
	ID            int64             `json:"id,omitempty"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Properties    map[string]string `json:"properties,omitempty"`
	Model         Model             `json:"model"`
	Views         Views             `json:"views"`
	Documentation Documentation     `json:"documentation,omitempty"`

	indexOnce sync.Once
	index     *index
}

// Model holds every element of the workspace.
type Model struct {
	People          []Person         `json:"people,omitempty"`
	SoftwareSystems []SoftwareSystem `json:"softwareSystems,omitempty"`
	DeploymentNodes []DeploymentNode `json:"deploymentNodes,omitempty"`
}

// Element carries the fields shared by every model element.
// Relationships are declared on their source element.
type Element struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Tags          string            `json:"tags,omitempty"`
	URL           string            `json:"url,omitempty"`
	Properties    map[string]string `json:"properties,omitempty"`
	Relationships []Relationship    `json:"relationships,omitempty"`
}

// Person is a user of one or more software systems.
type Person struct {
	Element
	Location string `json:"location,omitempty"`
}

// SoftwareSystem is the top-level unit a site is organised around.
type SoftwareSystem struct {
	Element
	Location      string        `json:"location,omitempty"`
	Containers    []Container   `json:"containers,omitempty"`
	Documentation Documentation `json:"documentation,omitempty"`
}

// Container is a deployable/runnable part of a software system.
type Container struct {
	Element
	Technology string      `json:"technology,omitempty"`
	Components []Component `json:"components,omitempty"`
}

// Component is a grouping of functionality inside a container.
type Component struct {
	Element
	Technology string `json:"technology,omitempty"`
}

// DeploymentNode is a node in a deployment environment; nodes nest.
type DeploymentNode struct {
	Element
	Environment             string                   `json:"environment,omitempty"`
	Technology              string                   `json:"technology,omitempty"`
	Children                []DeploymentNode         `json:"children,omitempty"`
	SoftwareSystemInstances []SoftwareSystemInstance `json:"softwareSystemInstances,omitempty"`
	ContainerInstances      []ContainerInstance      `json:"containerInstances,omitempty"`
	InfrastructureNodes     []InfrastructureNode     `json:"infrastructureNodes,omitempty"`
}

// SoftwareSystemInstance places a software system on a deployment node.
type SoftwareSystemInstance struct {
	ID               string         `json:"id"`
	SoftwareSystemID string         `json:"softwareSystemId"`
	Environment      string         `json:"environment,omitempty"`
	Relationships    []Relationship `json:"relationships,omitempty"`
}

// ContainerInstance places a container on a deployment node.
type ContainerInstance struct {
	ID            string         `json:"id"`
	ContainerID   string         `json:"containerId"`
	Environment   string         `json:"environment,omitempty"`
	Relationships []Relationship `json:"relationships,omitempty"`
}

// InfrastructureNode is a load balancer, firewall, DNS entry, etc.
type InfrastructureNode struct {
	Element
	Environment string `json:"environment,omitempty"`
	Technology  string `json:"technology,omitempty"`
}

// Relationship is a directed "uses" edge between two elements.
type Relationship struct {
	ID            string `json:"id"`
	SourceID      string `json:"sourceId"`
	DestinationID string `json:"destinationId"`
	Description   string `json:"description,omitempty"`
	Technology    string `json:"technology,omitempty"`
	Tags          string `json:"tags,omitempty"`
}

// Views is the collection of view definitions, grouped per kind in declaration order.
type Views struct {
	SystemLandscapeViews []View `json:"systemLandscapeViews,omitempty"`
	SystemContextViews   []View `json:"systemContextViews,omitempty"`
	ContainerViews       []View `json:"containerViews,omitempty"`
	ComponentViews       []View `json:"componentViews,omitempty"`
	DynamicViews         []View `json:"dynamicViews,omitempty"`
	DeploymentViews      []View `json:"deploymentViews,omitempty"`
}

// View describes a single diagram.
type View struct {
	Kind        ViewKind `json:"-"`
	Key         string   `json:"key"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	// SoftwareSystemID scopes system context, container and deployment views.
	SoftwareSystemID string `json:"softwareSystemId,omitempty"`
	// ContainerID scopes component views.
	ContainerID string `json:"containerId,omitempty"`
	// ElementID scopes dynamic views (software system, container or empty for the whole model).
	ElementID     string             `json:"elementId,omitempty"`
	Environment   string             `json:"environment,omitempty"`
	Elements      []ElementView      `json:"elements,omitempty"`
	Relationships []RelationshipView `json:"relationships,omitempty"`
	AutoLayout    *AutoLayout        `json:"automaticLayout,omitempty"`
}

// ElementView includes one element in a view.
type ElementView struct {
	ID string `json:"id"`
}

// RelationshipView includes one relationship in a view; Order is set for dynamic views.
type RelationshipView struct {
	ID          string `json:"id"`
	Order       string `json:"order,omitempty"`
	Description string `json:"description,omitempty"`
}

// AutoLayout holds the layout hints of a view.
type AutoLayout struct {
	RankDirection string `json:"rankDirection,omitempty"`
}

// Documentation is a list of prose sections.
type Documentation struct {
	Sections []Section `json:"sections,omitempty"`
}

// Section is one documentation block in Markdown or AsciiDoc.
type Section struct {
	Title    string `json:"title,omitempty"`
	Order    int    `json:"order,omitempty"`
	Format   string `json:"format,omitempty"`
	Filename string `json:"filename,omitempty"`
	Content  string `json:"content"`
}

// Name returns the title of the view, falling back to its key.
func (v *View) Name() string {
	if v.Title != "" {
		return v.Title
	}
	return v.Key
}
