package workspace

// ViewKind identifies the diagram type of a view definition.
type ViewKind int

const (
	ViewSystemLandscape ViewKind = iota
	ViewSystemContext
	ViewContainer
	ViewComponent
	ViewDynamic
	ViewDeployment
)

func (k ViewKind) String() string {
	switch k {
	case ViewSystemLandscape:
		return "system_landscape"
	case ViewSystemContext:
		return "system_context"
	case ViewContainer:
		return "container"
	case ViewComponent:
		return "component"
	case ViewDynamic:
		return "dynamic"
	case ViewDeployment:
		return "deployment"
	default:
		return "unknown"
	}
}

// ParseViewKind maps the HCL view label to a ViewKind.
func ParseViewKind(s string) (ViewKind, bool) {
	for k := ViewSystemLandscape; k <= ViewDeployment; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// ElementKind identifies what an element ID points at.
type ElementKind int

const (
	KindPerson ElementKind = iota
	KindSoftwareSystem
	KindContainer
	KindComponent
	KindDeploymentNode
	KindInfrastructureNode
	KindSoftwareSystemInstance
	KindContainerInstance
)

func (k ElementKind) String() string {
	switch k {
	case KindPerson:
		return "person"
	case KindSoftwareSystem:
		return "software_system"
	case KindContainer:
		return "container"
	case KindComponent:
		return "component"
	case KindDeploymentNode:
		return "deployment_node"
	case KindInfrastructureNode:
		return "infrastructure_node"
	case KindSoftwareSystemInstance:
		return "software_system_instance"
	case KindContainerInstance:
		return "container_instance"
	default:
		return "unknown"
	}
}
