package site

// PageKind identifies one kind of generated page.
type PageKind int

const (
	KindHome PageKind = iota
	KindSoftwareSystems
	KindSoftwareSystemInfo
	KindSoftwareSystemContext
	KindSoftwareSystemStructure
	KindContainerComponents
	KindSoftwareSystemDynamic
	KindSoftwareSystemDeployment
)

var kindNames = [...]string{
	KindHome:                     "home",
	KindSoftwareSystems:          "software_systems",
	KindSoftwareSystemInfo:       "software_system_info",
	KindSoftwareSystemContext:    "software_system_context",
	KindSoftwareSystemStructure:  "software_system_structure",
	KindContainerComponents:      "container_components",
	KindSoftwareSystemDynamic:    "software_system_dynamic",
	KindSoftwareSystemDeployment: "software_system_deployment",
}

func (k PageKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Tab marks the highlighted entry of a software system's tab bar.
type Tab int

const (
	TabHome Tab = iota
	TabInfo
	TabContext
	TabStructure
	TabDynamic
	TabDeployment
)

var tabLabels = [...]string{
	TabHome:       "Home",
	TabInfo:       "Info",
	TabContext:    "Context",
	TabStructure:  "Structure",
	TabDynamic:    "Dynamic",
	TabDeployment: "Deployment",
}

func (t Tab) String() string {
	if int(t) < len(tabLabels) {
		return tabLabels[t]
	}
	return "Unknown"
}

// systemTabs is the tab bar order of software system pages.
var systemTabs = []Tab{TabInfo, TabContext, TabStructure, TabDynamic, TabDeployment}
