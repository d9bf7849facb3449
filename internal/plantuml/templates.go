package plantuml

import (
	"github.com/structurizr-site/generatr/internal/workspace"
)

// includes maps a view kind to the C4-PlantUML library it needs.
var includes = map[workspace.ViewKind]string{
	workspace.ViewSystemLandscape: "C4/C4_Context",
	workspace.ViewSystemContext:   "C4/C4_Context",
	workspace.ViewContainer:       "C4/C4_Container",
	workspace.ViewComponent:       "C4/C4_Component",
	workspace.ViewDynamic:         "C4/C4_Dynamic",
	workspace.ViewDeployment:      "C4/C4_Deployment",
}

// writePreamble emits the include, layout and title lines shared by every diagram.
func writePreamble(b *Builder, v *workspace.View) {
	b.Line("!include <%s>", includes[v.Kind])
	b.Blank()
	switch layout(v) {
	case "LeftRight":
		b.Line("LAYOUT_LEFT_RIGHT()")
	case "RightLeft", "BottomTop":
		b.Line("LAYOUT_LANDSCAPE()")
	default:
		b.Line("LAYOUT_TOP_DOWN()")
	}
	b.Line("title %s", v.Name())
	b.Blank()
}

func layout(v *workspace.View) string {
	if v.AutoLayout == nil {
		return ""
	}
	return v.AutoLayout.RankDirection
}
