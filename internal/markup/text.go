package markup

import (
	"html"
	"html/template"
	"strings"
)

type textRenderer struct{}

func init() {
	Default.Register(textRenderer{})
}

func (textRenderer) Format() string { return "Text" }

// Render wraps each blank-line separated block in a paragraph.
func (textRenderer) Render(src string) (template.HTML, error) {
	var sb strings.Builder
	for _, para := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(html.EscapeString(para), "\n", "<br>\n"))
		sb.WriteString("</p>\n")
	}
	return template.HTML(sb.String()), nil
}
