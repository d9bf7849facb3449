package markup

import (
	"html/template"

	"github.com/russross/blackfriday/v2"
)

type markdownRenderer struct{}

func init() {
	Default.Register(markdownRenderer{})
}

func (markdownRenderer) Format() string { return "Markdown" }

func (markdownRenderer) Render(src string) (template.HTML, error) {
	out := blackfriday.Run([]byte(src),
		blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.AutoHeadingIDs),
	)
	return template.HTML(out), nil
}
