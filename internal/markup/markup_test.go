package markup

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFormats(t *testing.T) {
	assert.Equal(t, []string{"Markdown", "Text"}, Default.ListSupportedFormats())
}

func TestRenderMarkdown(t *testing.T) {
	out, err := Default.Render("markdown", "# Overview\n\nThe shop sells *things*.")
	require.NoError(t, err)
	assert.Contains(t, string(out), `<h1 id="overview">Overview</h1>`)
	assert.Contains(t, string(out), "<em>things</em>")
}

func TestRenderText(t *testing.T) {
	out, err := Default.Render("Text", "a < b\nc\n\nnext")
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<p>a &lt; b<br>\nc</p>\n<p>next</p>\n"), out)
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Default.Render("AsciiDoc", "= Title")
	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "AsciiDoc", re.Format)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, template.HTML("<pre>&lt;b&gt;</pre>"), Literal("<b>"))
}

func TestRegistryIsolation(t *testing.T) {
	r := New()
	_, ok := r.Get("Markdown")
	assert.False(t, ok)
	r.Register(markdownRenderer{})
	_, ok = r.Get("MARKDOWN")
	assert.True(t, ok)
}
