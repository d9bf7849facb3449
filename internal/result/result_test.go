package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	r := &GenerateResult{
		Success:   true,
		Files:     []string{"index.html", "css/style.css"},
		Pages:     9,
		Redirects: 3,
		Skipped:   []string{"software-systems/orders/dynamic/index.html"},
		Warnings:  []Warning{{Type: "render_error"}},
	}
	assert.Equal(t, "ok: 9 pages (3 redirects, 1 skipped), 2 files, 0 errors, 1 warnings", r.Summary())

	r.Success = false
	assert.Contains(t, r.Summary(), "failed:")
}
