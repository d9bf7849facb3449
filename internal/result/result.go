package result

import "fmt"

// Error is a generation problem. Fatal errors stop the run; others are recorded per page.
type Error struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Entity     string `json:"entity,omitempty"`
	Page       string `json:"page,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning is a non-fatal problem, such as a diagram replaced by a placeholder.
type Warning struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Entity     string `json:"entity,omitempty"`
	Page       string `json:"page,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// GenerateResult is the outcome of generating a site.
type GenerateResult struct {
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Pages   int      `json:"pages"`
	// Redirects counts pages emitted as redirect-up stubs.
	Redirects int `json:"redirects"`
	// Skipped lists pages replaced by a diagnostic placeholder.
	Skipped  []string  `json:"skipped,omitempty"`
	Errors   []Error   `json:"errors,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Summary is a one-line account of the run.
func (r *GenerateResult) Summary() string {
	status := "ok"
	if !r.Success {
		status = "failed"
	}
	return fmt.Sprintf("%s: %d pages (%d redirects, %d skipped), %d files, %d errors, %d warnings",
		status, r.Pages, r.Redirects, len(r.Skipped), len(r.Files), len(r.Errors), len(r.Warnings))
}
