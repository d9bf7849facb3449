package site

import "fmt"

// RenderError reports a diagram that could not be rendered. The page showing it
// is replaced by a diagnostic placeholder.
type RenderError struct {
	View string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render view %s: %v", e.View, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// OutputPathCollisionError reports two pages or files mapping to the same output path.
type OutputPathCollisionError struct {
	Path   string
	First  string
	Second string
}

func (e *OutputPathCollisionError) Error() string {
	return fmt.Sprintf("output path %s is produced by both %s and %s", e.Path, e.First, e.Second)
}
