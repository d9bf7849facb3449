package site

import "runtime"

// MaxParallelism caps the number of pages built at once.
const MaxParallelism = 32

// Options configures site generation.
type Options struct {
	// SiteTitle overrides the workspace title when set.
	SiteTitle string
	// Parallelism is the number of pages built at once (0 = runtime.NumCPU).
	Parallelism int
	// LiveReload adds the development server's reload script to every page.
	LiveReload bool
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{Parallelism: Options{}.parallelism()}
}

func (o Options) parallelism() int {
	n := o.Parallelism
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > MaxParallelism {
		n = MaxParallelism
	}
	return n
}
