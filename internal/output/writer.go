package output

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrAlreadyWritten is returned when a path is written twice in one run.
var ErrAlreadyWritten = errors.New("output path already written")

// Writer stores generated site files by slash-separated relative path.
type Writer interface {
	Write(path string, content []byte) error
}

// Clean normalizes a relative output path and rejects paths that escape the site root
// or name a directory.
func Clean(p string) (string, error) {
	rel := strings.TrimPrefix(p, "/")
	c := path.Clean(rel)
	if rel == "" || strings.HasSuffix(rel, "/") || c == "." || c == ".." || strings.HasPrefix(c, "../") {
		return "", fmt.Errorf("invalid output path %q", p)
	}
	return c, nil
}

// DirWriter writes files under a directory on disk.
type DirWriter struct {
	root    string
	mu      sync.Mutex
	written map[string]bool
}

// NewDirWriter returns a writer rooted at dir.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{root: dir, written: make(map[string]bool)}
}

func (w *DirWriter) Write(p string, content []byte) error {
	rel, err := Clean(p)
	if err != nil {
		return err
	}
	w.mu.Lock()
	if w.written[rel] {
		w.mu.Unlock()
		return fmt.Errorf("%s: %w", rel, ErrAlreadyWritten)
	}
	w.written[rel] = true
	w.mu.Unlock()

	full := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// MemWriter keeps files in memory. It is safe for concurrent use.
type MemWriter struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemWriter returns an empty MemWriter.
func NewMemWriter() *MemWriter {
	return &MemWriter{files: make(map[string][]byte)}
}

func (w *MemWriter) Write(p string, content []byte) error {
	rel, err := Clean(p)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[rel]; ok {
		return fmt.Errorf("%s: %w", rel, ErrAlreadyWritten)
	}
	w.files[rel] = append([]byte(nil), content...)
	return nil
}

// Get returns the content written at p.
func (w *MemWriter) Get(p string) ([]byte, bool) {
	rel, err := Clean(p)
	if err != nil {
		return nil, false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.files[rel]
	return b, ok
}

// Paths returns every written path, sorted.
func (w *MemWriter) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Files returns a copy of every written file.
func (w *MemWriter) Files() map[string][]byte {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[string][]byte, len(w.files))
	for p, b := range w.files {
		out[p] = b
	}
	return out
}
