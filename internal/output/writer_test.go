package output

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "index.html", want: "index.html"},
		{in: "/software-systems/orders/index.html", want: "software-systems/orders/index.html"},
		{in: "a/./b/../c.html", want: "a/c.html"},
		{in: "../etc/passwd", wantErr: true},
		{in: "", wantErr: true},
		{in: "dir/", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Clean(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewDirWriter(dir)

	require.NoError(t, w.Write("software-systems/orders/index.html", []byte("<html>")))
	b, err := os.ReadFile(filepath.Join(dir, "software-systems", "orders", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>", string(b))

	err = w.Write("/software-systems/orders/index.html", []byte("again"))
	assert.ErrorIs(t, err, ErrAlreadyWritten)
}

func TestMemWriterConcurrent(t *testing.T) {
	w := NewMemWriter()
	var wg sync.WaitGroup
	for _, p := range []string{"c.html", "a.html", "b/index.html"} {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			assert.NoError(t, w.Write(p, []byte(p)))
		}(p)
	}
	wg.Wait()

	assert.Equal(t, []string{"a.html", "b/index.html", "c.html"}, w.Paths())
	got, ok := w.Get("/b/index.html")
	require.True(t, ok)
	assert.Equal(t, "b/index.html", string(got))
	assert.ErrorIs(t, w.Write("a.html", nil), ErrAlreadyWritten)
	assert.Len(t, w.Files(), 3)
}
