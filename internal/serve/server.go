package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/structurizr-site/generatr/internal/output"
)

// LiveReloadPath is the WebSocket endpoint pages connect to when live reload is enabled.
const LiveReloadPath = "/_livereload"

// BuildFunc generates the whole site into memory.
type BuildFunc func(ctx context.Context) (*output.MemWriter, error)

// Server serves the most recent successful build and tells browsers when it changes.
type Server struct {
	build    BuildFunc
	log      *slog.Logger
	hub      *hub
	debounce time.Duration

	mu    sync.RWMutex
	files map[string][]byte
}

// New returns a server that builds the site with build.
func New(build BuildFunc, log *slog.Logger) *Server {
	return &Server{
		build:    build,
		log:      log,
		hub:      newHub(log),
		debounce: 200 * time.Millisecond,
		files:    make(map[string][]byte),
	}
}

// Rebuild regenerates the site. On failure the previous build keeps being served.
func (s *Server) Rebuild(ctx context.Context) error {
	start := time.Now()
	out, err := s.build(ctx)
	if err != nil {
		return fmt.Errorf("rebuild site: %w", err)
	}
	files := out.Files()
	s.mu.Lock()
	s.files = files
	s.mu.Unlock()
	s.log.Info("site rebuilt", "files", len(files), "duration", time.Since(start))
	s.hub.broadcast()
	return nil
}

// Handler serves site files gzip-compressed, plus the live reload socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(LiveReloadPath, s.hub.serveWS)
	mux.Handle("/", gzhttp.GzipHandler(http.HandlerFunc(s.serveFile)))
	return mux
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if p == "" || strings.HasSuffix(r.URL.Path, "/") {
		p = path.Join(p, "index.html")
	}

	s.mu.RLock()
	content, ok := s.files[p]
	_, isDir := s.files[path.Join(p, "index.html")]
	s.mu.RUnlock()

	switch {
	case ok:
		if ct := mime.TypeByExtension(path.Ext(p)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(content)
	case isDir:
		http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
	default:
		http.NotFound(w, r)
	}
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("serving site", "addr", addr)

	select {
	case <-ctx.Done():
		s.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Close disconnects every live reload client.
func (s *Server) Close() {
	s.hub.closeAll()
}
