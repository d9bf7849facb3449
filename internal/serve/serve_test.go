package serve

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/structurizr-site/generatr/internal/logger"
	"github.com/structurizr-site/generatr/internal/output"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fakeBuild(builds *atomic.Int32) BuildFunc {
	return func(ctx context.Context) (*output.MemWriter, error) {
		n := builds.Add(1)
		out := output.NewMemWriter()
		page := "<html>" + strings.Repeat("generation ", 200) + "</html>"
		if err := out.Write("index.html", []byte(page)); err != nil {
			return nil, err
		}
		if err := out.Write("software-systems/orders/index.html", []byte("orders")); err != nil {
			return nil, err
		}
		if err := out.Write("css/style.css", []byte("body{}")); err != nil {
			return nil, err
		}
		if n > 1 {
			if err := out.Write("rebuilt.txt", []byte("yes")); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
}

func newTestServer(t *testing.T, build BuildFunc) (*Server, *httptest.Server) {
	t.Helper()
	s := New(build, logger.Discard())
	require.NoError(t, s.Rebuild(context.Background()))
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		srv.Close()
	})
	return s, srv
}

func get(t *testing.T, url string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServeFiles(t *testing.T) {
	var builds atomic.Int32
	_, srv := newTestServer(t, fakeBuild(&builds))

	resp := get(t, srv.URL+"/software-systems/orders/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "orders", string(body))
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp = get(t, srv.URL+"/css/style.css", nil)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")

	resp = get(t, srv.URL+"/software-systems/orders", nil)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/software-systems/orders/", resp.Header.Get("Location"))

	resp = get(t, srv.URL+"/missing.html", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeGzip(t *testing.T) {
	var builds atomic.Int32
	_, srv := newTestServer(t, fakeBuild(&builds))

	resp := get(t, srv.URL+"/", map[string]string{"Accept-Encoding": "gzip"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
}

func TestRebuildFailureKeepsPreviousBuild(t *testing.T) {
	var builds atomic.Int32
	fail := atomic.Bool{}
	build := func(ctx context.Context) (*output.MemWriter, error) {
		if fail.Load() {
			return nil, errors.New("workspace is broken")
		}
		return fakeBuild(&builds)(ctx)
	}
	s, srv := newTestServer(t, build)

	fail.Store(true)
	assert.ErrorContains(t, s.Rebuild(context.Background()), "workspace is broken")
	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/", nil).StatusCode)
}

func TestLiveReload(t *testing.T) {
	var builds atomic.Int32
	s, srv := newTestServer(t, fakeBuild(&builds))

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+LiveReloadPath, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(msg))

	require.NoError(t, s.Rebuild(context.Background()))
	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "reload", string(msg))

	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/rebuilt.txt", nil).StatusCode)
}

func TestWatchRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "workspace.json")
	require.NoError(t, os.WriteFile(file, []byte(`{}`), 0o644))

	var builds atomic.Int32
	s := New(fakeBuild(&builds), logger.Discard())
	s.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, file) }()

	require.Eventually(t, func() bool {
		// Keep touching the file until the watcher is registered and reacts.
		_ = os.WriteFile(file, []byte(`{"name":"changed"}`), 0o644)
		return builds.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
