package serve

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type client struct {
	conn   *websocket.Conn
	reload chan struct{}
}

// hub tracks connected browsers.
type hub struct {
	log *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

func newHub(log *slog.Logger) *hub {
	return &hub{log: log, clients: make(map[*client]struct{})}
}

// broadcast asks every client to reload. Clients with a pending reload are skipped.
func (h *hub) broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.reload <- struct{}{}:
		default:
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.conn.Close()
	}
}

func (h *hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	c := &client{conn: conn, reload: make(chan struct{}, 1)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		h.log.Warn("live reload set read deadline failed", "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(wsPingEvery)
		defer ticker.Stop()

		write := func(kind int, data []byte) bool {
			if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return false
			}
			return conn.WriteMessage(kind, data) == nil
		}
		if !write(websocket.TextMessage, []byte("hello")) {
			_ = conn.Close()
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.reload:
				if !write(websocket.TextMessage, []byte("reload")) {
					_ = conn.Close()
					return
				}
			case <-ticker.C:
				if !write(websocket.PingMessage, nil) {
					_ = conn.Close()
					return
				}
			}
		}
	}()

	// Browsers send nothing; reading handles pongs and notices disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	cancel()
	<-writerDone
}
