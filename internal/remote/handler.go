package remote

import (
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/ringdefense/internal/config"
)

// Handler upgrades HTTP requests to websockets and runs one session per connection.
type Handler struct {
	settings config.Settings
	logger   *log.Logger
	upgrader websocket.Upgrader
	nextID   atomic.Uint64
}

// NewHandler returns a handler whose sessions use settings. A nil logger discards.
func NewHandler(settings config.Settings, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{
		settings: settings,
		logger:   logger,
		upgrader: websocket.Upgrader{
			// AR clients are served from other origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	id := "s" + strconv.FormatUint(h.nextID.Add(1), 10)
	h.logger.Info("remote client connected", "session", id, "remote", r.RemoteAddr)

	conn.SetReadLimit(config.RemoteMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(config.RemoteReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(config.RemoteReadTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	p := newPeer(id, h.settings, h.logger)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("remote read failed", "session", id, "err", err)
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(config.RemoteReadTimeout))

		reply := p.handle(msg)
		if reply == nil {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(config.RemoteWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			h.logger.Warn("remote write failed", "session", id, "err", err)
			break
		}
	}
	h.logger.Info("remote client disconnected", "session", id)
}

// keepAlive pings until done closes or a ping fails.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(config.RemotePingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(config.RemoteWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
