package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Devices connect without an Origin header, so any origin is accepted.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Stream actuator state
// @Description  Sends {type:"actuator", data} on connect and on every tick.
// @Tags         device
// @Param        Plant-Id     header  string  false  "Plant identifier"
// @Param        plant_id     query   string  false  "Plant identifier when headers cannot be set"
// @Param        interval     query   string  false  "Tick as a Go duration, max 10s"  example(2s)
// @Param        interval_ms  query   int     false  "Tick in milliseconds, max 10000"
// @Failure      400  {object}  statusResponse
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	plantID := strings.TrimSpace(c.GetHeader(plantIDHeader))
	if plantID == "" {
		plantID = strings.TrimSpace(c.Query("plant_id"))
	}
	if plantID == "" {
		abortWithError(c, http.StatusBadRequest, msgMissingPlantID)
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendActuatorState(ctx, conn, plantID); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "plant_id", plantID, "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendActuatorState(ctx, conn, plantID); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "plant_id", plantID, "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendActuatorState resolves and writes the current state. A resolve failure
// is reported to the client as an error envelope before the stream closes.
func (h *Handler) sendActuatorState(ctx context.Context, conn *websocket.Conn, plantID string) error {
	st, err := h.services.Resolve(ctx, plantID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_resolve_failed", "plant_id", plantID, "err", err)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: err.Error()})
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "actuator", Data: st})
}
