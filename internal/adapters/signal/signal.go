package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Sketch/internal/app"
	"github.com/dkeye/Sketch/internal/app/orch"
	"github.com/dkeye/Sketch/internal/config"
	"github.com/dkeye/Sketch/internal/core"
)

// Controller is the per-connection protocol handler: it decodes
// inbound events, calls into the orchestrator and fans results out
// through the broadcaster.
type Controller struct {
	Orch *orch.Orchestrator
	Cast *app.Broadcaster
	Cfg  *config.Config

	creates *EventRateLimiter
}

func NewController(o *orch.Orchestrator, cast *app.Broadcaster, cfg *config.Config) *Controller {
	return &Controller{
		Orch:    o,
		Cast:    cast,
		Cfg:     cfg,
		creates: NewEventRateLimiter(cfg.CreateLimit, cfg.CreateWindow),
	}
}

// WsConn wraps a websocket connection with a buffered outbound queue.
// TrySend is the only producer path; the write pump is the only
// consumer.
type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and runs one session until the
// client goes away. Each websocket gets a fresh connection id; the
// client token cookie only ties HTTP and session logs together.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := core.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("ct", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.Cfg.ReadLimit)

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, ctl.Cfg.SendBuffer),
	}
	ctl.Orch.Registry.Bind(sid, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}
