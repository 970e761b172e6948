package viewerimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/orgball2608/class-gallery/internal/backend"
	"github.com/orgball2608/class-gallery/internal/ratelimit"
	"github.com/orgball2608/class-gallery/internal/timer"
	"github.com/orgball2608/class-gallery/internal/viewer"
	"github.com/orgball2608/class-gallery/pkg/config"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
	"github.com/orgball2608/class-gallery/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

type HubImpl struct {
	cfg       *config.Config
	backend   backend.Client
	scheduler timer.Scheduler
	limiter   ratelimit.Limiter
	logger    logger.Logger
	upgrader  websocket.Upgrader
	// pool bounds the startup loads of every session together
	pool *ants.Pool

	mu      sync.Mutex
	clients map[*client]struct{}
	wg      sync.WaitGroup
}

type Opts struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	Logger    logger.Logger
	Backend   backend.Client
	Limiter   ratelimit.Limiter
	Scheduler timer.Scheduler `optional:"true"`
}

func New(opts Opts) (*HubImpl, error) {
	pool, err := ants.NewPool(opts.Config.Gallery.StartWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to create viewer worker pool: %w", err)
	}

	h := &HubImpl{
		pool:      pool,
		cfg:       opts.Config,
		backend:   opts.Backend,
		scheduler: opts.Scheduler,
		limiter:   opts.Limiter,
		logger:    opts.Logger.WithComponent("ViewerHub"),
		clients:   make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(opts.Config.App.AllowOrigins),
		},
	}
	if h.scheduler == nil {
		h.scheduler = timer.NewReal()
	}

	if opts.Lc != nil {
		opts.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				h.Close()
				return nil
			},
		})
	}
	return h, nil
}

var _ viewer.Hub = (*HubImpl)(nil)

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeWS upgrades the request and runs a viewer session until the
// connection closes.
func (h *HubImpl) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		key:  clientIP(r),
		log:  h.logger,
	}
	c.session = viewer.NewSession(context.Background(), viewer.SessionOpts{
		Backend:        h.backend,
		Scheduler:      h.scheduler,
		Logger:         h.logger,
		Pool:           h.pool,
		Send:           c.enqueue,
		PageSize:       h.cfg.Gallery.PageSize,
		Debounce:       h.cfg.Gallery.Debounce,
		GlobalInterval: h.cfg.Story.GlobalInterval,
		SlideInterval:  h.cfg.Story.SlideInterval,
	})

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("Viewer connected", "remote", c.key, "active", h.Active())

	h.wg.Add(3)
	go func() {
		defer h.wg.Done()
		c.writePump()
	}()
	go func() {
		defer h.wg.Done()
		c.session.Start()
	}()
	go func() {
		defer h.wg.Done()
		c.readPump(h.limiter)
		h.remove(c)
	}()
}

// clientIP drops the port so every connection from one address shares a
// rate limit bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *HubImpl) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *HubImpl) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if !ok {
		return
	}

	c.session.Dispose()
	c.closeSend()
	h.logger.Info("Viewer disconnected", "remote", c.key, "active", h.Active())
}

// Close disconnects every viewer, waits for their pumps and startup loads
// to exit, then releases the worker pool.
func (h *HubImpl) Close() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.conn.Close()
	}
	h.wg.Wait()
	h.pool.Release()
}

type client struct {
	conn    *websocket.Conn
	session *viewer.Session
	key     string
	log     logger.Logger

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// enqueue queues a render instruction. Messages are dropped once the
// connection is gone or its buffer is full.
func (c *client) enqueue(msg viewer.Outbound) {
	b, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("Failed to marshal viewer message", "type", msg.Type, "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- b:
	default:
		c.log.Warn("Viewer send buffer full, dropping message", "remote", c.key, "type", msg.Type)
	}
}

func (c *client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *client) readPump(limiter ratelimit.Limiter) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn("Viewer connection error", "remote", c.key, "error", err)
			}
			return
		}

		if limiter != nil && !limiter.Allow(c.key) {
			c.enqueue(viewer.Outbound{Type: viewer.TypeNotice, Data: viewer.Notice{
				Code:    apperrors.CodeRateLimited,
				Message: "Slow down",
			}})
			continue
		}

		var msg viewer.Inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			c.enqueue(viewer.Outbound{Type: viewer.TypeNotice, Data: viewer.Notice{
				Code:    apperrors.CodeBadRequest,
				Message: "Invalid message format",
			}})
			continue
		}

		if err := c.session.Handle(msg); err != nil {
			c.session.Notice(err)
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
