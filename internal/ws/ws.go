// internal/ws/ws.go
//
// Websocket transport.
// Responsibilities:
//   - Upgrade HTTP requests and give each socket a connection id (uuid).
//   - Read pump: rate-limit, decode JSON envelopes, hand them to the hub and
//     deliver the returned effects.
//   - Write pump: drain the client's outbox and keep the socket alive with pings.
//   - Tell the hub when a socket goes away.
//
// Notes:
//   - Delivery never blocks on a slow client; a full outbox drops the frame.
//   - Server implements hub.Sink so timer-driven effects use the same path.

package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/guessword/go-server/internal/apperr"
	"github.com/guessword/go-server/internal/hub"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 15 * time.Second
	maxMessageSize = 4096
	outboxSize     = 256
)

// Handler is the part of the hub the transport drives.
type Handler interface {
	Handle(connID string, env hub.Envelope) []hub.Effect
	Disconnect(connID string) []hub.Effect
	ErrorMessage(msgType string, err error) hub.Message
}

type Config struct {
	Rate   float64 // inbound messages per second per connection
	Burst  int
	Origin string // allowed Origin header; "*" or empty allows any
}

type Server struct {
	hub      Handler
	cfg      Config
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client
}

type Option func(*Server)

func WithLogger(l zerolog.Logger) Option { return func(s *Server) { s.log = l } }

func NewServer(h Handler, cfg Config, opts ...Option) *Server {
	if cfg.Rate <= 0 {
		cfg.Rate = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	s := &Server{
		hub:     h,
		cfg:     cfg,
		log:     log.Logger,
		clients: make(map[string]*client),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || s.cfg.Origin == "" || s.cfg.Origin == "*" || origin == s.cfg.Origin
}

// ServeHTTP upgrades the request and runs the client until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade")
		return
	}
	c := &client{
		id:      uuid.NewString(),
		conn:    conn,
		outbox:  make(chan []byte, outboxSize),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(rate.Limit(s.cfg.Rate), s.cfg.Burst),
	}
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()
	s.log.Debug().Str("conn", c.id).Str("remote", r.RemoteAddr).Msg("client connected")

	go s.writePump(c)
	go s.readPump(c)
}

// Deliver sends each effect to its connections. Unknown ids are skipped.
func (s *Server) Deliver(effects []hub.Effect) {
	for _, e := range effects {
		data, err := json.Marshal(e.Message)
		if err != nil {
			s.log.Error().Err(err).Str("event", e.Message.Type).Msg("encode message")
			continue
		}
		s.mu.RLock()
		for _, id := range e.ConnIDs {
			if c, ok := s.clients[id]; ok {
				if !c.send(data) {
					s.log.Warn().Str("conn", id).Str("event", e.Message.Type).Msg("outbox full, dropping message")
				}
			}
		}
		s.mu.RUnlock()
	}
}

// Len is the number of open connections.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) readPump(c *client) {
	defer s.drop(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug().Err(err).Str("conn", c.id).Msg("read")
			}
			return
		}

		var env hub.Envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Type == "" {
			s.reply(c, "", apperr.ErrBadRequest)
			continue
		}
		if !c.limiter.Allow() {
			s.reply(c, env.Type, apperr.ErrRateLimited)
			continue
		}
		s.Deliver(s.hub.Handle(c.id, env))
	}
}

func (s *Server) reply(c *client, msgType string, err error) {
	s.Deliver([]hub.Effect{{ConnIDs: []string{c.id}, Message: s.hub.ErrorMessage(msgType, err)}})
}

func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data := <-c.outbox:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// drop unregisters c and reports the disconnect to the hub.
func (s *Server) drop(c *client) {
	s.mu.Lock()
	if s.clients[c.id] == c {
		delete(s.clients, c.id)
	}
	s.mu.Unlock()
	c.close()

	s.log.Debug().Str("conn", c.id).Msg("client disconnected")
	s.Deliver(s.hub.Disconnect(c.id))
}

type client struct {
	id      string
	conn    *websocket.Conn
	outbox  chan []byte
	done    chan struct{}
	once    sync.Once
	limiter *rate.Limiter
}

// send queues data without blocking. It reports false when the frame was
// dropped.
func (c *client) send(data []byte) bool {
	select {
	case <-c.done:
		return true
	default:
	}
	select {
	case c.outbox <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}
