package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jtainer/vectorscope/internal/analyzer"
	"github.com/jtainer/vectorscope/internal/scope"
)

const (
	broadcastInterval = 100 * time.Millisecond
	maxWirePoints     = 1024
	clientSendBuffer  = 8
	writeTimeout      = 5 * time.Second
)

// Frame is one scope snapshot as sent to browser clients.
type Frame struct {
	Points   [][2]float32      `json:"points"`
	Features analyzer.Features `json:"features"`
}

// Server streams scope frames to websocket clients for remote monitoring.
// It owns its own analyzer instance so the display thread's workspace is
// never shared across goroutines.
type Server struct {
	ring     *scope.Ring
	analyzer *analyzer.Analyzer
	anMu     sync.Mutex // Analyze reuses a workspace; serialize callers
	log      *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]bool

	httpSrv   *http.Server
	done      chan struct{}
	closeOnce sync.Once
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer creates a monitor over the given ring.
func NewServer(ring *scope.Ring, an *analyzer.Analyzer, logger *log.Logger) *Server {
	return &Server{
		ring:     ring,
		analyzer: an,
		log:      logger,
		clients:  make(map[*client]bool),
		done:     make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Start binds addr and serves until Close. Returns once the listener is up.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.httpSrv = &http.Server{Handler: s.handler()}
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Printf("web monitor: %v", err)
		}
	}()
	go s.broadcastLoop()
	s.log.Printf("web monitor listening on %s", ln.Addr())
	return nil
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// Close drops all clients and shuts the listener down.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		for c := range s.clients {
			close(c.send)
			delete(s.clients, c)
		}
		s.mu.Unlock()
		if s.httpSrv != nil {
			_ = s.httpSrv.Close()
		}
	})
	return nil
}

func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.broadcastFrame()
		}
	}
}

// broadcastFrame snapshots the ring and fans the encoded frame out to every
// client. Clients that cannot keep up are dropped rather than buffered.
func (s *Server) broadcastFrame() {
	s.mu.Lock()
	idle := len(s.clients) == 0
	s.mu.Unlock()
	if idle {
		return
	}

	payload, err := json.Marshal(s.snapshotFrame())
	if err != nil {
		s.log.Printf("encode frame: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
			close(c.send)
			delete(s.clients, c)
		}
	}
}

// snapshotFrame builds a wire frame, decimating points so the payload stays
// bounded regardless of ring capacity.
func (s *Server) snapshotFrame() Frame {
	points := s.ring.Snapshot()
	frame := Frame{Features: s.analyze(points)}

	stride := (len(points) + maxWirePoints - 1) / maxWirePoints
	if stride < 1 {
		stride = 1
	}
	frame.Points = make([][2]float32, 0, len(points)/stride+1)
	for i := 0; i < len(points); i += stride {
		frame.Points = append(frame.Points, [2]float32{points[i].X, points[i].Y})
	}
	return frame
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade: %v", err)
		return
	}
	c := &client{
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}
	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()

	go s.writePump(c)
	go s.readPump(c)
}

func (s *Server) writePump(c *client) {
	defer c.conn.Close()
	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.drop(c)
			return
		}
	}
}

// readPump discards client messages; its job is noticing disconnects.
func (s *Server) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			s.drop(c)
			return
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	if s.clients[c] {
		close(c.send)
		delete(s.clients, c)
	}
	s.mu.Unlock()
}

func (s *Server) analyze(points []scope.Point) analyzer.Features {
	s.anMu.Lock()
	defer s.anMu.Unlock()
	return s.analyzer.Analyze(points)
}

func (s *Server) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	points := s.ring.Snapshot()
	status := struct {
		Features analyzer.Features `json:"features"`
		Capacity int               `json:"capacity"`
		Clients  int               `json:"clients"`
	}{
		Features: s.analyze(points),
		Capacity: s.ring.Capacity(),
		Clients:  s.clientCount(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.log.Printf("encode status: %v", err)
	}
}
