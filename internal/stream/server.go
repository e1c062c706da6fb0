// Package stream serves rendered frames to spectators over websocket and
// accepts a small set of validated control messages from them.
package stream

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	clientQueue   = 4
	commandQueue  = 64
	writeDeadline = 5 * time.Second
	readDeadline  = 60 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server fans published frames out to every connected client. Publish and
// the connection handlers may run concurrently; clients whose queue is full
// miss frames instead of stalling the publisher.
type Server struct {
	width, height int
	log           *log.Logger

	upgrader websocket.Upgrader
	enc      *zstd.Encoder
	schema   *jsonschema.Schema

	mu      sync.Mutex
	clients map[*client]struct{}

	commands chan Command
	dropped  atomic.Uint64
}

// NewServer returns a server for frames of width x height pixels.
func NewServer(width, height int, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("stream: zstd encoder: %w", err)
	}
	schema, err := compileControlSchema()
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}
	return &Server{
		width:  width,
		height: height,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		enc:      enc,
		schema:   schema,
		clients:  make(map[*client]struct{}),
		commands: make(chan Command, commandQueue),
	}, nil
}

// Commands yields control messages received from clients. The simulation
// loop drains it between frames.
func (s *Server) Commands() <-chan Command { return s.commands }

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Dropped returns how many frames were skipped for slow clients.
func (s *Server) Dropped() uint64 { return s.dropped.Load() }

// Publish compresses one RGBA frame and queues it for every client.
func (s *Server) Publish(rgba []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clients) == 0 {
		return
	}
	frame := s.enc.EncodeAll(rgba, nil)
	for c := range s.clients {
		select {
		case c.send <- frame:
		default:
			s.dropped.Add(1)
		}
	}
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
		if c.conn != nil {
			c.conn.Close()
		}
	}
}

func (s *Server) addClient(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
}

// Handler upgrades the request to a websocket, greets the client and then
// streams frames until either side hangs up.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Printf("stream: upgrade %s: %v", r.RemoteAddr, err)
			return
		}
		defer conn.Close()

		hello, _ := json.Marshal(Hello{Type: MessageHello, Width: s.width, Height: s.height})
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
			return
		}

		c := &client{conn: conn, send: make(chan []byte, clientQueue)}
		s.addClient(c)
		s.log.Printf("stream: client %s connected", r.RemoteAddr)
		defer s.log.Printf("stream: client %s disconnected", r.RemoteAddr)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for frame := range c.send {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
					return
				}
			}
		}()

		s.readLoop(c)
		s.removeClient(c)
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func (s *Server) readLoop(c *client) {
	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(readDeadline))
		kind, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		cmd, err := parseCommand(s.schema, msg)
		if err != nil {
			s.log.Printf("stream: rejected %s", err)
			continue
		}
		select {
		case s.commands <- cmd:
		default:
			// Drop under load; the client may resend.
		}
	}
}
