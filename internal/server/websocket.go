package server

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	openinghours "github.com/Xevion/go-openinghours"
	"github.com/Xevion/go-openinghours/internal"
	"github.com/Xevion/go-openinghours/internal/connect"
)

// client is a websocket subscriber. An empty venue filter receives every
// transition.
type client struct {
	conn *connect.Conn

	mu     sync.Mutex
	venues []string
}

func (c *client) subscribed(venue string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.venues) == 0 || slices.Contains(c.venues, venue)
}

type helloMessage struct {
	connect.BaseMessage
	ClientId string   `json:"client_id"`
	Venues   []string `json:"venues"`
}

type resultMessage struct {
	connect.BaseMessage
	Error string `json:"error,omitempty"`
}

type subscribeMessage struct {
	connect.BaseMessage
	Venues []string `json:"venues"`
}

type transitionMessage struct {
	connect.BaseMessage
	Venue string    `json:"venue"`
	Open  bool      `json:"open"`
	At    time.Time `json:"at"`
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: connect.NewConn(ws)}
	s.mu.Lock()
	s.clients[c.conn.Id] = c
	s.mu.Unlock()
	slog.Info("WebSocket client connected", "client", c.conn.Id, "remote", ws.RemoteAddr().String())

	defer func() {
		s.mu.Lock()
		delete(s.clients, c.conn.Id)
		s.mu.Unlock()
		_ = ws.Close()
		slog.Info("WebSocket client disconnected", "client", c.conn.Id)
	}()

	err = c.conn.WriteMessage(helloMessage{
		BaseMessage: connect.BaseMessage{Type: "hello", Id: internal.NextId(), Success: true},
		ClientId:    c.conn.Id,
		Venues:      s.names,
	})
	if err != nil {
		return
	}

	messages := make(chan connect.ChannelMessage, 16)
	go connect.ListenWebsocket(ws, messages)

	for msg := range messages {
		s.handleClientMessage(c, msg)
	}
}

func (s *Server) handleClientMessage(c *client, msg connect.ChannelMessage) {
	result := resultMessage{
		BaseMessage: connect.BaseMessage{Type: "result", Id: msg.Id, Success: true},
	}

	switch msg.Type {
	case "ping":
		result.Type = "pong"
	case "subscribe":
		sub, err := connect.Decode[subscribeMessage](msg.Raw)
		if err != nil {
			result.Success, result.Error = false, err.Error()
			break
		}
		for _, venue := range sub.Venues {
			if _, ok := s.venues[venue]; !ok {
				result.Success, result.Error = false, "unknown venue "+venue
			}
		}
		if result.Success {
			c.mu.Lock()
			c.venues = sub.Venues
			c.mu.Unlock()
		}
	default:
		result.Success, result.Error = false, "unknown message type "+msg.Type
	}

	if err := c.conn.WriteMessage(result); err != nil {
		slog.Warn("Failed to answer websocket client", "client", c.conn.Id, "error", err)
	}
}

// Broadcast is a TransitionCallback: it updates the open gauge and sends the
// transition to every subscribed websocket client.
func (s *Server) Broadcast(t openinghours.Transition) {
	s.setOpen(t.Venue, t.Open)

	msg := transitionMessage{
		BaseMessage: connect.BaseMessage{Type: "transition", Id: t.Id, Success: true},
		Venue:       t.Venue,
		Open:        t.Open,
		At:          t.At,
	}

	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if !c.subscribed(t.Venue) {
			continue
		}
		if err := c.conn.WriteMessage(msg); err != nil {
			slog.Warn("Failed to send transition", "client", c.conn.Id, "error", err)
		}
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		_ = c.conn.Close()
	}
}
