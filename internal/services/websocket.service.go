package services

import (
	"sync"
	"time"

	"netwatch/internal/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket message types
const (
	MessageSeries = "series"
	MessageStatus = "status"
	MessagePong   = "pong"
)

// WebSocketMessage represents a message sent over WebSocket
type WebSocketMessage struct {
	Type      string      `json:"type"` // "series", "status", "ping", "pong", "unsubscribe"
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// ClientConnection represents a connected WebSocket client
type ClientConnection struct {
	ID    string
	Conn  *websocket.Conn
	Send  chan WebSocketMessage
	Close chan bool
}

type directMessage struct {
	clientID string
	msg      WebSocketMessage
}

// WebSocketHub fans monitor output out to every connected client
type WebSocketHub struct {
	clients    map[string]*ClientConnection
	broadcast  chan WebSocketMessage
	register   chan *ClientConnection
	unregister chan string
	direct     chan directMessage
	mu         sync.RWMutex
	done       chan struct{}
	stopOnce   sync.Once
	latest     *LatestCache
	log        *zap.SugaredLogger
}

// NewWebSocketHub creates a hub and starts its event loop. New clients are
// greeted with the latest cached frame and report when latest is non-nil.
func NewWebSocketHub(latest *LatestCache, log *zap.SugaredLogger) *WebSocketHub {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	hub := &WebSocketHub{
		clients:    make(map[string]*ClientConnection),
		broadcast:  make(chan WebSocketMessage, 256),
		register:   make(chan *ClientConnection),
		unregister: make(chan string),
		direct:     make(chan directMessage, 64),
		done:       make(chan struct{}),
		latest:     latest,
		log:        log,
	}

	go hub.run()

	return hub
}

// run manages the hub's event loop
func (h *WebSocketHub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for id, client := range h.clients {
				delete(h.clients, id)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if old, exists := h.clients[client.ID]; exists {
				close(old.Send)
			}
			h.clients[client.ID] = client
			total := len(h.clients)
			h.mu.Unlock()
			h.greet(client)
			h.log.Infof("[WS] Client connected: %s (total: %d)", client.ID, total)

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, exists := h.clients[clientID]; exists {
				delete(h.clients, clientID)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Infof("[WS] Client disconnected: %s (total: %d)", clientID, total)

		case d := <-h.direct:
			h.mu.RLock()
			if client, exists := h.clients[d.clientID]; exists {
				select {
				case client.Send <- d.msg:
				default:
				}
			}
			h.mu.RUnlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- msg:
				default:
					// Client's send channel is full, skip this message
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *WebSocketHub) greet(client *ClientConnection) {
	if h.latest == nil {
		return
	}
	now := time.Now()
	msgs := []WebSocketMessage{{Type: MessageSeries, Timestamp: now, Data: h.latest.Frame()}}
	if report, ok := h.latest.Report(); ok {
		msgs = append(msgs, WebSocketMessage{Type: MessageStatus, Timestamp: now, Data: report})
	}
	for _, msg := range msgs {
		select {
		case client.Send <- msg:
		default:
		}
	}
}

// Register adds a new client to the hub
func (h *WebSocketHub) Register(client *ClientConnection) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

// Unregister removes a client from the hub
func (h *WebSocketHub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.done:
	}
}

// SendTo queues a message for one client. Only the hub goroutine writes
// to or closes a client's Send channel, so replies go through here.
func (h *WebSocketHub) SendTo(clientID string, msg WebSocketMessage) {
	select {
	case h.direct <- directMessage{clientID: clientID, msg: msg}:
	case <-h.done:
	default:
		h.log.Warnf("[WS] direct queue full, dropping %s message for %s", msg.Type, clientID)
	}
}

// Broadcast queues a message for all clients, dropping it if the queue is full
func (h *WebSocketHub) Broadcast(msg WebSocketMessage) {
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warnf("[WS] broadcast queue full, dropping %s message", msg.Type)
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RenderChart pushes the series to every client. The frame is already a
// copy, so clients never observe a partially updated series.
func (h *WebSocketHub) RenderChart(frame models.ChartFrame) error {
	h.Broadcast(WebSocketMessage{Type: MessageSeries, Timestamp: time.Now(), Data: frame})
	return nil
}

func (h *WebSocketHub) RenderStatus(report models.StatusReport) error {
	h.Broadcast(WebSocketMessage{Type: MessageStatus, Timestamp: report.Timestamp, Data: report})
	return nil
}

// Stop closes every client and ends the event loop
func (h *WebSocketHub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}
