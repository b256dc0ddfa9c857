package controllers

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"netwatch/internal/middleware"
	"netwatch/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StreamController upgrades clients onto the live series stream
type StreamController struct {
	Hub            *services.WebSocketHub
	AllowedOrigins []string
	Log            *zap.SugaredLogger

	seq atomic.Uint64
}

func (sc *StreamController) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Non-browser clients send no Origin
			if origin == "" {
				return true
			}
			return middleware.OriginAllowed(origin, sc.AllowedOrigins)
		},
	}
}

// HandleWebSocket handles incoming WebSocket connections
func (sc *StreamController) HandleWebSocket(c *gin.Context) {
	ws, err := sc.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sc.Log.Warnf("[WS] Upgrade error: %v", err)
		return
	}

	client := &services.ClientConnection{
		ID:    fmt.Sprintf("%s-%d", c.ClientIP(), sc.seq.Add(1)),
		Conn:  ws,
		Send:  make(chan services.WebSocketMessage, 256),
		Close: make(chan bool),
	}

	sc.Hub.Register(client)

	go sc.readPump(client)
	go sc.writePump(client)
}

// readPump reads messages from the WebSocket client
func (sc *StreamController) readPump(client *services.ClientConnection) {
	defer func() {
		close(client.Close)
		sc.Hub.Unregister(client.ID)
		client.Conn.Close()
	}()

	for {
		var msg services.WebSocketMessage
		err := client.Conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sc.Log.Warnf("[WS] WebSocket error: %v", err)
			}
			return
		}

		switch msg.Type {
		case "ping":
			sc.Hub.SendTo(client.ID, services.WebSocketMessage{Type: services.MessagePong, Timestamp: time.Now()})

		case "subscribe":
			// Clients are subscribed on connect
			sc.Log.Debugf("[WS] Client %s subscribed to updates", client.ID)

		case "unsubscribe":
			return

		default:
			sc.Log.Debugf("[WS] Unknown message type: %s", msg.Type)
		}
	}
}

// writePump writes messages to the WebSocket client
func (sc *StreamController) writePump(client *services.ClientConnection) {
	defer client.Conn.Close()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteJSON(msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					sc.Log.Warnf("[WS] Write error: %v", err)
				}
				return
			}

		case <-client.Close:
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
