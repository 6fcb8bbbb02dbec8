package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pausenhof-backend/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler feeds connected clients market ticks and crash
// results. It implements engine.Broadcaster.
type WebSocketHandler struct {
	engine *engine.Engine
	hub    *wsHub
}

type wsHub struct {
	clients    map[string]*websocket.Conn
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan *wsMessage
}

type wsClient struct {
	Account string
	Conn    *websocket.Conn
}

type wsMessage struct {
	Type    string      `json:"type"`
	Account string      `json:"account,omitempty"`
	Data    interface{} `json:"data"`
}

func NewWebSocketHandler(eng *engine.Engine) *WebSocketHandler {
	hub := &wsHub{
		clients:    make(map[string]*websocket.Conn),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan *wsMessage, 100),
	}
	go hub.run()

	return &WebSocketHandler{engine: eng, hub: hub}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	account := accountName(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &wsClient{Account: account, Conn: conn}
	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	h.sendMarket(client)

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if msg.Type == "PING" {
			client.Conn.WriteJSON(wsMessage{Type: "PONG", Data: gin.H{"timestamp": time.Now().Unix()}})
		}
	}
}

func (h *WebSocketHandler) sendMarket(client *wsClient) {
	client.Conn.WriteJSON(wsMessage{Type: "MARKET", Data: h.engine.TickMarket()})
}

func (hub *wsHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.Account] = client.Conn

		case client := <-hub.unregister:
			delete(hub.clients, client.Account)

		case message := <-hub.broadcast:
			if message.Account != "" {
				if conn, ok := hub.clients[message.Account]; ok {
					conn.WriteJSON(message)
				}
				continue
			}
			for _, conn := range hub.clients {
				conn.WriteJSON(message)
			}
		}
	}
}

// BroadcastMarket pushes fresh prices to every connected client.
func (h *WebSocketHandler) BroadcastMarket(instruments []engine.Instrument) {
	h.hub.broadcast <- &wsMessage{Type: "MARKET", Data: instruments}
}

// BroadcastCrashResult tells the owning client where its rocket crashed.
func (h *WebSocketHandler) BroadcastCrashResult(account string, crashPoint float64) {
	h.hub.broadcast <- &wsMessage{
		Type:    "CRASH_RESULT",
		Account: account,
		Data:    gin.H{"crash_point": crashPoint, "timestamp": time.Now().Unix()},
	}
}
