package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/corregedoria/procedimentos-api/api"
	"github.com/corregedoria/procedimentos-api/config"
)

const writeWait = 5 * time.Second

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Evento is the frame pushed to connected clients
type Evento struct {
	Evento string      `json:"evento"`
	Dados  interface{} `json:"dados"`
}

// Hub keeps the connected websocket clients and broadcasts events to them
type Hub struct {
	Secret []byte

	mu      sync.Mutex
	clients map[*websocket.Conn]string
}

// NewHub creates a hub validating connection tokens with secret
func NewHub(secret []byte) *Hub {
	return &Hub{Secret: secret, clients: make(map[*websocket.Conn]string)}
}

// ServeWS upgrades the connection of an authenticated user. Browsers cannot
// set headers on websocket requests, so the token may come as ?token=.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	claims, err := api.ParseToken(h.Secret, token)
	if err != nil {
		config.ErrorStatus("não autorizado", http.StatusUnauthorized, w, nil)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade error", "error", err)
		return
	}
	h.register(conn, claims.Subject)

	// reads only to notice the disconnect
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.unregister(conn)
			return
		}
	}
}

func (h *Hub) register(conn *websocket.Conn, usuario string) {
	h.mu.Lock()
	h.clients[conn] = usuario
	total := len(h.clients)
	h.mu.Unlock()
	zap.S().Infow("websocket conectado", "usuario", usuario, "clientes", total)
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	usuario, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
		zap.S().Infow("websocket desconectado", "usuario", usuario)
	}
}

// Clientes returns the number of connected clients
func (h *Hub) Clientes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish broadcasts an event to every connected client, dropping the ones
// that fail to receive it
func (h *Hub) Publish(evento string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, usuario := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(Evento{Evento: evento, Dados: payload}); err != nil {
			zap.S().Warnw("erro ao enviar evento", "evento", evento, "usuario", usuario, "error", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
		conn.Close()
		delete(h.clients, conn)
	}
}
