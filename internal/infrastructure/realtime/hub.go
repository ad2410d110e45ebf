package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// ConnectionObserver acompanha conexões abertas
type ConnectionObserver interface {
	ConnectionOpened()
	ConnectionClosed()
}

// Event é a mensagem enviada pelo websocket
type Event struct {
	Type string  `json:"type"`
	Data Payload `json:"data"`
}

// Payload é a projeção de uma notificação
type Payload struct {
	ID        string          `json:"id"`
	Tipo      string          `json:"tipo"`
	Titulo    string          `json:"titulo"`
	Mensagem  string          `json:"mensagem"`
	Lida      bool            `json:"lida"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub mantém as conexões websocket por usuário e entrega notificações
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
	logger   ports.Logger
	observer ConnectionObserver
}

var _ ports.NotificationPublisher = (*Hub)(nil)

// NewHub cria um Hub. allowedOrigins vazio aceita qualquer origem.
func NewHub(logger ports.Logger, observer ConnectionObserver, allowedOrigins []string) *Hub {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(origins) == 0 || origin == "" {
					return true
				}
				_, ok := origins[origin]
				if !ok {
					_, ok = origins["*"]
				}
				return ok
			},
		},
		logger:   logger.With("component", "realtime_hub"),
		observer: observer,
	}
}

// Serve promove a requisição para websocket e registra a conexão de userID
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{userID: userID, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)

	go h.writePump(c)
	go h.readPump(c)
	return nil
}

// Publish entrega a notificação para as conexões abertas do destinatário.
// Clientes lentos com buffer cheio são desconectados.
func (h *Hub) Publish(n *entities.Notification) {
	payload := Payload{
		ID:        n.ID,
		Tipo:      string(n.Type),
		Titulo:    n.Title,
		Mensagem:  n.Message,
		Lida:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if n.Metadata != "" && json.Valid([]byte(n.Metadata)) {
		payload.Metadata = json.RawMessage(n.Metadata)
	}

	data, err := json.Marshal(Event{Type: "notification", Data: payload})
	if err != nil {
		h.logger.Error("failed to encode notification", "error", err)
		return
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.clients[n.UserID] {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow websocket client", "user_id", c.userID)
		h.unregister(c)
	}
}

// Connections retorna quantas conexões userID tem abertas
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Close encerra todas as conexões
func (h *Hub) Close() {
	h.mu.RLock()
	var all []*client
	for _, set := range h.clients {
		for c := range set {
			all = append(all, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range all {
		h.unregister(c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}

	if h.observer != nil {
		h.observer.ConnectionOpened()
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}

	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)

	if h.observer != nil {
		h.observer.ConnectionClosed()
	}
}

// readPump só existe para processar pongs e detectar desconexão
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
