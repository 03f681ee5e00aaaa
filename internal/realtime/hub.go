package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sendBufferSize = 16
	writeTimeout   = 10 * time.Second
	pingInterval   = 30 * time.Second
	readDeadline   = 60 * time.Second
)

// client envuelve una conexión websocket con su buffer de salida.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub reparte los mensajes entregados de una sesión hacia sus conexiones.
// Con Redis configurado el fan-out pasa por pub/sub, así el servicio queda
// sin estado compartido entre instancias; sin Redis reparte en proceso.
type Hub struct {
	logger *zap.Logger
	rdb    *redis.Client

	mu       sync.RWMutex
	sessions map[string]map[*client]bool
	subs     map[string]*redis.PubSub
}

func NewHub(logger *zap.Logger, rdb *redis.Client) *Hub {
	return &Hub{
		logger:   logger,
		rdb:      rdb,
		sessions: make(map[string]map[*client]bool),
		subs:     make(map[string]*redis.PubSub),
	}
}

func channelFor(sessionID string) string {
	return "chat:" + sessionID
}

// Publish difunde un payload a todos los suscriptores de la sesión.
func (h *Hub) Publish(ctx context.Context, sessionID string, payload []byte) error {
	if h.rdb != nil {
		return h.rdb.Publish(ctx, channelFor(sessionID), payload).Err()
	}
	h.fanOut(sessionID, payload)
	return nil
}

// Attach registra la conexión en la sesión y bloquea hasta que se cierre.
func (h *Hub) Attach(sessionID string, conn *websocket.Conn) {
	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.register(sessionID, c)
	go h.clientWriter(c)
	h.clientReader(sessionID, c)
}

func (h *Hub) register(sessionID string, c *client) {
	h.mu.Lock()
	peers, ok := h.sessions[sessionID]
	if !ok {
		peers = make(map[*client]bool)
		h.sessions[sessionID] = peers
	}
	peers[c] = true

	var sub *redis.PubSub
	if h.rdb != nil && h.subs[sessionID] == nil {
		sub = h.rdb.Subscribe(context.Background(), channelFor(sessionID))
		h.subs[sessionID] = sub
	}
	h.mu.Unlock()

	if sub != nil {
		go h.consume(sessionID, sub)
	}
}

func (h *Hub) unregister(sessionID string, c *client) {
	h.mu.Lock()
	var sub *redis.PubSub
	if peers, ok := h.sessions[sessionID]; ok {
		delete(peers, c)
		if len(peers) == 0 {
			delete(h.sessions, sessionID)
			sub = h.subs[sessionID]
			delete(h.subs, sessionID)
		}
	}
	h.mu.Unlock()

	close(c.send)
	if sub != nil {
		_ = sub.Close()
	}
}

// consume reenvía lo publicado en Redis hacia las conexiones locales.
// Termina solo cuando la suscripción se cierra en unregister.
func (h *Hub) consume(sessionID string, sub *redis.PubSub) {
	for msg := range sub.Channel() {
		h.fanOut(sessionID, []byte(msg.Payload))
	}
}

func (h *Hub) fanOut(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.sessions[sessionID] {
		select {
		case c.send <- payload:
		default:
			// Cliente lento: se descarta el mensaje, el historial queda en la API.
		}
	}
}

func (h *Hub) clientReader(sessionID string, c *client) {
	defer func() {
		h.unregister(sessionID, c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(1 << 16)
	_ = c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	// El stream es de sólo lectura para el cliente; los envíos entran por la
	// API REST. El loop existe para detectar el cierre.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) clientWriter(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
