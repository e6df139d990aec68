package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/paris-web-client/internal/session"
)

// Limites de escrita por conexão
const (
	writeWait = 5 * time.Second
	sendQueue = 16
)

// conn tem um único escritor (writeLoop) alimentado por send
type conn struct {
	ws   *websocket.Conn
	send chan []byte
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{ws: ws, send: make(chan []byte, sendQueue)}
}

// writeLoop grava as mensagens com deadline; em erro fecha o socket para encerrar a leitura
func (c *conn) writeLoop() {
	for b := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = c.ws.Close()
			return
		}
	}
}

// enqueue nunca bloqueia; um cliente que não lê e enche a fila é desconectado
func (c *conn) enqueue(b []byte) bool {
	select {
	case c.send <- b:
		return true
	default:
		_ = c.ws.Close()
		return false
	}
}

// Hub transmite as transições de sessão para as abas conectadas
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger
	snapshot func() session.Session

	mu    sync.RWMutex
	conns map[*conn]struct{}

	OnClients func(n int) // métricas
}

// NewHub cria o hub com a política de origem informada
func NewHub(allowOrigin func(r *http.Request) bool, snapshot func() session.Session, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		log:      log,
		snapshot: snapshot,
		conns:    make(map[*conn]struct{}),
	}
}

// HandleWS envia o estado atual e mantém a conexão até o cliente sair; responde a pings
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	c := newConn(wsConn)
	go c.writeLoop()
	defer wsConn.Close()

	if h.snapshot != nil {
		b, _ := json.Marshal(newSnapshot(h.snapshot()))
		c.enqueue(b)
	}
	h.add(c)
	defer h.remove(c)

	pong, _ := json.Marshal(map[string]string{"type": "pong"})
	for {
		var msg ClientMsg
		if err := wsConn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == "ping" {
			c.enqueue(pong)
		}
	}
}

// Broadcast envia v para todas as conexões abertas
func (h *Hub) Broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Error("websocket payload", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns {
		if !c.enqueue(b) {
			h.log.Debug("websocket client too slow, disconnecting")
		}
	}
}

// Clients devolve o número de conexões abertas
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// SessionListener publica cada transição como SessionEvent; registre com session.Store.Subscribe
func (h *Hub) SessionListener() func(session.Change) {
	return func(c session.Change) {
		h.Broadcast(SessionEvent{
			Type:   "session",
			From:   string(c.From),
			To:     string(c.To),
			Reason: c.Reason,
			Login:  c.Login,
			At:     c.At,
		})
	}
}

func (h *Hub) add(c *conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()
	h.notify(n)
}

// remove tira a conexão do hub e fecha send; Broadcast só enfileira sob h.mu
func (h *Hub) remove(c *conn) {
	h.mu.Lock()
	delete(h.conns, c)
	close(c.send)
	n := len(h.conns)
	h.mu.Unlock()
	h.notify(n)
}

func (h *Hub) notify(n int) {
	if h.OnClients != nil {
		h.OnClients(n)
	}
}

func newSnapshot(s session.Session) Snapshot {
	out := Snapshot{Type: "snapshot", State: string(s.State), Authenticated: s.Token != ""}
	if s.User != nil {
		out.Login = s.User.Login
	}
	return out
}
