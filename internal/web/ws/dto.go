package ws

import "time"

// ClientMsg é uma mensagem recebida do cliente WebSocket
type ClientMsg struct {
	Type string `json:"type"` // ping
}

// SessionEvent é enviado a cada transição da sessão
type SessionEvent struct {
	Type   string    `json:"type"` // "session"
	From   string    `json:"from"`
	To     string    `json:"to"`
	Reason string    `json:"reason"`
	Login  string    `json:"login,omitempty"`
	At     time.Time `json:"at"`
}

// Snapshot é a primeira mensagem de cada conexão
type Snapshot struct {
	Type          string `json:"type"` // "snapshot"
	State         string `json:"state"`
	Authenticated bool   `json:"authenticated"`
	Login         string `json:"login,omitempty"`
}
