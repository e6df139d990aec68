package events

import "time"

// Evento publicado no tópico "paris_activity" a cada transição da sessão.
type SessionChanged struct {
	EventID string    `json:"event_id"`
	From    string    `json:"from"`   // anonymous | restoring | authenticated | invalid
	To      string    `json:"to"`     // idem
	Reason  string    `json:"reason"` // restore | login | logout | invalidated
	Login   string    `json:"login,omitempty"`
	Ts      time.Time `json:"ts"`
}
