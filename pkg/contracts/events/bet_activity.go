package events

// Tipos de atividade sobre apostas emitidos pelo cliente.
const (
	KindBetCreated  = "bet_created"
	KindBetVoted    = "bet_voted"
	KindBetResolved = "bet_resolved"
)

// BetActivity registra uma ação aceita pelo backend (criação, voto ou resolução).
type BetActivity struct {
	EventID     string `json:"event_id"`
	Kind        string `json:"kind"`
	BetID       string `json:"bet_id"`
	Login       string `json:"login"`
	OptionIndex *int   `json:"option_index,omitempty"` // voto ou opção vencedora
	TsUnixMs    int64  `json:"ts_unix_ms"`
}
