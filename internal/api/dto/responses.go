package dto

import "encoding/json"

// Status possíveis de uma aposta
const (
	StatusActive   = "active"
	StatusResolved = "resolved"
)

// LoginResponse traz o token opaco emitido pelo backend
type LoginResponse struct {
	Token string `json:"token"`
}

// User é o perfil devolvido por /users/me e, com win_rate, por /ranking
type User struct {
	Login     string   `json:"login"`
	Points    int      `json:"points"` // pode ser negativo
	TotalBets int      `json:"total_bets"`
	WonBets   int      `json:"won_bets"`
	LostBets  int      `json:"lost_bets"`
	WinRate   *float64 `json:"win_rate,omitempty"` // só no ranking, em [0,1]
}

// Vote é um voto registrado numa aposta
type Vote struct {
	User        string `json:"user"`
	OptionIndex int    `json:"option_index"`
}

// Bet cobre as duas formas do backend: resumo (GET /bets/) e detalhe (GET /bets/{id})
type Bet struct {
	ID             ID          `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	League         string      `json:"league"`
	Creator        string      `json:"creator"`
	Status         string      `json:"status"` // active | resolved
	Options        []string    `json:"options"`
	CreatedAt      Timestamp   `json:"created_at"`
	TotalVotes     int         `json:"total_votes"`               // resumo
	VoteCounts     map[int]int `json:"vote_counts,omitempty"`     // detalhe: índice da opção -> votos
	Votes          []Vote      `json:"votes,omitempty"`           // detalhe
	ResolvedOption *int        `json:"resolved_option,omitempty"` // presente sse resolved
}

// CreateBetResponse traz o id da aposta criada
type CreateBetResponse struct {
	BetID ID `json:"bet_id"`
}

// RankingResponse é a lista já ordenada pelo backend
type RankingResponse struct {
	Users []User `json:"users"`
}

// Ack representa as confirmações genéricas (register, logout, vote, resolve).
// O corpo bruto fica disponível porque o formato não é contratual.
type Ack struct {
	Message string
	Raw     json.RawMessage
}

func (a *Ack) UnmarshalJSON(b []byte) error {
	a.Raw = append(a.Raw[:0], b...)
	var obj struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		a.Message = obj.Message
		if a.Message == "" {
			a.Message = obj.Detail
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		a.Message = s
	}
	return nil
}
