package display

import (
	"strings"
	"time"

	"github.com/radieske/paris-web-client/internal/api/dto"
)

// FilterAll desliga um filtro de status ou ligue
const FilterAll = "all"

// Filter são os critérios da lista de apostas
type Filter struct {
	Search string `json:"search"`
	Status string `json:"status"` // all | active | resolved
	League string `json:"league"` // all | <ligue>
}

// FilterBets aplica busca (título ou descrição, sem caixa), status e ligue.
// Campo vazio equivale a "all". A ordem original é preservada.
func FilterBets(bets []dto.Bet, f Filter) []dto.Bet {
	q := strings.ToLower(f.Search)
	out := make([]dto.Bet, 0, len(bets))
	for _, b := range bets {
		if q != "" &&
			!strings.Contains(strings.ToLower(b.Title), q) &&
			!strings.Contains(strings.ToLower(b.Description), q) {
			continue
		}
		if !wildcard(f.Status) && b.Status != f.Status {
			continue
		}
		if !wildcard(f.League) && b.League != f.League {
			continue
		}
		out = append(out, b)
	}
	return out
}

func wildcard(v string) bool { return v == "" || v == FilterAll }

// Leagues devolve as ligues distintas na ordem em que aparecem
func Leagues(bets []dto.Bet) []string {
	seen := map[string]bool{}
	var out []string
	for _, b := range bets {
		if !seen[b.League] {
			seen[b.League] = true
			out = append(out, b.League)
		}
	}
	return out
}

// CountStatus conta apostas ativas e resolvidas
func CountStatus(bets []dto.Bet) (active, resolved int) {
	for _, b := range bets {
		switch b.Status {
		case dto.StatusActive:
			active++
		case dto.StatusResolved:
			resolved++
		}
	}
	return active, resolved
}

// CreatedBy filtra as apostas criadas por login
func CreatedBy(bets []dto.Bet, login string) []dto.Bet {
	var out []dto.Bet
	for _, b := range bets {
		if IsCreator(b, login) {
			out = append(out, b)
		}
	}
	return out
}

// First devolve no máximo n apostas do início da lista
func First(bets []dto.Bet, n int) []dto.Bet {
	if len(bets) > n {
		return bets[:n]
	}
	return bets
}

// StatusLabel traduz o status da aposta
func StatusLabel(status string) string {
	if status == dto.StatusActive {
		return "En cours"
	}
	return "Terminé"
}

// ActionLabel é o texto do botão da aposta na lista
func ActionLabel(status string) string {
	if status == dto.StatusActive {
		return "Participer"
	}
	return "Voir les résultats"
}

// Truncate corta s em n runas, acrescentando "..."
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// FormatDate formata no padrão fr-FR (dd/mm/aaaa [hh:mm]); zero vira ""
func FormatDate(t time.Time, withTime bool) string {
	if t.IsZero() {
		return ""
	}
	if withTime {
		return t.Local().Format("02/01/2006 15:04")
	}
	return t.Local().Format("02/01/2006")
}
