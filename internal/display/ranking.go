package display

import (
	"fmt"
	"math"

	"github.com/radieske/paris-web-client/internal/api/dto"
)

// Position é o índice 1-based do primeiro usuário com login, 0 quando ausente.
// A ordem é a do backend.
func Position(users []dto.User, login string) int {
	if login == "" {
		return 0
	}
	for i, u := range users {
		if u.Login == login {
			return i + 1
		}
	}
	return 0
}

// Trophy devolve a cor do troféu das três primeiras posições, "" nas demais
func Trophy(position int) string {
	switch position {
	case 1:
		return "#FFD700"
	case 2:
		return "#C0C0C0"
	case 3:
		return "#CD7F32"
	}
	return ""
}

// PositionLabel: "1er", "2ème", ...
func PositionLabel(position int) string {
	if position == 1 {
		return "1er"
	}
	return fmt.Sprintf("%dème", position)
}

// Tendências de pontos
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

func Trend(points int) string {
	switch {
	case points > 0:
		return TrendUp
	case points < 0:
		return TrendDown
	}
	return TrendFlat
}

// RateBand classifica um win rate em [0,1]: >0.6 success, >0.4 warning, senão error
func RateBand(rate float64) string {
	switch {
	case rate > 0.6:
		return "success"
	case rate > 0.4:
		return "warning"
	}
	return "error"
}

// AverageWinRatePercent é a média dos win rates do ranking, em %, 0 para lista vazia
func AverageWinRatePercent(users []dto.User) int {
	if len(users) == 0 {
		return 0
	}
	sum := 0.0
	for _, u := range users {
		sum += UserWinRate(u)
	}
	return int(math.Round(sum / float64(len(users)) * 100))
}

// MaxPoints devolve a maior pontuação do ranking; ok=false para lista vazia
func MaxPoints(users []dto.User) (best int, ok bool) {
	for i, u := range users {
		if i == 0 || u.Points > best {
			best = u.Points
		}
	}
	return best, len(users) > 0
}
