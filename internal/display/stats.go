package display

import (
	"math"

	"github.com/radieske/paris-web-client/internal/api/dto"
)

// WinRate é won/total em [0,1]; 0 quando total <= 0
func WinRate(won, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clamp01(float64(won) / float64(total))
}

// WinRatePercent é o WinRate arredondado em pontos percentuais
func WinRatePercent(won, total int) int {
	return RatePercent(WinRate(won, total))
}

// RatePercent converte um rate em [0,1] para % arredondado
func RatePercent(rate float64) int {
	return int(math.Round(clamp01(rate) * 100))
}

// UserWinRate usa win_rate do ranking quando presente, senão deriva de won/total
func UserWinRate(u dto.User) float64 {
	if u.WinRate != nil {
		return clamp01(*u.WinRate)
	}
	return WinRate(u.WonBets, u.TotalBets)
}

// Level é o nível de desempenho exibido no perfil
type Level struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// PerformanceLevel classifica um percentual de acerto
func PerformanceLevel(pct int) Level {
	switch {
	case pct >= 70:
		return Level{Name: "Expert", Color: "success", Icon: "🏆"}
	case pct >= 50:
		return Level{Name: "Bon", Color: "primary", Icon: "⭐"}
	case pct >= 30:
		return Level{Name: "Moyen", Color: "warning", Icon: "📈"}
	default:
		return Level{Name: "Débutant", Color: "error", Icon: "🎯"}
	}
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
