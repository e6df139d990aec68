package display

import "github.com/radieske/paris-web-client/internal/api/dto"

// Badge é uma conquista exibida no perfil
type Badge struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Badges calcula as conquistas do usuário.
// createdBets é o número de apostas criadas por ele; rank é 1-based (0 = fora do ranking).
func Badges(u dto.User, createdBets, rank int) []Badge {
	var out []Badge
	if u.TotalBets >= 10 {
		out = append(out, Badge{"Parieur actif", "🎯", "10+ paris joués"})
	}
	if u.WonBets >= 5 {
		out = append(out, Badge{"Gagnant", "🏅", "5+ paris gagnés"})
	}
	if WinRatePercent(u.WonBets, u.TotalBets) >= 70 {
		out = append(out, Badge{"Expert", "🏆", "Taux de réussite ≥ 70%"})
	}
	if createdBets >= 3 {
		out = append(out, Badge{"Créateur", "✨", "3+ paris créés"})
	}
	if u.Points >= 50 {
		out = append(out, Badge{"Champion", "👑", "50+ points"})
	}
	if rank >= 1 && rank <= 3 {
		out = append(out, Badge{"Podium", "🥇", "Top 3 du classement"})
	}
	return out
}
