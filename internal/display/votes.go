// Package display reúne os cálculos derivados exibidos nas telas.
// Todas as funções são puras sobre dados já buscados no backend.
package display

import (
	"math"

	"github.com/radieske/paris-web-client/internal/api/dto"
)

// TotalVotes soma todas as entradas de vote_counts
func TotalVotes(counts map[int]int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// VotePercent é round(100 * counts[i] / total), ou 0 quando não há votos
func VotePercent(counts map[int]int, i int) int {
	total := TotalVotes(counts)
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(counts[i]) / float64(total) * 100))
}

// VotePercentages devolve o percentual de cada uma das n opções
func VotePercentages(counts map[int]int, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = VotePercent(counts, i)
	}
	return out
}

// HasVoted indica se login aparece na lista de votos
func HasVoted(b dto.Bet, login string) bool {
	return UserVote(b, login) != nil
}

// UserVote devolve o voto de login, ou nil
func UserVote(b dto.Bet, login string) *dto.Vote {
	if login == "" {
		return nil
	}
	for i := range b.Votes {
		if b.Votes[i].User == login {
			v := b.Votes[i]
			return &v
		}
	}
	return nil
}

func IsCreator(b dto.Bet, login string) bool {
	return login != "" && b.Creator == login
}

func IsActive(b dto.Bet) bool { return b.Status == dto.StatusActive }

// CanVote: aposta ativa e usuário ainda fora da lista de votos
func CanVote(b dto.Bet, login string) bool {
	return login != "" && IsActive(b) && !HasVoted(b, login)
}

// CanResolve: só o criador, enquanto a aposta está ativa
func CanResolve(b dto.Bet, login string) bool {
	return IsActive(b) && IsCreator(b, login)
}

// IsWinningOption indica a opção marcada como vencedora numa aposta resolvida
func IsWinningOption(b dto.Bet, i int) bool {
	return b.ResolvedOption != nil && *b.ResolvedOption == i
}
