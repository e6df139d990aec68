package views

import (
	"context"

	"github.com/radieske/paris-web-client/internal/display"
)

// Profile busca o perfil atualizado, as apostas criadas pelo usuário e sua posição global
func (s *Service) Profile(ctx context.Context) ProfileModel {
	token, _ := s.identity()
	var m ProfileModel

	user, err := s.api.GetProfile(ctx, token)
	if err != nil {
		s.authFailed(ctx, "get_profile", token, err)
		m.Error = MsgLoadProfile
		return m
	}

	bets, err := s.api.GetBets(ctx)
	if err != nil {
		s.failed("get_bets", err)
		m.Error = MsgLoadProfile
		return m
	}
	mine := display.CreatedBy(bets, user.Login)

	ranking, err := s.api.GetRanking(ctx, "")
	if err != nil {
		s.failed("get_ranking", err)
		m.Error = MsgLoadProfile
		return m
	}
	rank := display.Position(ranking.Users, user.Login)

	pct := display.WinRatePercent(user.WonBets, user.TotalBets)
	m.User = &user
	m.WinRatePercent = pct
	m.Level = display.PerformanceLevel(pct)
	m.Badges = display.Badges(user, len(mine), rank)
	m.Rank = rank
	m.CreatedBets = len(mine)
	for _, b := range display.First(mine, 6) {
		m.RecentBets = append(m.RecentBets, ProfileBet{
			BetCard:          newBetCard(b),
			ShortTitle:       display.Truncate(b.Title, 20),
			ShortDescription: display.Truncate(b.Description, 50),
		})
	}
	if len(mine) == 0 {
		m.Empty = MsgNoCreations
	}
	return m
}
