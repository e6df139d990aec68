package views

import (
	"context"

	"github.com/radieske/paris-web-client/internal/display"
)

// Home: 3 apostas mais recentes (ordem do backend), top 3 do ranking e atalhos
func (s *Service) Home(ctx context.Context) HomeModel {
	snap := s.sess.Snapshot()
	m := HomeModel{QuickActions: quickActions}
	login := ""
	if snap.User != nil {
		login = snap.User.Login
		m.Login, m.Points = snap.User.Login, snap.User.Points
	}

	bets, err := s.api.GetBets(ctx)
	if err != nil {
		s.failed("get_bets", err)
		m.Error = MsgLoadHome
		return m
	}
	m.RecentBets = newBetCards(display.First(bets, 3))

	ranking, err := s.api.GetRanking(ctx, "")
	if err != nil {
		s.failed("get_ranking", err)
		m.Error = MsgLoadHome
		return m
	}
	users := ranking.Users
	if len(users) > 3 {
		users = users[:3]
	}
	m.TopRanking = newRankRows(users, login)
	return m
}
