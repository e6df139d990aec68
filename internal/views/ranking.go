package views

import (
	"context"

	"github.com/radieske/paris-web-client/internal/display"
	"github.com/radieske/paris-web-client/internal/forms"
)

// LeagueGlobal é o filtro que pede o ranking sem ligue
const LeagueGlobal = "global"

func (s *Service) Ranking(ctx context.Context, league string) RankingModel {
	if league == "" {
		league = LeagueGlobal
	}
	m := RankingModel{League: league, Leagues: forms.RankingLeagues}

	query := league
	if league == LeagueGlobal {
		query = ""
	}
	res, err := s.api.GetRanking(ctx, query)
	if err != nil {
		s.failed("get_ranking", err)
		m.Error = MsgLoadRanking
		return m
	}

	_, login := s.identity()
	m.Rows = newRankRows(res.Users, login)
	m.Participants = len(res.Users)
	if len(m.Rows) > 3 {
		m.Podium = m.Rows[:3]
	} else {
		m.Podium = m.Rows
	}
	if pos := display.Position(res.Users, login); pos > 0 {
		row := m.Rows[pos-1]
		m.CurrentUser = &row
	}
	m.MaxPoints, _ = display.MaxPoints(res.Users)
	m.AverageWinRatePercent = display.AverageWinRatePercent(res.Users)
	if len(res.Users) == 0 {
		m.Empty = MsgNoRanking
	}
	return m
}
