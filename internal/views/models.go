package views

import (
	"github.com/radieske/paris-web-client/internal/api/dto"
	"github.com/radieske/paris-web-client/internal/display"
	"github.com/radieske/paris-web-client/internal/forms"
	"github.com/radieske/paris-web-client/internal/guard"
)

// BetCard é uma aposta como aparece nas listas
type BetCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	League      string   `json:"league"`
	Creator     string   `json:"creator"`
	Status      string   `json:"status"`
	StatusLabel string   `json:"status_label"`
	ActionLabel string   `json:"action_label"`
	Options     []string `json:"options"`
	TotalVotes  int      `json:"total_votes"`
	CreatedAt   string   `json:"created_at"`
	Path        string   `json:"path"`
}

func newBetCard(b dto.Bet) BetCard {
	id := b.ID.String()
	return BetCard{
		ID:          id,
		Title:       b.Title,
		Description: b.Description,
		League:      b.League,
		Creator:     b.Creator,
		Status:      b.Status,
		StatusLabel: display.StatusLabel(b.Status),
		ActionLabel: display.ActionLabel(b.Status),
		Options:     b.Options,
		TotalVotes:  b.TotalVotes,
		CreatedAt:   display.FormatDate(b.CreatedAt.Time, true),
		Path:        guard.Path("bet", map[string]string{"betId": id}),
	}
}

func newBetCards(bets []dto.Bet) []BetCard {
	out := make([]BetCard, 0, len(bets))
	for _, b := range bets {
		out = append(out, newBetCard(b))
	}
	return out
}

// RankRow é uma linha do classement
type RankRow struct {
	Position       int    `json:"position"`
	PositionLabel  string `json:"position_label"`
	Login          string `json:"login"`
	Points         int    `json:"points"`
	TotalBets      int    `json:"total_bets"`
	WonBets        int    `json:"won_bets"`
	WinRatePercent int    `json:"win_rate_percent"`
	RateBand       string `json:"rate_band"`
	Trend          string `json:"trend"`
	Trophy         string `json:"trophy,omitempty"`
	IsCurrentUser  bool   `json:"is_current_user"`
}

func newRankRows(users []dto.User, login string) []RankRow {
	out := make([]RankRow, 0, len(users))
	for i, u := range users {
		pos := i + 1
		rate := display.UserWinRate(u)
		out = append(out, RankRow{
			Position:       pos,
			PositionLabel:  display.PositionLabel(pos),
			Login:          u.Login,
			Points:         u.Points,
			TotalBets:      u.TotalBets,
			WonBets:        u.WonBets,
			WinRatePercent: display.RatePercent(rate),
			RateBand:       display.RateBand(rate),
			Trend:          display.Trend(u.Points),
			Trophy:         display.Trophy(pos),
			IsCurrentUser:  login != "" && u.Login == login,
		})
	}
	return out
}

// Action é um atalho da Home
type Action struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Color       string `json:"color"`
}

var quickActions = []Action{
	{Title: "Créer un pari", Description: "Proposez un nouveau pari à la communauté", Path: "/create-bet", Color: "primary"},
	{Title: "Voir tous les paris", Description: "Participez aux paris en cours", Path: "/bets", Color: "secondary"},
	{Title: "Classement", Description: "Découvrez le top des parieurs", Path: "/ranking", Color: "success"},
}

type HomeModel struct {
	Login        string    `json:"login"`
	Points       int       `json:"points"`
	RecentBets   []BetCard `json:"recent_bets"`
	TopRanking   []RankRow `json:"top_ranking"`
	QuickActions []Action  `json:"quick_actions"`
	Error        string    `json:"error,omitempty"`
}

type BetsModel struct {
	Filter   display.Filter `json:"filter"`
	Bets     []BetCard      `json:"bets"`
	Leagues  []string       `json:"leagues"`
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Resolved int            `json:"resolved"`
	Empty    string         `json:"empty,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// OptionRow é uma opção na tela de detalhe, com o resultado parcial
type OptionRow struct {
	Index      int    `json:"index"`
	Label      string `json:"label"`
	Votes      int    `json:"votes"`
	Percent    int    `json:"percent"`
	IsWinner   bool   `json:"is_winner"`
	IsUserVote bool   `json:"is_user_vote"`
}

type BetDetailModel struct {
	Bet           *BetCard    `json:"bet,omitempty"`
	Options       []OptionRow `json:"options,omitempty"`
	TotalVotes    int         `json:"total_votes"`
	HasVoted      bool        `json:"has_voted"`
	UserVote      *int        `json:"user_vote,omitempty"`
	IsCreator     bool        `json:"is_creator"`
	CanVote       bool        `json:"can_vote"`
	CanResolve    bool        `json:"can_resolve"`
	WinningOption *int        `json:"winning_option,omitempty"`
	Error         string      `json:"error,omitempty"`
	Success       string      `json:"success,omitempty"`
}

func newBetDetail(b dto.Bet, login string) BetDetailModel {
	card := newBetCard(b)
	total := display.TotalVotes(b.VoteCounts)
	m := BetDetailModel{
		Bet:           &card,
		TotalVotes:    total,
		HasVoted:      display.HasVoted(b, login),
		IsCreator:     display.IsCreator(b, login),
		CanVote:       display.CanVote(b, login),
		CanResolve:    display.CanResolve(b, login),
		WinningOption: b.ResolvedOption,
	}
	if v := display.UserVote(b, login); v != nil {
		idx := v.OptionIndex
		m.UserVote = &idx
	}
	for i, label := range b.Options {
		m.Options = append(m.Options, OptionRow{
			Index:      i,
			Label:      label,
			Votes:      b.VoteCounts[i],
			Percent:    display.VotePercent(b.VoteCounts, i),
			IsWinner:   display.IsWinningOption(b, i),
			IsUserVote: m.UserVote != nil && *m.UserVote == i,
		})
	}
	return m
}

type CreateBetModel struct {
	Form     forms.CreateBet `json:"form"`
	Leagues  []string        `json:"leagues"`
	BetID    string          `json:"bet_id,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
	Field    string          `json:"field,omitempty"`
	Error    string          `json:"error,omitempty"`
	Success  string          `json:"success,omitempty"`
}

type RankingModel struct {
	League                string    `json:"league"`
	Leagues               []string  `json:"leagues"`
	Rows                  []RankRow `json:"rows"`
	Podium                []RankRow `json:"podium"`
	CurrentUser           *RankRow  `json:"current_user,omitempty"`
	Participants          int       `json:"participants"`
	MaxPoints             int       `json:"max_points"`
	AverageWinRatePercent int       `json:"average_win_rate_percent"`
	Empty                 string    `json:"empty,omitempty"`
	Error                 string    `json:"error,omitempty"`
}

// ProfileBet é uma aposta criada pelo usuário, com textos encurtados
type ProfileBet struct {
	BetCard
	ShortTitle       string `json:"short_title"`
	ShortDescription string `json:"short_description"`
}

type ProfileModel struct {
	User           *dto.User       `json:"user,omitempty"`
	WinRatePercent int             `json:"win_rate_percent"`
	Level          display.Level   `json:"level"`
	Badges         []display.Badge `json:"badges"`
	Rank           int             `json:"rank,omitempty"`
	CreatedBets    int             `json:"created_bets"`
	RecentBets     []ProfileBet    `json:"recent_bets"`
	Empty          string          `json:"empty,omitempty"`
	Error          string          `json:"error,omitempty"`
}
