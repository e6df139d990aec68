package views

import (
	"context"

	"github.com/radieske/paris-web-client/internal/api"
	"github.com/radieske/paris-web-client/internal/display"
	"github.com/radieske/paris-web-client/internal/forms"
	"github.com/radieske/paris-web-client/internal/guard"
	"github.com/radieske/paris-web-client/internal/session"
	"github.com/radieske/paris-web-client/pkg/contracts/events"
)

// Bets lista as apostas com busca e filtros; os contadores ignoram o filtro
func (s *Service) Bets(ctx context.Context, f display.Filter) BetsModel {
	if f.Status == "" {
		f.Status = display.FilterAll
	}
	if f.League == "" {
		f.League = display.FilterAll
	}
	m := BetsModel{Filter: f}

	bets, err := s.api.GetBets(ctx)
	if err != nil {
		s.failed("get_bets", err)
		m.Error = MsgLoadBets
		return m
	}

	m.Bets = newBetCards(display.FilterBets(bets, f))
	m.Leagues = display.Leagues(bets)
	m.Total = len(bets)
	m.Active, m.Resolved = display.CountStatus(bets)
	switch {
	case len(bets) == 0:
		m.Empty = MsgNoBets
	case len(m.Bets) == 0:
		m.Empty = MsgNoMatch
	}
	return m
}

// BetDetail carrega a aposta com contagem de votos e o estado do usuário atual
func (s *Service) BetDetail(ctx context.Context, betID string) BetDetailModel {
	_, login := s.identity()
	b, err := s.api.GetBetDetails(ctx, betID)
	if err != nil {
		s.failed("get_bet_details", err)
		return BetDetailModel{Error: MsgLoadBet}
	}
	return newBetDetail(b, login)
}

// Vote registra o voto e recarrega o detalhe.
// O caminho de voto só existe para quem ainda não votou numa aposta ativa.
func (s *Service) Vote(ctx context.Context, betID string, selected *int) BetDetailModel {
	token, login := s.identity()
	b, err := s.api.GetBetDetails(ctx, betID)
	if err != nil {
		s.failed("get_bet_details", err)
		return BetDetailModel{Error: MsgLoadBet}
	}
	m := newBetDetail(b, login)

	switch {
	case login == "":
		m.Error = session.MsgNotAuthenticated
		return m
	case !display.IsActive(b):
		m.Error = MsgBetClosed
		return m
	case m.HasVoted:
		m.Error = MsgAlreadyVoted
		return m
	}

	req, verr := forms.Vote(selected, len(b.Options))
	if verr != nil {
		m.Error = verr.Message
		return m
	}

	if _, err := s.api.VoteBet(ctx, betID, req, token); err != nil {
		s.authFailed(ctx, "vote_bet", token, err)
		m.Error = api.Message(err, MsgVoteFailed)
		return m
	}

	idx := req.OptionIndex
	_ = s.pub.PublishBetActivity(ctx, events.BetActivity{
		Kind: events.KindBetVoted, BetID: betID, Login: login, OptionIndex: &idx,
	})

	out := s.BetDetail(ctx, betID)
	out.Success = MsgVoted
	return out
}

// Resolve encerra a aposta com a opção vencedora; reservado ao criador enquanto ativa
func (s *Service) Resolve(ctx context.Context, betID string, winning *int) BetDetailModel {
	token, login := s.identity()
	b, err := s.api.GetBetDetails(ctx, betID)
	if err != nil {
		s.failed("get_bet_details", err)
		return BetDetailModel{Error: MsgLoadBet}
	}
	m := newBetDetail(b, login)

	switch {
	case login == "":
		m.Error = session.MsgNotAuthenticated
		return m
	case !display.IsActive(b):
		m.Error = MsgBetClosed
		return m
	case !m.IsCreator:
		m.Error = MsgNotCreator
		return m
	}

	req, verr := forms.Resolve(winning, len(b.Options))
	if verr != nil {
		m.Error = verr.Message
		return m
	}

	if _, err := s.api.ResolveBet(ctx, betID, req, token); err != nil {
		s.authFailed(ctx, "resolve_bet", token, err)
		m.Error = api.Message(err, MsgResolveFailed)
		return m
	}

	idx := req.WinningOptionIndex
	_ = s.pub.PublishBetActivity(ctx, events.BetActivity{
		Kind: events.KindBetResolved, BetID: betID, Login: login, OptionIndex: &idx,
	})

	out := s.BetDetail(ctx, betID)
	out.Success = MsgResolved
	return out
}

// NewBetForm é o formulário vazio da criação
func NewBetForm() CreateBetModel {
	return CreateBetModel{
		Form:    forms.CreateBet{League: forms.DefaultLeague, Options: []string{"", ""}},
		Leagues: forms.PredefinedLeagues,
	}
}

// CreateBet valida localmente e só então envia ao backend
func (s *Service) CreateBet(ctx context.Context, f forms.CreateBet) CreateBetModel {
	m := CreateBetModel{Form: f, Leagues: forms.PredefinedLeagues}

	req, verr := f.Validate()
	if verr != nil {
		m.Field, m.Error = verr.Field, verr.Message
		return m
	}

	token, login := s.identity()
	res, err := s.api.CreateBet(ctx, req, token)
	if err != nil {
		s.authFailed(ctx, "create_bet", token, err)
		m.Error = api.Message(err, MsgCreateFailed)
		return m
	}

	id := res.BetID.String()
	_ = s.pub.PublishBetActivity(ctx, events.BetActivity{Kind: events.KindBetCreated, BetID: id, Login: login})

	m.BetID = id
	m.Success = MsgCreated
	m.Redirect = guard.Path("bet", map[string]string{"betId": id})
	return m
}
