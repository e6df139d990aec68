package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/radieske/paris-web-client/internal/api/dto"
)

// GetBets lista as apostas na forma resumida (com total_votes)
func (c *Client) GetBets(ctx context.Context) ([]dto.Bet, error) {
	var out []dto.Bet
	err := c.do(ctx, "get_bets", http.MethodGet, "/bets/", nil, nil, &out)
	return out, err
}

// CreateBet cria a aposta em nome do dono do token
func (c *Client) CreateBet(ctx context.Context, req dto.CreateBetRequest, token string) (dto.CreateBetResponse, error) {
	var out dto.CreateBetResponse
	err := c.do(ctx, "create_bet", http.MethodPost, "/bets/", tokenQuery(token), req, &out)
	return out, err
}

// GetBetDetails devolve a forma completa (vote_counts, votes, resolved_option)
func (c *Client) GetBetDetails(ctx context.Context, betID string) (dto.Bet, error) {
	var out dto.Bet
	err := c.do(ctx, "get_bet_details", http.MethodGet, "/bets/"+url.PathEscape(betID), nil, nil, &out)
	return out, err
}

// VoteBet registra o voto; unicidade por usuário é garantida pelo backend
func (c *Client) VoteBet(ctx context.Context, betID string, req dto.VoteRequest, token string) (dto.Ack, error) {
	var out dto.Ack
	err := c.do(ctx, "vote_bet", http.MethodPost, "/bets/"+url.PathEscape(betID)+"/vote", tokenQuery(token), req, &out)
	return out, err
}

// ResolveBet marca a opção vencedora; a autorização do criador é checada pelo backend
func (c *Client) ResolveBet(ctx context.Context, betID string, req dto.ResolveRequest, token string) (dto.Ack, error) {
	var out dto.Ack
	err := c.do(ctx, "resolve_bet", http.MethodPost, "/bets/"+url.PathEscape(betID)+"/resolve", tokenQuery(token), req, &out)
	return out, err
}
