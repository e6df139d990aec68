package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/radieske/paris-web-client/internal/api/dto"
)

// GetRanking devolve o ranking global, ou de uma liga quando league != ""
func (c *Client) GetRanking(ctx context.Context, league string) (dto.RankingResponse, error) {
	var q url.Values
	if league != "" {
		q = url.Values{"league": []string{league}}
	}
	var out dto.RankingResponse
	err := c.do(ctx, "get_ranking", http.MethodGet, "/ranking", q, nil, &out)
	return out, err
}
