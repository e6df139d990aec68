package api

import (
	"context"
	"net/http"

	"github.com/radieske/paris-web-client/internal/api/dto"
)

// Register cria a conta; não autentica o usuário
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (dto.Ack, error) {
	var out dto.Ack
	err := c.do(ctx, "register", http.MethodPost, "/auth/register", nil, req, &out)
	return out, err
}

// Login troca credenciais por um token
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, req, &out)
	return out, err
}

// Logout invalida o token no backend
func (c *Client) Logout(ctx context.Context, token string) (dto.Ack, error) {
	var out dto.Ack
	err := c.do(ctx, "logout", http.MethodPost, "/auth/logout", tokenQuery(token), nil, &out)
	return out, err
}

// GetProfile devolve o usuário dono do token; sem efeito colateral em caso de falha
func (c *Client) GetProfile(ctx context.Context, token string) (dto.User, error) {
	var out dto.User
	err := c.do(ctx, "get_profile", http.MethodGet, "/users/me", tokenQuery(token), nil, &out)
	return out, err
}
