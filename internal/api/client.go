package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client mapeia cada operação do backend REST para uma função tipada.
// Não guarda estado, não faz retry, cache nem batching.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	// OnRequest é chamado ao fim de cada chamada (métricas); status 0 = sem resposta
	OnRequest func(op string, status int, elapsed time.Duration)
}

// New cria o cliente sem timeout próprio: o cancelamento vem do context do chamador
func New(base string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    &http.Client{},
	}
}

// do executa a requisição, decodifica a resposta em out e converte não-2xx em *Error
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("paris api %s: encode: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("paris api %s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.observe(op, 0, start)
		return fmt.Errorf("paris api %s: %w", op, err)
	}
	defer res.Body.Close()
	c.observe(op, res.StatusCode, start)

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("paris api %s: read body: %w", op, err)
	}

	if res.StatusCode >= 300 {
		return &Error{Op: op, Status: res.StatusCode, Detail: parseDetail(raw), Body: raw}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("paris api %s: decode: %w", op, err)
	}
	return nil
}

func (c *Client) observe(op string, status int, start time.Time) {
	if c.OnRequest != nil {
		c.OnRequest(op, status, time.Since(start))
	}
}

// tokenQuery monta o parâmetro ?token= esperado pelo backend
func tokenQuery(token string) url.Values {
	return url.Values{"token": []string{token}}
}
