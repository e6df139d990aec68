package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error é a resposta não-2xx do backend, repassada sem alteração (status + mensagem)
type Error struct {
	Op     string
	Status int
	Detail string // campo "detail" do backend, quando presente
	Body   []byte
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("paris api %s: http %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("paris api %s: http %d", e.Op, e.Status)
}

// Message devolve a mensagem do backend quando existir, senão o fallback localizado
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// IsUnauthorized indica token rejeitado (401/403)
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// parseDetail extrai "detail" de {"detail": "..."} ou da lista de validação
// [{"msg": "..."}]; corpo sem detail devolve string vazia
func parseDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return strings.TrimSpace(string(env.Detail))
}
