package session

import (
	"context"
	"sync"
	"time"

	"github.com/radieske/paris-web-client/internal/api/dto"
)

// State é o estado do ciclo de vida da sessão
type State string

const (
	StateAnonymous     State = "anonymous"     // sem token
	StateRestoring     State = "restoring"     // token presente, perfil em validação
	StateAuthenticated State = "authenticated" // token + usuário validado
	StateInvalid       State = "invalid"       // token rejeitado; transitório, volta a anonymous
)

// Motivos de transição
const (
	ReasonRestore     = "restore"
	ReasonLogin       = "login"
	ReasonLogout      = "logout"
	ReasonInvalidated = "invalidated"
	ReasonRefresh     = "refresh"
)

// StorageKey é o nome fixo do token no armazenamento durável
const StorageKey = "token"

// Session é a fotografia do estado exposta aos consumidores.
// User só é preenchido quando Token existe e foi validado no backend.
type Session struct {
	Token   string    `json:"-"`
	User    *dto.User `json:"user,omitempty"`
	Loading bool      `json:"loading"`
	State   State     `json:"state"`
}

// Change descreve uma transição, entregue aos observadores após a mutação
type Change struct {
	From   State
	To     State
	Reason string
	Login  string
	At     time.Time
}

// Result é o retorno de login/register/refresh: sucesso ou a mensagem a exibir
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TokenStore é o armazenamento durável do token ("local storage")
type TokenStore interface {
	Load(ctx context.Context) (string, error) // "" quando ausente
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryTokenStore guarda o token só em memória (testes e execuções efêmeras)
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
