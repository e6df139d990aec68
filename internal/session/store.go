package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/paris-web-client/internal/api"
	"github.com/radieske/paris-web-client/internal/api/dto"
)

// Mensagens localizadas exibidas quando o backend não envia "detail"
const (
	MsgLoginFailed      = "Erreur de connexion"
	MsgRegisterFailed   = "Erreur lors de l'inscription"
	MsgProfileFailed    = "Erreur lors du chargement du profil"
	MsgNotAuthenticated = "Vous n'êtes pas connecté"
)

// errSuperseded indica que o token validado foi trocado ou removido durante a chamada
var errSuperseded = errors.New("session: token superseded")

// AuthAPI é o subconjunto do cliente da API usado pela sessão
type AuthAPI interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.Ack, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, token string) (dto.Ack, error)
	GetProfile(ctx context.Context, token string) (dto.User, error)
}

// Store é o dono único do estado de sessão (token + usuário).
// Toda mutação passa por Restore, Login, Logout, Refresh ou Invalidate;
// chamadas de rede acontecem fora do lock.
type Store struct {
	api    AuthAPI
	tokens TokenStore
	log    *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	sess      Session
	gen       uint64 // incrementado a cada troca de token
	listeners []func(Change)
}

// NewStore cria a sessão em estado anonymous; chame Restore para recuperar o token persistido
func NewStore(a AuthAPI, tokens TokenStore, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		api:    a,
		tokens: tokens,
		log:    log,
		now:    time.Now,
		sess:   Session{State: StateAnonymous},
	}
}

// Subscribe registra um observador de transições
func (s *Store) Subscribe(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot devolve uma cópia do estado atual
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.sess
	if s.sess.User != nil {
		u := *s.sess.User
		out.User = &u
	}
	return out
}

// Token devolve o token atual ("" quando anônimo)
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.Token
}

// IsAuthenticated é derivado apenas da presença do token, não do frescor da validação
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Restore tenta recuperar o token persistido e validá-lo buscando o perfil
func (s *Store) Restore(ctx context.Context) {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.Warn("token storage load failed", zap.Error(err))
		return
	}
	if token == "" {
		return
	}

	s.mu.Lock()
	gen := s.swapTokenLocked(token)
	c := s.setStateLocked(StateRestoring, ReasonRestore, "")
	s.mu.Unlock()
	s.emit(c)

	if err := s.validate(ctx, gen, token, ReasonRestore); err != nil && !errors.Is(err, errSuperseded) {
		s.log.Info("persisted token rejected", zap.Error(err))
	}
}

// Login envia as credenciais, persiste o token e valida o perfil.
// Em falha do login o estado da sessão não muda (exceto Loading).
func (s *Store) Login(ctx context.Context, req dto.LoginRequest) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	res, err := s.api.Login(ctx, req)
	if err != nil {
		s.log.Info("login rejected", zap.String("login", req.Login), zap.Error(err))
		return Result{Error: api.Message(err, MsgLoginFailed)}
	}
	if res.Token == "" {
		s.log.Warn("login response without token", zap.String("login", req.Login))
		return Result{Error: MsgLoginFailed}
	}

	s.mu.Lock()
	gen := s.swapTokenLocked(res.Token)
	c := s.setStateLocked(StateRestoring, ReasonLogin, "")
	s.mu.Unlock()
	s.emit(c)
	s.persist(ctx)

	if err := s.validate(ctx, gen, res.Token, ReasonLogin); err != nil {
		return Result{Error: api.Message(err, MsgLoginFailed)}
	}
	return Result{Success: true}
}

// Register cria a conta sem autenticar o usuário
func (s *Store) Register(ctx context.Context, req dto.RegisterRequest) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	if _, err := s.api.Register(ctx, req); err != nil {
		s.log.Info("register rejected", zap.String("login", req.Login), zap.Error(err))
		return Result{Error: api.Message(err, MsgRegisterFailed)}
	}
	return Result{Success: true}
}

// Logout avisa o backend (best-effort) e limpa token e usuário incondicionalmente
func (s *Store) Logout(ctx context.Context) {
	if token := s.Token(); token != "" {
		if _, err := s.api.Logout(ctx, token); err != nil {
			s.log.Warn("backend logout failed", zap.Error(err))
		}
	}
	s.clear(ctx, ReasonLogout, false)
}

// Refresh busca de novo o perfil do token atual.
// Só uma rejeição de autorização invalida a sessão.
func (s *Store) Refresh(ctx context.Context) Result {
	s.mu.RLock()
	token, gen := s.sess.Token, s.gen
	s.mu.RUnlock()
	if token == "" {
		return Result{Error: MsgNotAuthenticated}
	}

	user, err := s.api.GetProfile(ctx, token)
	if err != nil {
		if api.IsUnauthorized(err) {
			s.invalidateIfCurrent(ctx, gen)
		}
		return Result{Error: api.Message(err, MsgProfileFailed)}
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return Result{Error: MsgProfileFailed}
	}
	s.sess.User = &user
	var changes []Change
	if s.sess.State != StateAuthenticated {
		changes = append(changes, s.setStateLocked(StateAuthenticated, ReasonRefresh, user.Login))
	}
	s.mu.Unlock()
	s.emit(changes...)
	return Result{Success: true}
}

// HandleAPIError trata a rejeição tardia do token como invalidação silenciosa.
// token é o que a chamada usou; rejeições de um token já substituído são ignoradas.
// Devolve true quando a sessão foi invalidada.
func (s *Store) HandleAPIError(ctx context.Context, token string, err error) bool {
	if !api.IsUnauthorized(err) || token == "" {
		return false
	}
	s.mu.RLock()
	current, gen := token == s.sess.Token, s.gen
	s.mu.RUnlock()
	if !current {
		s.log.Debug("rejection for a replaced token ignored", zap.Error(err))
		return false
	}
	s.log.Info("token rejected by backend, clearing session", zap.Error(err))
	return s.invalidateIfCurrent(ctx, gen)
}

// Invalidate descarta o token atual (invalid -> anonymous) e limpa o armazenamento
func (s *Store) Invalidate(ctx context.Context) {
	s.clear(ctx, ReasonInvalidated, true)
}

// validate busca o perfil para o token da geração gen e aplica o resultado,
// a menos que o token tenha sido trocado nesse meio tempo
func (s *Store) validate(ctx context.Context, gen uint64, token, reason string) error {
	user, err := s.api.GetProfile(ctx, token)
	if err != nil {
		if !s.invalidateIfCurrent(ctx, gen) {
			return errSuperseded
		}
		return err
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return errSuperseded
	}
	s.sess.User = &user
	c := s.setStateLocked(StateAuthenticated, reason, user.Login)
	s.mu.Unlock()
	s.emit(c)
	return nil
}

// invalidateIfCurrent invalida apenas se gen ainda for a geração vigente
func (s *Store) invalidateIfCurrent(ctx context.Context, gen uint64) bool {
	s.mu.RLock()
	current := gen == s.gen
	s.mu.RUnlock()
	if !current {
		return false
	}
	s.Invalidate(ctx)
	return true
}

// clear zera token e usuário em memória e no armazenamento durável
func (s *Store) clear(ctx context.Context, reason string, viaInvalid bool) {
	s.mu.Lock()
	login := ""
	if s.sess.User != nil {
		login = s.sess.User.Login
	}
	s.swapTokenLocked("")
	var changes []Change
	if viaInvalid {
		changes = append(changes, s.setStateLocked(StateInvalid, reason, login))
	}
	if s.sess.State != StateAnonymous {
		changes = append(changes, s.setStateLocked(StateAnonymous, reason, login))
	}
	s.mu.Unlock()

	s.persist(ctx)
	s.emit(changes...)
}

// persist grava no armazenamento o token vigente (ou o remove).
// Se o token mudar durante a escrita, grava de novo: o armazenamento
// termina sempre igual à memória, mesmo com Login e Logout concorrentes.
func (s *Store) persist(ctx context.Context) {
	for {
		s.mu.RLock()
		token, gen := s.sess.Token, s.gen
		s.mu.RUnlock()

		if token == "" {
			if err := s.tokens.Clear(ctx); err != nil {
				s.log.Warn("token storage clear failed", zap.Error(err))
			}
		} else if err := s.tokens.Save(ctx, token); err != nil {
			s.log.Warn("token storage save failed", zap.Error(err))
		}

		s.mu.RLock()
		settled := gen == s.gen
		s.mu.RUnlock()
		if settled {
			return
		}
	}
}

// swapTokenLocked troca o token, zera o usuário e abre uma nova geração
func (s *Store) swapTokenLocked(token string) uint64 {
	s.sess.Token = token
	s.sess.User = nil
	s.gen++
	return s.gen
}

func (s *Store) setStateLocked(to State, reason, login string) Change {
	c := Change{From: s.sess.State, To: to, Reason: reason, Login: login, At: s.now()}
	s.sess.State = to
	return c
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.sess.Loading = v
	s.mu.Unlock()
}

// emit entrega as transições fora do lock, na ordem em que ocorreram
func (s *Store) emit(changes ...Change) {
	if len(changes) == 0 {
		return
	}
	s.mu.RLock()
	ls := append([]func(Change){}, s.listeners...)
	s.mu.RUnlock()
	for _, c := range changes {
		for _, fn := range ls {
			fn(c)
		}
	}
}
