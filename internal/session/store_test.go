package session_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/radieske/paris-web-client/internal/api"
	"github.com/radieske/paris-web-client/internal/api/dto"
	"github.com/radieske/paris-web-client/internal/session"
)

type fakeAPI struct {
	mu sync.Mutex

	loginToken  string
	loginErr    error
	registerErr error
	logoutErr   error

	profiles   map[string]dto.User // token -> usuário
	profileErr error

	// gates seguram GetProfile do token até o canal ser fechado
	gates   map[string]chan struct{}
	entered chan string

	logoutCalls  int
	profileCalls int
}

func (f *fakeAPI) Register(context.Context, dto.RegisterRequest) (dto.Ack, error) {
	return dto.Ack{}, f.registerErr
}

func (f *fakeAPI) Login(context.Context, dto.LoginRequest) (dto.LoginResponse, error) {
	if f.loginErr != nil {
		return dto.LoginResponse{}, f.loginErr
	}
	return dto.LoginResponse{Token: f.loginToken}, nil
}

func (f *fakeAPI) Logout(context.Context, string) (dto.Ack, error) {
	f.mu.Lock()
	f.logoutCalls++
	f.mu.Unlock()
	return dto.Ack{}, f.logoutErr
}

func (f *fakeAPI) GetProfile(_ context.Context, token string) (dto.User, error) {
	f.mu.Lock()
	gate := f.gates[token]
	f.mu.Unlock()
	if gate != nil {
		f.entered <- token
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	if f.profileErr != nil {
		return dto.User{}, f.profileErr
	}
	u, ok := f.profiles[token]
	if !ok {
		return dto.User{}, &api.Error{Op: "get_profile", Status: http.StatusUnauthorized, Detail: "Token invalide"}
	}
	return u, nil
}

func newStore(f *fakeAPI, persisted string) (*session.Store, *session.MemoryTokenStore) {
	ts := session.NewMemoryTokenStore(persisted)
	return session.NewStore(f, ts, nil), ts
}

func persisted(t *testing.T, ts *session.MemoryTokenStore) string {
	t.Helper()
	tok, err := ts.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return tok
}

func TestRestore_ValidTokenAuthenticates(t *testing.T) {
	f := &fakeAPI{profiles: map[string]dto.User{"tok": {Login: "alice", Points: 10}}}
	s, _ := newStore(f, "tok")

	var changes []session.Change
	s.Subscribe(func(c session.Change) { changes = append(changes, c) })
	s.Restore(context.Background())

	snap := s.Snapshot()
	if snap.State != session.StateAuthenticated || snap.User == nil || snap.User.Login != "alice" {
		t.Fatalf("expected authenticated alice, got %+v", snap)
	}
	if len(changes) != 2 || changes[0].To != session.StateRestoring || changes[1].To != session.StateAuthenticated {
		t.Errorf("unexpected transitions %+v", changes)
	}
}

func TestRestore_RejectedTokenIsCleared(t *testing.T) {
	f := &fakeAPI{profiles: map[string]dto.User{}}
	s, ts := newStore(f, "stale")

	s.Restore(context.Background())

	snap := s.Snapshot()
	if snap.State != session.StateAnonymous || snap.Token != "" || snap.User != nil {
		t.Fatalf("expected anonymous session, got %+v", snap)
	}
	if got := persisted(t, ts); got != "" {
		t.Errorf("expected persisted token cleared, got %q", got)
	}
}

func TestRestore_NetworkFailureAlsoClears(t *testing.T) {
	f := &fakeAPI{profileErr: errors.New("dial tcp: refused")}
	s, ts := newStore(f, "tok")

	s.Restore(context.Background())

	if s.IsAuthenticated() {
		t.Error("expected session to be anonymous")
	}
	if got := persisted(t, ts); got != "" {
		t.Errorf("expected persisted token cleared, got %q", got)
	}
}

func TestRestore_NoTokenStaysAnonymous(t *testing.T) {
	f := &fakeAPI{}
	s, _ := newStore(f, "")

	s.Restore(context.Background())

	if s.Snapshot().State != session.StateAnonymous {
		t.Error("expected anonymous")
	}
	if f.profileCalls != 0 {
		t.Errorf("expected no profile call, got %d", f.profileCalls)
	}
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAPI{loginToken: "new", profiles: map[string]dto.User{"new": {Login: "bob"}}}
	s, ts := newStore(f, "")

	res := s.Login(context.Background(), dto.LoginRequest{Login: "bob", Password: "pw"})
	if !res.Success || res.Error != "" {
		t.Fatalf("expected success, got %+v", res)
	}
	if got := persisted(t, ts); got != "new" {
		t.Errorf("expected persisted token new, got %q", got)
	}
	snap := s.Snapshot()
	if snap.User == nil || snap.User.Login != "bob" || snap.Loading {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"backend detail", &api.Error{Op: "login", Status: http.StatusUnauthorized, Detail: "Identifiants incorrects"}, "Identifiants incorrects"},
		{"no detail", &api.Error{Op: "login", Status: http.StatusInternalServerError}, session.MsgLoginFailed},
		{"transport", errors.New("timeout"), session.MsgLoginFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeAPI{loginErr: tt.err}
			s, ts := newStore(f, "")

			res := s.Login(context.Background(), dto.LoginRequest{Login: "a", Password: "b"})
			if res.Success || res.Error != tt.wantMsg {
				t.Errorf("expected error %q, got %+v", tt.wantMsg, res)
			}
			if s.IsAuthenticated() || persisted(t, ts) != "" {
				t.Error("expected no token after failed login")
			}
		})
	}
}

func TestLogin_ProfileFailureDropsNewToken(t *testing.T) {
	f := &fakeAPI{loginToken: "new", profileErr: &api.Error{Status: http.StatusInternalServerError}}
	s, ts := newStore(f, "")

	res := s.Login(context.Background(), dto.LoginRequest{Login: "a", Password: "b"})
	if res.Success {
		t.Fatal("expected failure")
	}
	if s.IsAuthenticated() || persisted(t, ts) != "" {
		t.Error("expected token to be dropped")
	}
}

func TestRegister_DoesNotAuthenticate(t *testing.T) {
	f := &fakeAPI{}
	s, _ := newStore(f, "")

	if res := s.Register(context.Background(), dto.RegisterRequest{Login: "c", Password: "pw"}); !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if s.IsAuthenticated() {
		t.Error("register must not authenticate")
	}

	f.registerErr = &api.Error{Status: http.StatusBadRequest, Detail: "Login déjà utilisé"}
	if res := s.Register(context.Background(), dto.RegisterRequest{Login: "c"}); res.Error != "Login déjà utilisé" {
		t.Errorf("expected backend detail, got %+v", res)
	}

	f.registerErr = &api.Error{Status: http.StatusBadRequest}
	if res := s.Register(context.Background(), dto.RegisterRequest{Login: "c"}); res.Error != session.MsgRegisterFailed {
		t.Errorf("expected fallback, got %+v", res)
	}
}

func TestLogout_ClearsEvenWhenBackendFails(t *testing.T) {
	f := &fakeAPI{
		profiles:  map[string]dto.User{"tok": {Login: "alice"}},
		logoutErr: errors.New("connection reset"),
	}
	s, ts := newStore(f, "tok")
	s.Restore(context.Background())

	s.Logout(context.Background())

	if s.IsAuthenticated() || s.Snapshot().User != nil {
		t.Error("expected cleared session")
	}
	if persisted(t, ts) != "" {
		t.Error("expected persisted token cleared")
	}
	if f.logoutCalls != 1 {
		t.Errorf("expected one backend logout, got %d", f.logoutCalls)
	}
}

func TestLogout_AnonymousSkipsBackend(t *testing.T) {
	f := &fakeAPI{}
	s, _ := newStore(f, "")

	s.Logout(context.Background())
	if f.logoutCalls != 0 {
		t.Errorf("expected no backend logout, got %d", f.logoutCalls)
	}
}

func TestHandleAPIError_InvalidatesOnUnauthorized(t *testing.T) {
	f := &fakeAPI{profiles: map[string]dto.User{"tok": {Login: "alice"}}}
	s, ts := newStore(f, "tok")
	s.Restore(context.Background())

	var changes []session.Change
	s.Subscribe(func(c session.Change) { changes = append(changes, c) })

	if s.HandleAPIError(context.Background(), "tok", &api.Error{Status: http.StatusInternalServerError}) {
		t.Error("500 must not invalidate")
	}
	if !s.HandleAPIError(context.Background(), "tok", &api.Error{Status: http.StatusUnauthorized}) {
		t.Fatal("401 must invalidate")
	}
	if s.IsAuthenticated() || persisted(t, ts) != "" {
		t.Error("expected cleared session")
	}
	if len(changes) != 2 || changes[0].To != session.StateInvalid || changes[1].To != session.StateAnonymous {
		t.Errorf("unexpected transitions %+v", changes)
	}
	if changes[0].Login != "alice" {
		t.Errorf("expected transition login alice, got %q", changes[0].Login)
	}
}

func TestRefresh(t *testing.T) {
	f := &fakeAPI{profiles: map[string]dto.User{"tok": {Login: "alice", Points: 1}}}
	s, _ := newStore(f, "tok")
	s.Restore(context.Background())

	f.profiles["tok"] = dto.User{Login: "alice", Points: 7}
	if res := s.Refresh(context.Background()); !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if s.Snapshot().User.Points != 7 {
		t.Errorf("expected refreshed points")
	}

	f.profileErr = errors.New("timeout")
	if res := s.Refresh(context.Background()); res.Error != session.MsgProfileFailed {
		t.Errorf("expected fallback message, got %+v", res)
	}
	if !s.IsAuthenticated() {
		t.Error("transport failure must keep the session")
	}

	f.profileErr = &api.Error{Status: http.StatusUnauthorized}
	s.Refresh(context.Background())
	if s.IsAuthenticated() {
		t.Error("unauthorized refresh must invalidate")
	}

	if res := s.Refresh(context.Background()); res.Error != session.MsgNotAuthenticated {
		t.Errorf("expected not authenticated, got %+v", res)
	}
}

func TestHandleAPIError_IgnoresReplacedToken(t *testing.T) {
	f := &fakeAPI{
		loginToken: "t2",
		profiles:   map[string]dto.User{"t1": {Login: "alice"}, "t2": {Login: "bob"}},
	}
	s, ts := newStore(f, "t1")
	s.Restore(context.Background())
	s.Logout(context.Background())
	if res := s.Login(context.Background(), dto.LoginRequest{Login: "bob", Password: "pw"}); !res.Success {
		t.Fatalf("login: %+v", res)
	}

	if s.HandleAPIError(context.Background(), "t1", &api.Error{Status: http.StatusUnauthorized}) {
		t.Error("rejection of the old token must not invalidate")
	}
	snap := s.Snapshot()
	if snap.Token != "t2" || snap.User == nil || snap.User.Login != "bob" {
		t.Errorf("expected bob to stay logged in, got %+v", snap)
	}
	if persisted(t, ts) != "t2" {
		t.Errorf("expected t2 persisted, got %q", persisted(t, ts))
	}
	if s.HandleAPIError(context.Background(), "", &api.Error{Status: http.StatusUnauthorized}) {
		t.Error("anonymous calls must not invalidate")
	}
}

// logoutOnSave chama Logout dentro do primeiro Save, antes de gravar
type logoutOnSave struct {
	*session.MemoryTokenStore
	store *session.Store
	once  sync.Once
}

func (l *logoutOnSave) Save(ctx context.Context, token string) error {
	l.once.Do(func() { l.store.Logout(ctx) })
	return l.MemoryTokenStore.Save(ctx, token)
}

func TestLogin_LogoutDuringSaveLeavesStorageEmpty(t *testing.T) {
	f := &fakeAPI{loginToken: "tok", profiles: map[string]dto.User{"tok": {Login: "alice"}}}
	ts := &logoutOnSave{MemoryTokenStore: session.NewMemoryTokenStore("")}
	s := session.NewStore(f, ts, nil)
	ts.store = s

	if res := s.Login(context.Background(), dto.LoginRequest{Login: "alice", Password: "pw"}); res.Success {
		t.Errorf("login superseded by logout must not succeed, got %+v", res)
	}
	snap := s.Snapshot()
	if snap.Token != "" || snap.User != nil || snap.State != session.StateAnonymous {
		t.Errorf("expected anonymous session, got %+v", snap)
	}
	if got := persisted(t, ts.MemoryTokenStore); got != "" {
		t.Errorf("expected storage cleared after logout, got %q", got)
	}

	s2 := session.NewStore(f, ts.MemoryTokenStore, nil)
	s2.Restore(context.Background())
	if s2.IsAuthenticated() {
		t.Error("restore must not bring back a logged out session")
	}
}

func TestRestore_LogoutWhileProfileInFlight(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeAPI{
		profiles: map[string]dto.User{"tok": {Login: "alice"}},
		gates:    map[string]chan struct{}{"tok": gate},
		entered:  make(chan string, 1),
	}
	s, ts := newStore(f, "tok")

	done := make(chan struct{})
	go func() {
		s.Restore(context.Background())
		close(done)
	}()
	<-f.entered
	s.Logout(context.Background())
	close(gate)
	<-done

	snap := s.Snapshot()
	if snap.State != session.StateAnonymous || snap.Token != "" || snap.User != nil {
		t.Errorf("late profile must be dropped, got %+v", snap)
	}
	if persisted(t, ts) != "" {
		t.Error("expected storage to stay empty")
	}
}

func TestLogin_OverlappingRestoreKeepsNewToken(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeAPI{
		loginToken: "new",
		profiles:   map[string]dto.User{"old": {Login: "alice"}, "new": {Login: "bob"}},
		gates:      map[string]chan struct{}{"old": gate},
		entered:    make(chan string, 1),
	}
	s, ts := newStore(f, "old")

	done := make(chan struct{})
	go func() {
		s.Restore(context.Background())
		close(done)
	}()
	<-f.entered
	if res := s.Login(context.Background(), dto.LoginRequest{Login: "bob", Password: "pw"}); !res.Success {
		t.Fatalf("login: %+v", res)
	}
	close(gate)
	<-done

	snap := s.Snapshot()
	if snap.Token != "new" || snap.User == nil || snap.User.Login != "bob" || snap.State != session.StateAuthenticated {
		t.Errorf("expected bob authenticated with the new token, got %+v", snap)
	}
	if persisted(t, ts) != "new" {
		t.Errorf("expected new token persisted, got %q", persisted(t, ts))
	}
}
