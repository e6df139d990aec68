package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/radieske/paris-web-client/internal/api/dto"
	"github.com/radieske/paris-web-client/internal/display"
	"github.com/radieske/paris-web-client/internal/forms"
	"github.com/radieske/paris-web-client/internal/guard"
	"github.com/radieske/paris-web-client/internal/session"
	"github.com/radieske/paris-web-client/internal/views"
)

// SessionStore é o que o servidor usa da sessão
type SessionStore interface {
	Snapshot() session.Session
	Login(ctx context.Context, req dto.LoginRequest) session.Result
	Register(ctx context.Context, req dto.RegisterRequest) session.Result
	Logout(ctx context.Context)
	Refresh(ctx context.Context) session.Result
}

// Pages monta os modelos das telas (views.Service)
type Pages interface {
	Home(ctx context.Context) views.HomeModel
	Bets(ctx context.Context, f display.Filter) views.BetsModel
	BetDetail(ctx context.Context, betID string) views.BetDetailModel
	Vote(ctx context.Context, betID string, selected *int) views.BetDetailModel
	Resolve(ctx context.Context, betID string, winning *int) views.BetDetailModel
	CreateBet(ctx context.Context, f forms.CreateBet) views.CreateBetModel
	Ranking(ctx context.Context, league string) views.RankingModel
	Profile(ctx context.Context) views.ProfileModel
}

// API expõe a mesma tabela de rotas da SPA devolvendo os modelos em JSON.
// Rotas de tela passam pelo guard; ações exigem sessão.
type API struct {
	Log         *zap.Logger
	Session     SessionStore
	Pages       Pages
	WS          http.HandlerFunc // /ws, opcional
	CORSOrigins []string
}

// Router retorna o roteador HTTP com as telas, as ações e a sessão
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if a.WS != nil {
		r.Get("/ws", a.WS)
	}

	r.Route("/session", func(r chi.Router) {
		r.Get("/", a.getSession)
		r.Post("/login", a.login)
		r.Post("/register", a.register)
		r.Post("/logout", a.logout)
		r.Post("/refresh", a.refresh)
	})

	// telas
	r.Group(func(r chi.Router) {
		r.Use(a.guardPages)
		r.Get("/login", a.loginPage)
		r.Get("/register", a.registerPage)
		r.Get("/", a.home)
		r.Get("/bets", a.bets)
		r.Get("/create-bet", a.createBetPage)
		r.Get("/bet/{betId}", a.betDetail)
		r.Get("/ranking", a.ranking)
		r.Get("/profile", a.profile)
	})

	// ações
	r.Group(func(r chi.Router) {
		r.Use(a.requireSession)
		r.Post("/create-bet", a.createBet)
		r.Post("/bet/{betId}/vote", a.vote)
		r.Post("/bet/{betId}/resolve", a.resolve)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, guard.PathHome, http.StatusSeeOther)
	})
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) log() *zap.Logger {
	if a.Log == nil {
		return zap.NewNop()
	}
	return a.Log
}
