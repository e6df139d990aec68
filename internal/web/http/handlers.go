package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/paris-web-client/internal/api/dto"
	"github.com/radieske/paris-web-client/internal/display"
	"github.com/radieske/paris-web-client/internal/forms"
	"github.com/radieske/paris-web-client/internal/guard"
	"github.com/radieske/paris-web-client/internal/session"
	"github.com/radieske/paris-web-client/internal/views"
)

type sessionResponse struct {
	State         session.State `json:"state"`
	Authenticated bool          `json:"authenticated"`
	Loading       bool          `json:"loading"`
	User          *dto.User     `json:"user,omitempty"`
}

type resultResponse struct {
	session.Result
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

type credentials struct {
	Login           string `json:"login"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type selection struct {
	OptionIndex        *int `json:"option_index"`
	WinningOptionIndex *int `json:"winning_option_index"`
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	s := a.Session.Snapshot()
	writeJSON(w, http.StatusOK, sessionResponse{
		State:         s.State,
		Authenticated: guard.IsAuthenticated(s),
		Loading:       s.Loading,
		User:          s.User,
	})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, resultResponse{Result: session.Result{Error: forms.MsgFieldsRequired}})
		return
	}
	req, verr := forms.Login(c.Login, c.Password)
	if verr != nil {
		writeJSON(w, http.StatusBadRequest, resultResponse{Result: session.Result{Error: verr.Message}, Field: verr.Field})
		return
	}

	res := a.Session.Login(r.Context(), req)
	if !res.Success {
		writeJSON(w, http.StatusUnauthorized, resultResponse{Result: res})
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: res, Redirect: guard.PathHome})
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, resultResponse{Result: session.Result{Error: forms.MsgFieldsRequired}})
		return
	}
	req, verr := forms.Register(c.Login, c.Password, c.ConfirmPassword)
	if verr != nil {
		writeJSON(w, http.StatusBadRequest, resultResponse{Result: session.Result{Error: verr.Message}, Field: verr.Field})
		return
	}

	res := a.Session.Register(r.Context(), req)
	if !res.Success {
		writeJSON(w, http.StatusBadRequest, resultResponse{Result: res})
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: res, Redirect: guard.PathLogin})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	a.Session.Logout(r.Context())
	writeJSON(w, http.StatusOK, resultResponse{Result: session.Result{Success: true}, Redirect: guard.PathLogin})
}

func (a *API) refresh(w http.ResponseWriter, r *http.Request) {
	res := a.Session.Refresh(r.Context())
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnauthorized
		if guard.IsAuthenticated(a.Session.Snapshot()) {
			status = http.StatusBadGateway
		}
	}
	writeJSON(w, status, resultResponse{Result: res})
}

func (a *API) loginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"route": "login", "fields": []string{"login", "password"}})
}

func (a *API) registerPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"route": "register", "fields": []string{"login", "password", "confirm_password"}})
}

func (a *API) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Pages.Home(r.Context()))
}

func (a *API) bets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, a.Pages.Bets(r.Context(), display.Filter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		League: q.Get("league"),
	}))
}

func (a *API) betDetail(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Pages.BetDetail(r.Context(), chi.URLParam(r, "betId")))
}

func (a *API) createBetPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, views.NewBetForm())
}

func (a *API) createBet(w http.ResponseWriter, r *http.Request) {
	var f forms.CreateBet
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	m := a.Pages.CreateBet(r.Context(), f)
	writeJSON(w, statusFor(m.Error, m.Field != ""), m)
}

func (a *API) vote(w http.ResponseWriter, r *http.Request) {
	var sel selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	m := a.Pages.Vote(r.Context(), chi.URLParam(r, "betId"), sel.OptionIndex)
	writeJSON(w, statusFor(m.Error, false), m)
}

func (a *API) resolve(w http.ResponseWriter, r *http.Request) {
	var sel selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	m := a.Pages.Resolve(r.Context(), chi.URLParam(r, "betId"), sel.WinningOptionIndex)
	writeJSON(w, statusFor(m.Error, false), m)
}

func (a *API) ranking(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Pages.Ranking(r.Context(), r.URL.Query().Get("league")))
}

func (a *API) profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Pages.Profile(r.Context()))
}

// statusFor: telas respondem 200 com o erro no modelo; ações recusadas respondem 422
func statusFor(errMsg string, validation bool) int {
	switch {
	case errMsg == "":
		return http.StatusOK
	case validation:
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
