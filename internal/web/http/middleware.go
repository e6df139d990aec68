package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/radieske/paris-web-client/internal/guard"
)

// guardPages aplica as regras de navegação com 303 para o destino
func (a *API) guardPages(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := guard.Resolve(r.URL.Path, a.Session.Snapshot())
		if !d.Allow {
			a.log().Debug("navigation redirected",
				zap.String("path", r.URL.Path), zap.String("redirect", d.Redirect))
			http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireSession recusa ações sem token com 401 e o destino de login
func (a *API) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !guard.IsAuthenticated(a.Session.Snapshot()) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"redirect": guard.PathLogin})
			return
		}
		next.ServeHTTP(w, r)
	})
}
