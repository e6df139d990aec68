// Package guard decide a navegação a partir do estado da sessão.
package guard

import (
	"strings"

	"github.com/radieske/paris-web-client/internal/session"
)

// Access define quem pode abrir uma rota
type Access int

const (
	Public    Access = iota // só anônimos; autenticados vão para Home
	Protected               // só autenticados; anônimos vão para Login
)

// Caminhos de redirecionamento
const (
	PathHome  = "/"
	PathLogin = "/login"
)

// Route é uma entrada da tabela de rotas; segmentos {x} são parâmetros
type Route struct {
	Name    string
	Pattern string
	Access  Access
}

// Routes é a tabela de navegação da aplicação
var Routes = []Route{
	{Name: "login", Pattern: "/login", Access: Public},
	{Name: "register", Pattern: "/register", Access: Public},
	{Name: "home", Pattern: "/", Access: Protected},
	{Name: "bets", Pattern: "/bets", Access: Protected},
	{Name: "create-bet", Pattern: "/create-bet", Access: Protected},
	{Name: "bet", Pattern: "/bet/{betId}", Access: Protected},
	{Name: "ranking", Pattern: "/ranking", Access: Protected},
	{Name: "profile", Pattern: "/profile", Access: Protected},
}

// Decision é o resultado da navegação para um caminho
type Decision struct {
	Allow    bool              `json:"allow"`
	Redirect string            `json:"redirect,omitempty"`
	Route    string            `json:"route,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
}

// IsAuthenticated é o predicado de acesso: presença do token
func IsAuthenticated(s session.Session) bool {
	return s.Token != ""
}

// Resolve aplica as regras de acesso; caminhos desconhecidos voltam para Home
func Resolve(path string, s session.Session) Decision {
	r, params, ok := Match(path)
	if !ok {
		return Decision{Redirect: PathHome}
	}

	authed := IsAuthenticated(s)
	switch {
	case r.Access == Public && authed:
		return Decision{Redirect: PathHome, Route: r.Name}
	case r.Access == Protected && !authed:
		return Decision{Redirect: PathLogin, Route: r.Name}
	}
	return Decision{Allow: true, Route: r.Name, Params: params}
}

// Match encontra a rota do caminho, ignorando query e barra final
func Match(path string) (Route, map[string]string, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segs := split(path)

	for _, r := range Routes {
		pat := split(r.Pattern)
		if len(pat) != len(segs) {
			continue
		}
		params := map[string]string{}
		matched := true
		for i, p := range pat {
			if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
				params[p[1:len(p)-1]] = segs[i]
				continue
			}
			if p != segs[i] {
				matched = false
				break
			}
		}
		if matched {
			if len(params) == 0 {
				params = nil
			}
			return r, params, true
		}
	}
	return Route{}, nil, false
}

// Path monta o caminho de uma rota substituindo os parâmetros
func Path(name string, params map[string]string) string {
	for _, r := range Routes {
		if r.Name != name {
			continue
		}
		out := r.Pattern
		for k, v := range params {
			out = strings.ReplaceAll(out, "{"+k+"}", v)
		}
		return out
	}
	return PathHome
}

func split(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
