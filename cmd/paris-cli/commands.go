package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/paris-web-client/internal/display"
	"github.com/radieske/paris-web-client/internal/forms"
	"github.com/radieske/paris-web-client/internal/guard"
	"github.com/radieske/paris-web-client/internal/views"
)

type command func(ctx context.Context, a *app, args []string) int

var commands = map[string]command{
	"login":    loginCmd,
	"register": registerCmd,
	"logout":   logoutCmd,
	"whoami":   whoamiCmd,
	"home":     homeCmd,
	"bets":     betsCmd,
	"bet":      betCmd,
	"create":   createCmd,
	"vote":     voteCmd,
	"resolve":  resolveCmd,
	"ranking":  rankingCmd,
	"profile":  profileCmd,
}

// stringList acumula flags repetidas (-option A -option B)
type stringList []string

func (l *stringList) String() string     { return strings.Join(*l, ",") }
func (l *stringList) Set(v string) error { *l = append(*l, v); return nil }

// navigate aplica o guard ao caminho do comando; em redirecionamento avisa e devolve false
func (a *app) navigate(path string) bool {
	d := guard.Resolve(path, a.store.Snapshot())
	if d.Allow {
		return true
	}
	switch d.Redirect {
	case guard.PathLogin:
		fmt.Fprintln(a.err, "Vous n'êtes pas connecté. Utilisez: paris-cli login -login L -password P")
	default:
		fmt.Fprintln(a.err, "Vous êtes déjà connecté. Utilisez: paris-cli logout")
	}
	return false
}

func newFlags(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// optionFlag devolve nil quando -option não foi informado
func optionFlag(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

// betArg separa o id posicional das flags, aceito antes ou depois delas
func betArg(fs *flag.FlagSet, args []string) (string, error) {
	var id string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if id == "" && fs.NArg() > 0 {
		id = fs.Arg(0)
	}
	if id == "" {
		return "", fmt.Errorf("missing bet id")
	}
	return id, nil
}

func loginCmd(ctx context.Context, a *app, args []string) int {
	fs := newFlags("login")
	login := fs.String("login", "", "login")
	password := fs.String("password", "", "mot de passe")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !a.navigate(guard.PathLogin) {
		return 1
	}

	req, ferr := forms.Login(*login, *password)
	if ferr != nil {
		return a.fail(ferr.Message)
	}
	if res := a.store.Login(ctx, req); !res.Success {
		return a.fail(res.Error)
	}
	s := a.store.Snapshot()
	return a.print(s, func() { renderSession(a.out, s) })
}

func registerCmd(ctx context.Context, a *app, args []string) int {
	fs := newFlags("register")
	login := fs.String("login", "", "login")
	password := fs.String("password", "", "mot de passe")
	confirm := fs.String("confirm", "", "confirmation du mot de passe")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !a.navigate(guard.Path("register", nil)) {
		return 1
	}

	req, ferr := forms.Register(*login, *password, *confirm)
	if ferr != nil {
		return a.fail(ferr.Message)
	}
	res := a.store.Register(ctx, req)
	if !res.Success {
		return a.fail(res.Error)
	}
	return a.print(res, func() {
		fmt.Fprintln(a.out, "Inscription réussie ! Connectez-vous avec: paris-cli login")
	})
}

func logoutCmd(ctx context.Context, a *app, _ []string) int {
	a.store.Logout(ctx)
	s := a.store.Snapshot()
	return a.print(s, func() { fmt.Fprintln(a.out, "Déconnecté") })
}

func whoamiCmd(_ context.Context, a *app, _ []string) int {
	s := a.store.Snapshot()
	return a.print(s, func() { renderSession(a.out, s) })
}

func homeCmd(ctx context.Context, a *app, _ []string) int {
	if !a.navigate(guard.PathHome) {
		return 1
	}
	m := a.pages.Home(ctx)
	return a.print(m, func() { renderHome(a.out, m) }, m.Error)
}

func betsCmd(ctx context.Context, a *app, args []string) int {
	fs := newFlags("bets")
	var f display.Filter
	fs.StringVar(&f.Search, "search", "", "recherche dans le titre et la description")
	fs.StringVar(&f.Status, "status", display.FilterAll, "all | active | resolved")
	fs.StringVar(&f.League, "league", display.FilterAll, "ligue")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !a.navigate(guard.Path("bets", nil)) {
		return 1
	}
	m := a.pages.Bets(ctx, f)
	return a.print(m, func() { renderBets(a.out, m) }, m.Error)
}

func betCmd(ctx context.Context, a *app, args []string) int {
	id, err := betArg(newFlags("bet"), args)
	if err != nil {
		return a.usage(err)
	}
	if !a.navigate(guard.Path("bet", map[string]string{"betId": id})) {
		return 1
	}
	m := a.pages.BetDetail(ctx, id)
	return a.print(m, func() { renderBetDetail(a.out, m) }, m.Error)
}

func createCmd(ctx context.Context, a *app, args []string) int {
	fs := newFlags("create")
	var f forms.CreateBet
	var options stringList
	fs.StringVar(&f.Title, "title", "", "titre")
	fs.StringVar(&f.Description, "description", "", "description")
	fs.StringVar(&f.League, "league", forms.DefaultLeague, "ligue")
	fs.Var(&options, "option", "option (répéter de 2 à 6 fois)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !a.navigate(guard.Path("create-bet", nil)) {
		return 1
	}
	f.Options = options

	m := a.pages.CreateBet(ctx, f)
	return a.print(m, func() { renderCreate(a.out, m) }, m.Error)
}

func voteCmd(ctx context.Context, a *app, args []string) int {
	return selectCmd(ctx, a, "vote", args, a.pages.Vote)
}

func resolveCmd(ctx context.Context, a *app, args []string) int {
	return selectCmd(ctx, a, "resolve", args, a.pages.Resolve)
}

// selectCmd é o fluxo comum de vote e resolve: id + índice de opção
func selectCmd(ctx context.Context, a *app, name string, args []string, act func(context.Context, string, *int) views.BetDetailModel) int {
	fs := newFlags(name)
	option := fs.Int("option", -1, "index de l'option (à partir de 0)")
	id, err := betArg(fs, args)
	if err != nil {
		return a.usage(err)
	}
	if !a.navigate(guard.Path("bet", map[string]string{"betId": id})) {
		return 1
	}
	m := act(ctx, id, optionFlag(*option))
	return a.print(m, func() { renderBetDetail(a.out, m) }, m.Error)
}

func rankingCmd(ctx context.Context, a *app, args []string) int {
	fs := newFlags("ranking")
	league := fs.String("league", views.LeagueGlobal, strings.Join(forms.RankingLeagues, " | "))
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !a.navigate(guard.Path("ranking", nil)) {
		return 1
	}
	m := a.pages.Ranking(ctx, *league)
	return a.print(m, func() { renderRanking(a.out, m) }, m.Error)
}

func profileCmd(ctx context.Context, a *app, _ []string) int {
	if !a.navigate(guard.Path("profile", nil)) {
		return 1
	}
	m := a.pages.Profile(ctx)
	return a.print(m, func() { renderProfile(a.out, m) }, m.Error)
}

func (a *app) fail(msg string) int {
	fmt.Fprintln(a.err, msg)
	return 1
}

func (a *app) usage(err error) int {
	fmt.Fprintf(a.err, "%v\n\n%s", err, usage)
	return 2
}

// print escreve o modelo (JSON ou texto); a primeira mensagem de erro não vazia vira exit 1
func (a *app) print(model any, text func(), errs ...string) int {
	if a.json {
		if err := writeJSON(a.out, model); err != nil {
			a.log.Error("encode output", zap.Error(err))
			return 1
		}
	} else {
		text()
	}
	for _, e := range errs {
		if e != "" {
			if !a.json {
				fmt.Fprintln(a.err, e)
			}
			return 1
		}
	}
	return 0
}
