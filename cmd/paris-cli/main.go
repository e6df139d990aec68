package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/paris-web-client/internal/activity/producer"
	"github.com/radieske/paris-web-client/internal/api"
	"github.com/radieske/paris-web-client/internal/session"
	"github.com/radieske/paris-web-client/internal/session/storage"
	"github.com/radieske/paris-web-client/internal/shared/config"
	"github.com/radieske/paris-web-client/internal/shared/kafka"
	"github.com/radieske/paris-web-client/internal/shared/logger"
	"github.com/radieske/paris-web-client/internal/views"
)

const usage = `usage: paris-cli [-api URL] [-json] <command> [flags]

commands:
  login      -login L -password P
  register   -login L -password P [-confirm P]
  logout
  whoami
  home
  bets       [-search S] [-status all|active|resolved] [-league L]
  bet        <id>
  create     -title T -description D [-league L] -option A -option B ...
  vote       <id> -option N
  resolve    <id> -option N
  ranking    [-league global|football|...]
  profile
`

func main() {
	os.Exit(cli())
}

// cli monta as dependências e executa o comando; os defers rodam antes do exit
func cli() int {
	if os.Getenv("SERVICE_NAME") == "" {
		_ = os.Setenv("SERVICE_NAME", "paris-cli")
	}
	cfg := config.Load()

	global := flag.NewFlagSet("paris-cli", flag.ExitOnError)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	apiURL := global.String("api", cfg.APIBaseURL, "Paris backend base URL")
	asJSON := global.Bool("json", false, "print view models as JSON")
	_ = global.Parse(os.Args[1:])
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error("token storage", zap.String("store", cfg.TokenStore), zap.Error(err))
		return 1
	}
	defer tokens.Close()

	var pub producer.Publisher = producer.Noop{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		writer := kafka.NewWriter(brokers, cfg.TopicActivity)
		defer writer.Close()
		dlq := kafka.NewWriter(brokers, cfg.TopicActivityDLQ)
		defer dlq.Close()

		kp := producer.NewKafkaPublisher(writer, cfg.TopicActivity)
		kp.DLQ = dlq
		async := producer.NewAsync(producer.NewBestEffort(kp, log, 3*time.Second), 64, log)
		// esvazia a fila antes de fechar os writers
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = async.Close(closeCtx)
		}()
		pub = async
	}

	a := newApp(api.New(*apiURL), tokens.Store, pub, log, os.Stdout, os.Stderr)
	a.json = *asJSON

	return a.run(ctx, global.Args())
}

type app struct {
	store *session.Store
	pages *views.Service
	log   *zap.Logger
	out   io.Writer
	err   io.Writer
	json  bool
}

func newApp(client *api.Client, tokens session.TokenStore, pub producer.Publisher, log *zap.Logger, out, errOut io.Writer) *app {
	store := session.NewStore(client, tokens, log.Named("session"))
	store.Subscribe(producer.SessionListener(pub))
	return &app{
		store: store,
		pages: views.NewService(client, store, pub, log.Named("views")),
		log:   log,
		out:   out,
		err:   errOut,
	}
}

// run restaura a sessão e despacha o subcomando; devolve o exit code
func (a *app) run(ctx context.Context, args []string) int {
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.err, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	a.store.Restore(ctx)
	return cmd(ctx, a, args[1:])
}
