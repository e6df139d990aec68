package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/radieske/paris-web-client/internal/activity/producer"
	"github.com/radieske/paris-web-client/internal/api"
	"github.com/radieske/paris-web-client/internal/session"
	"github.com/radieske/paris-web-client/internal/session/storage"
	"github.com/radieske/paris-web-client/internal/shared/config"
	"github.com/radieske/paris-web-client/internal/shared/kafka"
	"github.com/radieske/paris-web-client/internal/shared/logger"
	"github.com/radieske/paris-web-client/internal/shared/metrics"
	"github.com/radieske/paris-web-client/internal/views"
	httpapi "github.com/radieske/paris-web-client/internal/web/http"
	"github.com/radieske/paris-web-client/internal/web/ws"
)

func main() {
	if os.Getenv("SERVICE_NAME") == "" {
		_ = os.Setenv("SERVICE_NAME", "paris-web")
	}
	cfg := config.Load()

	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// métricas em registry próprio
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewClient(reg)

	// armazenamento do token
	tokens, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal("token storage", zap.String("store", cfg.TokenStore), zap.Error(err))
	}
	defer tokens.Close()
	log.Info("token storage ready", zap.String("store", tokens.Kind))

	// cliente da API
	client := api.New(cfg.APIBaseURL)
	client.OnRequest = m.ObserveRequest

	// publicação de atividade (opcional)
	var pub producer.Publisher = producer.Noop{}
	brokers := cfg.Brokers()
	if len(brokers) > 0 {
		writer := kafka.NewWriter(brokers, cfg.TopicActivity)
		defer writer.Close()
		dlq := kafka.NewWriter(brokers, cfg.TopicActivityDLQ)
		defer dlq.Close()

		kp := producer.NewKafkaPublisher(writer, cfg.TopicActivity)
		kp.DLQ = dlq
		kp.OnPublished = m.ActivityPublished
		kp.OnError = m.ActivityFailed

		async := producer.NewAsync(producer.NewBestEffort(kp, log, 3*time.Second), 256, log)
		async.OnDropped = m.ActivityDropped
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = async.Close(closeCtx)
		}()
		pub = async
		log.Info("kafka writer ready", zap.String("topic", cfg.TopicActivity), zap.String("dlq", cfg.TopicActivityDLQ))
	}

	// sessão
	store := session.NewStore(client, tokens.Store, log.Named("session"))
	hub := ws.NewHub(allowOrigin(cfg.CORSOrigins), store.Snapshot, log.Named("ws"))
	hub.OnClients = m.SetWSClients
	store.Subscribe(func(c session.Change) { m.ObserveTransition(string(c.To), c.Reason) })
	store.Subscribe(hub.SessionListener())
	store.Subscribe(producer.SessionListener(pub))
	store.Restore(ctx)
	log.Info("session restored", zap.String("state", string(store.Snapshot().State)))

	// HTTP
	a := &httpapi.API{
		Log:         log.Named("http"),
		Session:     store,
		Pages:       views.NewService(client, store, pub, log.Named("views")),
		WS:          hub.HandleWS,
		CORSOrigins: cfg.CORSOrigins,
	}
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	health := func(ctx context.Context) error {
		if err := tokens.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", tokens.Kind, err)
		}
		if len(brokers) > 0 {
			if err := kafka.Ping(ctx, brokers); err != nil {
				return err
			}
		}
		return nil
	}
	msrv := metrics.StartMetricsServer(cfg.MetricsPort, reg, health)
	log.Info("metrics/health", zap.String("addr", msrv.Addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = msrv.Shutdown(shutdownCtx)
	}()

	log.Info("paris-web listening", zap.String("addr", srv.Addr), zap.String("api", client.BaseURL))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http", zap.Error(err))
	}
}

// allowOrigin aceita requisições sem Origin (mesma máquina) e as origens configuradas
func allowOrigin(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		o := r.Header.Get("Origin")
		if o == "" {
			return true
		}
		for _, allowed := range origins {
			if allowed == "*" || strings.EqualFold(allowed, o) {
				return true
			}
		}
		return false
	}
}
