package storage

import (
	"context"
	"fmt"

	"github.com/radieske/paris-web-client/internal/session"
	"github.com/radieske/paris-web-client/internal/shared/cache"
	"github.com/radieske/paris-web-client/internal/shared/config"
	"github.com/radieske/paris-web-client/internal/shared/db"
)

// Opened é o armazenamento escolhido pela configuração, com o fechamento
// das conexões e a checagem de saúde do backend durável
type Opened struct {
	Store session.TokenStore
	Kind  string
	Ping  func(ctx context.Context) error
	Close func() error
}

// Open cria o TokenStore indicado por cfg.TokenStore
func Open(ctx context.Context, cfg config.Config) (*Opened, error) {
	noop := func() error { return nil }
	alive := func(context.Context) error { return nil }

	switch cfg.TokenStore {
	case config.StoreMemory:
		return &Opened{Store: session.NewMemoryTokenStore(""), Kind: cfg.TokenStore, Ping: alive, Close: noop}, nil

	case config.StoreFile, "":
		return &Opened{Store: NewFileStore(cfg.TokenFile), Kind: config.StoreFile, Ping: alive, Close: noop}, nil

	case config.StoreRedis:
		rdb, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return &Opened{
			Store: NewRedisStore(rdb),
			Kind:  cfg.TokenStore,
			Ping:  func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			Close: rdb.Close,
		}, nil

	case config.StorePostgres:
		pg, err := db.ConnectPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureStorageSchema(ctx, pg); err != nil {
			_ = pg.Close()
			return nil, err
		}
		return &Opened{Store: NewPostgresStore(pg), Kind: cfg.TokenStore, Ping: pg.PingContext, Close: pg.Close}, nil
	}

	return nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
}
