package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/radieske/paris-web-client/internal/session"
)

var _ session.TokenStore = (*PostgresStore)(nil)

// PostgresStore guarda o token na tabela client_storage (ver shared/db.EnsureStorageSchema)
type PostgresStore struct{ db *sql.DB }

func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

func (p *PostgresStore) Load(ctx context.Context) (string, error) {
	var v string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM client_storage WHERE key=$1`, session.StorageKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

// Save faz upsert da chave
func (p *PostgresStore) Save(ctx context.Context, token string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO client_storage(key, value, updated_at) VALUES($1,$2,NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		session.StorageKey, token)
	return err
}

func (p *PostgresStore) Clear(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM client_storage WHERE key=$1`, session.StorageKey)
	return err
}
