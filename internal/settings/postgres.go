package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps settings in site_settings(key text primary key,
// value jsonb not null, updated_at timestamptz not null default now()).
type PostgresStore struct{ DB *pgxpool.Pool }

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := s.DB.QueryRow(ctx, `SELECT value::text FROM site_settings WHERE key=$1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select setting %s: %w", key, err)
	}
	return raw, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO site_settings(key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
