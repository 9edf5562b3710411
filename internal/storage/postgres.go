package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/VictorChidex1/eventflow/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres puts the same key→document contract on a table, for deployments
// where the ledger must outlive the host. One row per key; a Set still
// replaces the whole document, preserving last-writer-wins.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(cfg config.Config) (*Postgres, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.DBUsername,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBDatabase,
		cfg.DBSchema,
	)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, err
	}

	p := &Postgres{db: db}
	if err := p.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

// NewPostgresFromDB wraps an existing connection, used by integration tests.
func NewPostgresFromDB(db *sql.DB) (*Postgres, error) {
	p := &Postgres{db: db}
	if err := p.migrate(context.Background()); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS eventflow_kv (key TEXT PRIMARY KEY, value JSONB NOT NULL)`)
	return err
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRowContext(ctx,
		`SELECT value::text FROM eventflow_kv WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO eventflow_kv (key, value) VALUES ($1, $2::jsonb)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	return err
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM eventflow_kv WHERE key = $1`, key)
	return err
}

// Health pings the database, for the server's health endpoint.
func (p *Postgres) Health(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
