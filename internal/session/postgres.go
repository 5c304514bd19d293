package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store needs; pgxmock
// satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 4
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS session_state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	session_id TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Write replaces any prior session; both keys land in one transaction
// under a shared session id.
func (s *PostgresStore) Write(ctx context.Context, sess Session) error {
	subjectJSON, resultsJSON, err := marshalSession(sess)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal session")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM session_state`); err != nil {
		return eris.Wrap(err, "postgres: clear prior session")
	}

	sessionID := uuid.New().String()
	now := time.Now().UTC()
	for _, kv := range []struct{ key, value string }{
		{keySubject, subjectJSON},
		{keyResults, resultsJSON},
	} {
		if _, err := tx.Exec(ctx,
			`INSERT INTO session_state (key, value, session_id, updated_at) VALUES ($1, $2, $3, $4)`,
			kv.key, kv.value, sessionID, now,
		); err != nil {
			return eris.Wrapf(err, "postgres: insert %s", kv.key)
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit session")
}

// Read returns the current session, or ErrNotFound when the pair is
// incomplete or mismatched.
func (s *PostgresStore) Read(ctx context.Context) (*Session, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key, value, session_id FROM session_state WHERE key IN ($1, $2)`,
		keySubject, keyResults,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query session")
	}
	defer rows.Close()

	values := make(map[string]string, 2)
	ids := make(map[string]string, 2)
	for rows.Next() {
		var key, value, id string
		if err := rows.Scan(&key, &value, &id); err != nil {
			return nil, eris.Wrap(err, "postgres: scan session row")
		}
		values[key] = value
		ids[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate session rows")
	}

	return unmarshalSession(values, ids)
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM session_state`)
	return eris.Wrap(err, "postgres: clear session")
}
