package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/starboard-re/comps-cli/internal/model"
	"github.com/starboard-re/comps-cli/pkg/comparable"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path, creating the
// parent directory if needed, and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dsn); dir != "." && dsn != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrap(err, "sqlite: create session dir")
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS session_state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	session_id TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Write replaces any prior session. Both keys are written in one
// transaction, tagged with a shared session id, so a reader can never
// observe a half-written pair.
func (s *SQLiteStore) Write(ctx context.Context, sess Session) error {
	subjectJSON, resultsJSON, err := marshalSession(sess)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal session")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_state`); err != nil {
		return eris.Wrap(err, "sqlite: clear prior session")
	}

	sessionID := uuid.New().String()
	now := time.Now().UTC()
	for key, value := range map[string]string{
		keySubject: subjectJSON,
		keyResults: resultsJSON,
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_state (key, value, session_id, updated_at) VALUES (?, ?, ?, ?)`,
			key, value, sessionID, now,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert %s", key)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit session")
}

// Read returns the current session, or ErrNotFound when either half
// is missing or the halves belong to different writes.
func (s *SQLiteStore) Read(ctx context.Context) (*Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, session_id FROM session_state WHERE key IN (?, ?)`,
		keySubject, keyResults,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query session")
	}
	defer rows.Close() //nolint:errcheck

	values := make(map[string]string, 2)
	ids := make(map[string]string, 2)
	for rows.Next() {
		var key, value, id string
		if err := rows.Scan(&key, &value, &id); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan session row")
		}
		values[key] = value
		ids[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate session rows")
	}

	return unmarshalSession(values, ids)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_state`)
	return eris.Wrap(err, "sqlite: clear session")
}

func marshalSession(sess Session) (subjectJSON, resultsJSON string, err error) {
	sb, err := json.Marshal(sess.Subject)
	if err != nil {
		return "", "", err
	}
	rb, err := json.Marshal(sess.Results)
	if err != nil {
		return "", "", err
	}
	return string(sb), string(rb), nil
}

func unmarshalSession(values, ids map[string]string) (*Session, error) {
	subjectJSON, okSubject := values[keySubject]
	resultsJSON, okResults := values[keyResults]
	if !okSubject || !okResults || ids[keySubject] != ids[keyResults] {
		return nil, ErrNotFound
	}

	var subject model.SubjectProperty
	if err := json.Unmarshal([]byte(subjectJSON), &subject); err != nil {
		return nil, eris.Wrap(err, "session: unmarshal subject")
	}
	var results []comparable.Result
	if err := json.Unmarshal([]byte(resultsJSON), &results); err != nil {
		return nil, eris.Wrap(err, "session: unmarshal results")
	}

	return &Session{Subject: subject, Results: results}, nil
}
