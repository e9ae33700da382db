// Package snapshot keeps the in-progress workout, and any session that is
// waiting for its remote save, in a local SQLite file so both survive a
// restart. Rest timer state is never written here.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/domain"
	log "github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"
)

const (
	DefaultNamespace = "lifttrack-workout"
	FileName         = "lifttrack.db"

	activeKey  = "active"
	pendingKey = "pending"
)

// Store is a small key/value table scoped to one namespace.
type Store struct {
	db        *sql.DB
	namespace string
}

// Open opens (or creates) dir/lifttrack.db. An empty namespace uses DefaultNamespace.
func Open(dir, namespace string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	dsn := filepath.Join(dir, FileName) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshot table: %w", err)
	}

	return &Store{db: db, namespace: namespace}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Put stores value under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)`,
		s.namespace, key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Get returns the value under key and whether it exists.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM snapshots WHERE namespace = ? AND key = ?`,
		s.namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE namespace = ? AND key = ?`,
		s.namespace, key,
	)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) SaveActive(ctx context.Context, w domain.ActiveWorkout) error {
	return s.putJSON(ctx, activeKey, w)
}

func (s *Store) LoadActive(ctx context.Context) (domain.ActiveWorkout, bool, error) {
	var w domain.ActiveWorkout
	ok, err := s.getJSON(ctx, activeKey, &w)
	return w, ok, err
}

func (s *Store) ClearActive(ctx context.Context) error {
	return s.Delete(ctx, activeKey)
}

func (s *Store) SavePending(ctx context.Context, p domain.PendingSession) error {
	return s.putJSON(ctx, pendingKey, p)
}

func (s *Store) LoadPending(ctx context.Context) (domain.PendingSession, bool, error) {
	var p domain.PendingSession
	ok, err := s.getJSON(ctx, pendingKey, &p)
	return p, ok, err
}

func (s *Store) ClearPending(ctx context.Context) error {
	return s.Delete(ctx, pendingKey)
}

// Listener mirrors every machine change into the store: a workout is saved,
// nil clears it. Write failures are logged; the in-memory workout is unaffected.
func (s *Store) Listener() func(*domain.ActiveWorkout) {
	return func(w *domain.ActiveWorkout) {
		ctx := context.Background()
		var err error
		if w == nil {
			err = s.ClearActive(ctx)
		} else {
			err = s.SaveActive(ctx, *w)
		}
		if err != nil {
			log.Errorf("persist active workout snapshot: %s", err)
		}
	}
}

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Put(ctx, key, string(raw))
}

func (s *Store) getJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
