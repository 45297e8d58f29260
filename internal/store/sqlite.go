package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/mastery"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/streak"
)

const schema = `
CREATE TABLE IF NOT EXISTS app_state (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// SQLiteStore implements Store over a single key/value table holding one
// JSON record per fixed key. Each save is a single upsert, so an entity
// update is atomic; updates across entities are intentionally not
// transactional (a local single-user cache, not a ledger).
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens (and if needed initializes) the database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// get reads the raw JSON under a key.
func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// set upserts the JSON under a key.
func (s *SQLiteStore) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().Unix())
	return err
}

// load reads and unmarshals a key into out. Parse failures surface as
// ErrCorrupt wrapping the json error.
func (s *SQLiteStore) load(ctx context.Context, key string, out any) error {
	data, err := s.get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

func (s *SQLiteStore) LoadProgress(ctx context.Context) (mastery.ProgressData, error) {
	var pd mastery.ProgressData
	if err := s.load(ctx, KeyProgress, &pd); err != nil {
		return mastery.ProgressData{}, err
	}
	if pd.TopicProgress == nil {
		pd.TopicProgress = make(map[string]*mastery.TopicProgress)
	}
	return pd, nil
}

func (s *SQLiteStore) SaveProgress(ctx context.Context, pd mastery.ProgressData) error {
	return s.set(ctx, KeyProgress, pd)
}

func (s *SQLiteStore) LoadStreak(ctx context.Context) (streak.Data, error) {
	var d streak.Data
	if err := s.load(ctx, KeyStreak, &d); err != nil {
		return streak.Data{}, err
	}
	return d, nil
}

func (s *SQLiteStore) SaveStreak(ctx context.Context, d streak.Data) error {
	return s.set(ctx, KeyStreak, d)
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) (Settings, error) {
	var st Settings
	if err := s.load(ctx, KeySettings, &st); err != nil {
		return Settings{}, err
	}
	return st, nil
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, st Settings) error {
	return s.set(ctx, KeySettings, st)
}

func (s *SQLiteStore) Reset(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM app_state WHERE key IN ("+placeholders+")", args...)
	return err
}
