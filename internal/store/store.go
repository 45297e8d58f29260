// Package store persists the app's local state. All of it lives under a
// handful of fixed keys, but callers never touch keys directly: the Store
// interface exposes one typed load/save pair per entity, so shape errors
// are caught at compile time instead of at JSON-parse time.
package store

import (
	"context"
	"errors"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/mastery"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/streak"
)

var (
	// ErrNotFound means nothing has ever been persisted under a key.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt means a value was present but could not be parsed. Callers
	// decide whether to fall back to a default; the store never substitutes
	// one silently.
	ErrCorrupt = errors.New("stored value is corrupt")
)

// Fixed storage keys. The whole persisted state of the app is these four
// JSON records.
const (
	KeyProfile  = "profile"
	KeyProgress = "progress"
	KeyStreak   = "streak"
	KeySettings = "settings"
)

// AllKeys lists every storage key, for a full data reset.
var AllKeys = []string{KeyProfile, KeyProgress, KeyStreak, KeySettings}

// Settings is the persisted user configuration.
type Settings struct {
	Locale           string `json:"locale"`           // content language: en or de
	ActiveLanguageID string `json:"activeLanguageId"` // current curriculum language
}

// Store is the persistence contract consumed by the services.
type Store interface {
	LoadProgress(ctx context.Context) (mastery.ProgressData, error)
	SaveProgress(ctx context.Context, pd mastery.ProgressData) error

	LoadStreak(ctx context.Context) (streak.Data, error)
	SaveStreak(ctx context.Context, d streak.Data) error

	LoadSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error

	// Reset removes the given keys; missing keys are not an error.
	Reset(ctx context.Context, keys ...string) error
}
