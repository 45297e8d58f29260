// Package service orchestrates the quiz lifecycle: starting sessions,
// driving the answer/reveal cycle, and persisting progress and streak state
// when a session completes.
package service

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/catalog"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/quiz"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/generator"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/store"
)

// Request limits, matching the public API contract.
const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20
	MaxTopicIDs          = 20
	MixedTopicCount      = 3
)

// sessionTTL bounds how long a finished session stays queryable. Completed
// and failed sessions older than this are evicted lazily when a new session
// registers, so the registry cannot grow without bound on a long-running
// server.
const sessionTTL = time.Hour

// ValidationError marks malformed input, rejected before any side effect.
// The API layer maps it to a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// quizRequest captures everything needed to (re)fetch a session's question
// batch, so a retry after failure can restart the fetch from scratch.
type quizRequest struct {
	languageID string
	topicIDs   []string // one entry for topic quizzes, several for mixed
	count      int
	difficulty int
	locale     string
}

type sessionEntry struct {
	sess    *quiz.Session
	req     quizRequest
	created time.Time
}

// QuizService owns the active quiz sessions and their lifecycle.
type QuizService struct {
	store   store.Store
	gen     generator.Generator
	catalog *catalog.Catalog
	logger  *slog.Logger

	now func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

// Option configures a QuizService.
type Option func(*QuizService)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

// WithRand replaces the random source, so tests can fix the seed and assert
// exact permutations.
func WithRand(rng *rand.Rand) Option {
	return func(s *QuizService) { s.rng = rng }
}

// NewQuizService creates the service.
func NewQuizService(st store.Store, gen generator.Generator, cat *catalog.Catalog, logger *slog.Logger, opts ...Option) *QuizService {
	s := &QuizService{
		store:    st,
		gen:      gen,
		catalog:  cat,
		logger:   logger,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions: make(map[string]*sessionEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session looks up an active session by id.
func (s *QuizService) Session(sessionID string) (*quiz.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return entry.sess, true
}

// Remove discards a session. Abandoning a quiz mid-flight needs no other
// cleanup: nothing partial was ever persisted.
func (s *QuizService) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *QuizService) register(entry *sessionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.sessions {
		if now.Sub(e.created) < sessionTTL {
			continue
		}
		switch e.sess.State() {
		case quiz.StateCompleted, quiz.StateFailed:
			delete(s.sessions, id)
		}
	}

	entry.created = now
	s.sessions[entry.sess.ID] = entry
}

func (s *QuizService) entry(sessionID string) (*sessionEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	return entry, ok
}

// shuffleOptions permutes one question's options under the rng lock
// (math/rand sources are not goroutine safe).
func (s *QuizService) shuffleOptions(q quiz.Question) quiz.Question {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return quiz.ShuffleOptions(q, s.rng)
}

func (s *QuizService) shuffleQuestions(qs []quiz.Question) []quiz.Question {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return quiz.ShuffleQuestions(qs, s.rng)
}

// pickTopics samples n topic ids uniformly without replacement.
func (s *QuizService) pickTopics(ids []string, n int) []string {
	if n >= len(ids) {
		picked := make([]string, len(ids))
		copy(picked, ids)
		return picked
	}
	s.rngMu.Lock()
	perm := s.rng.Perm(len(ids))
	s.rngMu.Unlock()

	picked := make([]string, n)
	for i := 0; i < n; i++ {
		picked[i] = ids[perm[i]]
	}
	return picked
}

// clampCount normalizes a requested question count into [1, MaxQuestionCount].
func clampCount(count int) int {
	if count <= 0 {
		return DefaultQuestionCount
	}
	if count > MaxQuestionCount {
		return MaxQuestionCount
	}
	return count
}
