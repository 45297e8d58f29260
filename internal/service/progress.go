package service

import (
	"context"
	"errors"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/catalog"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/mastery"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/streak"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/generator"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/store"
)

// loadProgressOrDefault absorbs storage read failures into the documented
// empty default. Corrupt data is logged, not propagated; the next write
// replaces it.
func (s *QuizService) loadProgressOrDefault(ctx context.Context) mastery.ProgressData {
	pd, err := s.store.LoadProgress(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("falling back to empty progress", "error", err)
		}
		return mastery.NewProgressData()
	}
	return pd
}

func (s *QuizService) loadStreakOrDefault(ctx context.Context) streak.Data {
	sd, err := s.store.LoadStreak(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("falling back to empty streak", "error", err)
		}
		return streak.New()
	}
	return sd
}

// Progress returns the full persisted progress state.
func (s *QuizService) Progress(ctx context.Context) mastery.ProgressData {
	return s.loadProgressOrDefault(ctx)
}

// Streak returns the streak as it should be reported right now, with
// read-time decay applied but never persisted.
func (s *QuizService) Streak(ctx context.Context) streak.Data {
	return streak.Snapshot(s.loadStreakOrDefault(ctx), s.now())
}

// Languages lists the curriculum languages.
func (s *QuizService) Languages() []string {
	return s.catalog.Languages()
}

// TopicStatus is one curriculum topic joined with its practice state.
type TopicStatus struct {
	Topic        catalog.Topic `json:"topic"`
	SkillLevel   int           `json:"skillLevel"`
	Due          bool          `json:"due"`
	DaysUntilDue int           `json:"daysUntilDue"`
	Answered     int           `json:"questionsAnswered"`
	Correct      int           `json:"correctAnswers"`
}

// Topics lists a language's curriculum with per-topic mastery and review
// status, the data behind the topic list screen.
func (s *QuizService) Topics(ctx context.Context, languageID string) ([]TopicStatus, error) {
	if !s.catalog.HasLanguage(languageID) {
		return nil, validationErrorf("unknown programming language %q", languageID)
	}

	pd := s.loadProgressOrDefault(ctx)
	now := s.now()

	topics := s.catalog.Topics(languageID)
	statuses := make([]TopicStatus, len(topics))
	for i, t := range topics {
		p := pd.Topic(mastery.Key(languageID, t.ID))
		status := TopicStatus{
			Topic:        t,
			SkillLevel:   mastery.MinSkillLevel,
			Due:          mastery.IsDue(p, now),
			DaysUntilDue: mastery.DaysUntilDue(p, now),
		}
		if p != nil {
			status.SkillLevel = p.SkillLevel
			status.Answered = p.QuestionsAnswered
			status.Correct = p.CorrectAnswers
		}
		statuses[i] = status
	}
	return statuses, nil
}

// DueTopics filters a language's curriculum down to the topics due for
// review right now.
func (s *QuizService) DueTopics(ctx context.Context, languageID string) ([]TopicStatus, error) {
	all, err := s.Topics(ctx, languageID)
	if err != nil {
		return nil, err
	}
	due := make([]TopicStatus, 0, len(all))
	for _, t := range all {
		if t.Due {
			due = append(due, t)
		}
	}
	return due, nil
}

// ResetData wipes all persisted state. This is the only way topic progress
// is ever deleted.
func (s *QuizService) ResetData(ctx context.Context) error {
	return s.store.Reset(ctx, store.AllKeys...)
}

// Explain generates a topic explanation through the AI collaborator.
func (s *QuizService) Explain(ctx context.Context, languageID, topicID, locale string) (string, error) {
	if topicID == "" {
		return "", validationErrorf("topicId is required")
	}
	if !s.catalog.IsTopic(languageID, topicID) {
		return "", validationErrorf("unknown topic %q for language %q", topicID, languageID)
	}
	if !generator.SupportedLocale(locale) {
		return "", validationErrorf("unsupported language code %q", locale)
	}
	return s.gen.Explanation(ctx, languageID, topicID, locale)
}

// Settings returns the persisted user settings, defaulting to English and
// the first curriculum language.
func (s *QuizService) Settings(ctx context.Context) store.Settings {
	st, err := s.store.LoadSettings(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("falling back to default settings", "error", err)
		}
		st = store.Settings{Locale: generator.LocaleEN}
		if langs := s.catalog.Languages(); len(langs) > 0 {
			st.ActiveLanguageID = langs[0]
		}
	}
	return st
}

// SaveSettings validates and persists user settings.
func (s *QuizService) SaveSettings(ctx context.Context, st store.Settings) error {
	if !generator.SupportedLocale(st.Locale) {
		return validationErrorf("unsupported language code %q", st.Locale)
	}
	if !s.catalog.HasLanguage(st.ActiveLanguageID) {
		return validationErrorf("unknown programming language %q", st.ActiveLanguageID)
	}
	return s.store.SaveSettings(ctx, st)
}
