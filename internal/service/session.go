package service

import (
	"context"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/quiz"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/streak"
)

// Achievement markers maintained on session completion.
const (
	AchievementFirstSession = "first-session"
	AchievementStreakWeek   = "streak-7"
	AchievementTopicMastery = "topic-mastered"
)

// Select records an answer choice on a session.
func (s *QuizService) Select(sessionID string, option int) error {
	sess, ok := s.Session(sessionID)
	if !ok {
		return validationErrorf("unknown session %q", sessionID)
	}
	return sess.Select(option)
}

// Submit reveals the current question of a session.
func (s *QuizService) Submit(sessionID string) (bool, error) {
	sess, ok := s.Session(sessionID)
	if !ok {
		return false, validationErrorf("unknown session %q", sessionID)
	}
	return sess.Submit()
}

// AdvanceResult is what an advance produced: either the next question is up
// (Completed=false) or the session just finished and Summary is set.
type AdvanceResult struct {
	Completed bool
	Summary   quiz.Summary
}

// Advance moves a session past its revealed question. The advance that
// consumes the last question also runs the completion side effects: the
// streak record is persisted, and topic-specific sessions update the
// topic's progress counters and skill level. A duplicate advance request is
// dropped by the session itself and reports Completed=false with no side
// effects.
func (s *QuizService) Advance(ctx context.Context, sessionID string) (AdvanceResult, error) {
	sess, ok := s.Session(sessionID)
	if !ok {
		return AdvanceResult{}, validationErrorf("unknown session %q", sessionID)
	}

	outcome, ok := sess.Advance()
	if !ok || !outcome.Completed {
		return AdvanceResult{}, nil
	}
	defer sess.Settle()

	err := s.persistCompletion(ctx, outcome.Summary)
	return AdvanceResult{Completed: true, Summary: outcome.Summary}, err
}

// persistCompletion records a completed session: one streak event and, for
// topic-specific sessions, the topic's counters and skill level. The two
// writes are independent read-modify-write sequences; storage read failures
// degrade to defaults, write failures propagate.
func (s *QuizService) persistCompletion(ctx context.Context, sum quiz.Summary) error {
	now := s.now()

	sd := s.loadStreakOrDefault(ctx)
	sd, changed := streak.Record(sd, now)
	if changed {
		if err := s.store.SaveStreak(ctx, sd); err != nil {
			s.logger.Error("failed to save streak", "session", sum.SessionID, "error", err)
			return err
		}
	}

	pd := s.loadProgressOrDefault(ctx)

	if sum.TopicID != "" {
		pd.Apply(sum.LanguageID, sum.TopicID, sum.Total, sum.Score, now)
		scorePercent := 0.0
		if sum.Total > 0 {
			scorePercent = 100 * float64(sum.Score) / float64(sum.Total)
		}
		if pd.SetSkillLevel(sum.LanguageID, sum.TopicID, scorePercent) == 5 {
			pd.AddAchievement(AchievementTopicMastery)
		}
	}

	pd.AddAchievement(AchievementFirstSession)
	if sd.CurrentStreak >= 7 {
		pd.AddAchievement(AchievementStreakWeek)
	}

	if err := s.store.SaveProgress(ctx, pd); err != nil {
		s.logger.Error("failed to save progress", "session", sum.SessionID, "error", err)
		return err
	}
	return nil
}
