package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/difficulty"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/mastery"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/quiz"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/generator"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/worker"
)

// StartTopicQuiz validates the request, derives the quiz difficulty from
// the topic's stored mastery (unless overridden), fetches a question batch
// and returns the new session on its first question. On generation failure
// the session is returned in the failed state alongside the error, so the
// caller can retry it.
func (s *QuizService) StartTopicQuiz(ctx context.Context, languageID, topicID string, count int, locale string, overrideDifficulty *int) (*quiz.Session, error) {
	if topicID == "" {
		return nil, validationErrorf("topicId is required")
	}
	if !s.catalog.HasLanguage(languageID) {
		return nil, validationErrorf("unknown programming language %q", languageID)
	}
	if !s.catalog.IsTopic(languageID, topicID) {
		return nil, validationErrorf("unknown topic %q for language %q", topicID, languageID)
	}
	if !generator.SupportedLocale(locale) {
		return nil, validationErrorf("unsupported language code %q", locale)
	}

	diff := s.topicDifficulty(ctx, languageID, topicID, overrideDifficulty)

	entry := &sessionEntry{
		sess: quiz.NewSession(uuid.NewString(), languageID, topicID),
		req: quizRequest{
			languageID: languageID,
			topicIDs:   []string{topicID},
			count:      clampCount(count),
			difficulty: diff,
			locale:     locale,
		},
	}
	s.register(entry)

	err := s.fetch(ctx, entry)
	return entry.sess, err
}

// StartMixedQuiz starts a session drawing questions from several topics.
// With no topic ids given, three topics are picked uniformly at random from
// the language's curriculum. Invalid topic ids are dropped; a non-empty
// request in which nothing survives validation is rejected.
func (s *QuizService) StartMixedQuiz(ctx context.Context, languageID string, topicIDs []string, count int, locale string, overrideDifficulty *int) (*quiz.Session, error) {
	if !s.catalog.HasLanguage(languageID) {
		return nil, validationErrorf("unknown programming language %q", languageID)
	}
	if !generator.SupportedLocale(locale) {
		return nil, validationErrorf("unsupported language code %q", locale)
	}

	if len(topicIDs) > MaxTopicIDs {
		topicIDs = topicIDs[:MaxTopicIDs]
	}

	pinned := len(topicIDs) > 0
	var selected []string
	for _, id := range topicIDs {
		if s.catalog.IsTopic(languageID, id) {
			selected = append(selected, id)
		}
	}
	if pinned && len(selected) == 0 {
		return nil, validationErrorf("no valid topic ids")
	}
	if !pinned {
		selected = s.pickTopics(s.catalog.TopicIDs(languageID), MixedTopicCount)
		if len(selected) == 0 {
			return nil, validationErrorf("language %q has no topics", languageID)
		}
	}

	diff := s.mixedDifficulty(ctx, languageID, selected, pinned, overrideDifficulty)

	entry := &sessionEntry{
		sess: quiz.NewSession(uuid.NewString(), languageID, ""),
		req: quizRequest{
			languageID: languageID,
			topicIDs:   selected,
			count:      clampCount(count),
			difficulty: diff,
			locale:     locale,
		},
	}
	s.register(entry)

	err := s.fetch(ctx, entry)
	return entry.sess, err
}

// Retry restarts the fetch of a failed session from scratch.
func (s *QuizService) Retry(ctx context.Context, sessionID string) (*quiz.Session, error) {
	entry, ok := s.entry(sessionID)
	if !ok {
		return nil, validationErrorf("unknown session %q", sessionID)
	}
	if err := entry.sess.Retry(); err != nil {
		return entry.sess, err
	}
	err := s.fetch(ctx, entry)
	return entry.sess, err
}

// fetch requests the session's question batch and installs it. Topic
// sessions issue one request; mixed sessions fan the per-topic requests out
// through a worker pool, then shuffle the combined pool and trim it to the
// requested count.
func (s *QuizService) fetch(ctx context.Context, entry *sessionEntry) error {
	req := entry.req

	var questions []quiz.Question
	if len(req.topicIDs) == 1 {
		batch, err := s.gen.Questions(ctx, req.languageID, req.topicIDs[0], req.count, req.difficulty, req.locale)
		if err != nil {
			s.logger.Error("question generation failed",
				"session", entry.sess.ID, "topic", req.topicIDs[0], "error", err)
			entry.sess.Fail()
			return err
		}
		questions = batch
	} else {
		questions = s.fetchMixed(ctx, entry)
		if len(questions) == 0 {
			entry.sess.Fail()
			return &generator.GenerateError{Reason: "no questions generated for any topic"}
		}
		questions = quiz.Truncate(s.shuffleQuestions(questions), req.count)
	}

	for i, q := range questions {
		questions[i] = s.shuffleOptions(q)
	}

	return entry.sess.Begin(questions)
}

type topicBatch struct {
	questions []quiz.Question
	err       error
}

// fetchMixed over-requests ceil(count/k) questions per topic in parallel and
// concatenates whatever succeeded. Over-generation is cheap; the excess is
// discarded after shuffling. Per-topic failures are tolerated as long as at
// least one topic delivers.
func (s *QuizService) fetchMixed(ctx context.Context, entry *sessionEntry) []quiz.Question {
	req := entry.req
	perTopic := quiz.PerTopicCount(req.count, len(req.topicIDs))

	pool := worker.NewPool[topicBatch](MixedTopicCount, len(req.topicIDs))
	defer pool.Close()

	for _, topicID := range req.topicIDs {
		id := topicID
		pool.Submit(id, func() topicBatch {
			batch, err := s.gen.Questions(ctx, req.languageID, id, perTopic, req.difficulty, req.locale)
			return topicBatch{questions: batch, err: err}
		})
	}

	var combined []quiz.Question
	for range req.topicIDs {
		r := <-pool.Results()
		if r.Output.err != nil {
			s.logger.Warn("topic batch failed in mixed quiz",
				"session", entry.sess.ID, "topic", r.TaskID, "error", r.Output.err)
			continue
		}
		combined = append(combined, r.Output.questions...)
	}
	return combined
}

// topicDifficulty derives the quiz difficulty for a single topic from its
// stored mastery level. Storage read failures degrade to the default level.
func (s *QuizService) topicDifficulty(ctx context.Context, languageID, topicID string, override *int) int {
	if override != nil {
		return difficulty.ClampQuizLevel(float64(*override), difficulty.Beginner)
	}
	pd := s.loadProgressOrDefault(ctx)
	return difficulty.FromMastery(float64(pd.SkillLevel(mastery.Key(languageID, topicID))))
}

// mixedDifficulty picks one shared difficulty for a mixed quiz. Pinned
// topics average their own stored levels; a random selection averages all
// known levels for the language, so an experienced learner is not dropped
// back to beginner questions by the luck of the draw.
func (s *QuizService) mixedDifficulty(ctx context.Context, languageID string, topicIDs []string, pinned bool, override *int) int {
	if override != nil {
		return difficulty.ClampQuizLevel(float64(*override), difficulty.Beginner)
	}
	pd := s.loadProgressOrDefault(ctx)

	var levels []float64
	if pinned {
		for _, id := range topicIDs {
			levels = append(levels, float64(pd.SkillLevel(mastery.Key(languageID, id))))
		}
	} else {
		for key, p := range pd.TopicProgress {
			if p == nil {
				continue
			}
			if key == mastery.Key(languageID, p.TopicID) {
				levels = append(levels, float64(p.SkillLevel))
			}
		}
	}
	return difficulty.FromAverageMastery(levels, difficulty.Beginner)
}
