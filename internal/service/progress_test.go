package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/mastery"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/streak"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/service"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/store"
)

func TestTopics_JoinsProgressWithCatalog(t *testing.T) {
	st := &memStore{}
	pd := mastery.NewProgressData()
	practiced := testNow.AddDate(0, 0, -2)
	pd.Apply("javascript", "loops", 10, 8, practiced)
	pd.SetSkillLevel("javascript", "loops", 90) // level 2, 3-day interval
	st.progress = &pd

	s := newTestService(t, st, &fakeGenerator{})

	topics, err := s.Topics(context.Background(), "javascript")
	require.NoError(t, err)
	require.NotEmpty(t, topics)

	byID := map[string]service.TopicStatus{}
	for _, ts := range topics {
		byID[ts.Topic.ID] = ts
	}

	loops := byID["loops"]
	assert.Equal(t, 2, loops.SkillLevel)
	assert.Equal(t, 10, loops.Answered)
	assert.Equal(t, 8, loops.Correct)
	assert.False(t, loops.Due, "practiced 2 days ago at a 3-day interval")
	assert.Equal(t, 1, loops.DaysUntilDue)

	// Never-practiced topics are always due.
	variables := byID["variables"]
	assert.True(t, variables.Due)
	assert.Equal(t, 1, variables.SkillLevel)
	assert.Zero(t, variables.DaysUntilDue)
}

func TestDueTopics_FiltersToDue(t *testing.T) {
	st := &memStore{}
	pd := mastery.NewProgressData()
	pd.Apply("javascript", "loops", 5, 5, testNow.Add(-time.Hour))
	st.progress = &pd

	s := newTestService(t, st, &fakeGenerator{})

	due, err := s.DueTopics(context.Background(), "javascript")
	require.NoError(t, err)

	for _, ts := range due {
		assert.True(t, ts.Due)
		assert.NotEqual(t, "loops", ts.Topic.ID, "freshly practiced topic must not be due")
	}
	assert.Len(t, due, len(mustTopics(t, s))-1)
}

func mustTopics(t *testing.T, s *service.QuizService) []service.TopicStatus {
	t.Helper()
	all, err := s.Topics(context.Background(), "javascript")
	require.NoError(t, err)
	return all
}

func TestStreak_SnapshotDecays(t *testing.T) {
	st := &memStore{}
	old, _ := streak.Record(streak.New(), testNow.AddDate(0, 0, -5))
	st.streak = &old

	s := newTestService(t, st, &fakeGenerator{})

	got := s.Streak(context.Background())
	assert.Zero(t, got.CurrentStreak, "stale streak reads as broken")
	assert.Equal(t, 1, got.BestStreak)

	// The decay is read-only: stored state is untouched.
	stored, err := st.LoadStreak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CurrentStreak)
}

func TestProgress_DefaultsOnMissing(t *testing.T) {
	s := newTestService(t, &memStore{}, &fakeGenerator{})

	pd := s.Progress(context.Background())
	assert.Zero(t, pd.TotalQuestions)
	assert.NotNil(t, pd.TopicProgress)
}

func TestResetData(t *testing.T) {
	st := &memStore{}
	pd := mastery.NewProgressData()
	pd.Apply("javascript", "loops", 1, 1, testNow)
	st.progress = &pd

	s := newTestService(t, st, &fakeGenerator{})
	require.NoError(t, s.ResetData(context.Background()))

	assert.Zero(t, s.Progress(context.Background()).TotalQuestions)
}

func TestExplain(t *testing.T) {
	s := newTestService(t, &memStore{}, &fakeGenerator{})
	ctx := context.Background()

	text, err := s.Explain(ctx, "javascript", "loops", "de")
	require.NoError(t, err)
	assert.Equal(t, "## loops", text)

	var verr *service.ValidationError
	_, err = s.Explain(ctx, "javascript", "", "en")
	assert.ErrorAs(t, err, &verr)
	_, err = s.Explain(ctx, "javascript", "loops", "xx")
	assert.ErrorAs(t, err, &verr)
}

func TestSettings_DefaultAndRoundTrip(t *testing.T) {
	st := &memStore{}
	s := newTestService(t, st, &fakeGenerator{})
	ctx := context.Background()

	got := s.Settings(ctx)
	assert.Equal(t, "en", got.Locale)
	assert.NotEmpty(t, got.ActiveLanguageID)

	require.NoError(t, s.SaveSettings(ctx, store.Settings{Locale: "de", ActiveLanguageID: "python"}))
	got = s.Settings(ctx)
	assert.Equal(t, "de", got.Locale)
	assert.Equal(t, "python", got.ActiveLanguageID)

	var verr *service.ValidationError
	err := s.SaveSettings(ctx, store.Settings{Locale: "xx", ActiveLanguageID: "python"})
	assert.ErrorAs(t, err, &verr)
}
