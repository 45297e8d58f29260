package streak_test

import (
	"testing"
	"time"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/streak"
)

// A Wednesday at noon.
var day0 = time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

func countSlots(h [7]bool) int {
	n := 0
	for _, b := range h {
		if b {
			n++
		}
	}
	return n
}

func TestRecord_FirstPractice(t *testing.T) {
	d, changed := streak.Record(streak.New(), day0)

	if !changed {
		t.Error("expected first practice to change state")
	}
	if d.CurrentStreak != 1 || d.BestStreak != 1 {
		t.Errorf("expected streak 1/1, got %d/%d", d.CurrentStreak, d.BestStreak)
	}
	if countSlots(d.WeekHistory) != 1 {
		t.Errorf("expected exactly one week slot, got %d", countSlots(d.WeekHistory))
	}
	if !d.WeekHistory[int(time.Wednesday)] {
		t.Error("expected Wednesday slot to be set")
	}
}

func TestRecord_SameDayNoOp(t *testing.T) {
	d, _ := streak.Record(streak.New(), day0)

	later := day0.Add(5 * time.Hour)
	d2, changed := streak.Record(d, later)

	if changed {
		t.Error("expected same-day practice to be a no-op")
	}
	if d2.CurrentStreak != 1 {
		t.Errorf("expected streak unchanged at 1, got %d", d2.CurrentStreak)
	}
}

func TestRecord_NextDayContinues(t *testing.T) {
	d, _ := streak.Record(streak.New(), day0)
	d, changed := streak.Record(d, day0.AddDate(0, 0, 1))

	if !changed {
		t.Error("expected next-day practice to change state")
	}
	if d.CurrentStreak != 2 || d.BestStreak != 2 {
		t.Errorf("expected streak 2/2, got %d/%d", d.CurrentStreak, d.BestStreak)
	}
	if countSlots(d.WeekHistory) != 2 {
		t.Errorf("expected two week slots, got %d", countSlots(d.WeekHistory))
	}
}

func TestRecord_GapBreaksStreak(t *testing.T) {
	d := streak.New()
	for i := 0; i < 4; i++ {
		d, _ = streak.Record(d, day0.AddDate(0, 0, i))
	}
	if d.CurrentStreak != 4 {
		t.Fatalf("setup: expected streak 4, got %d", d.CurrentStreak)
	}

	// Two-day gap: streak resets to 1, best is preserved, week history
	// keeps only the new day.
	d, _ = streak.Record(d, day0.AddDate(0, 0, 6))
	if d.CurrentStreak != 1 {
		t.Errorf("expected streak reset to 1, got %d", d.CurrentStreak)
	}
	if d.BestStreak != 4 {
		t.Errorf("expected best streak preserved at 4, got %d", d.BestStreak)
	}
	if countSlots(d.WeekHistory) != 1 {
		t.Errorf("expected single week slot after break, got %d", countSlots(d.WeekHistory))
	}
}

func TestRecord_BestNeverBelowCurrent(t *testing.T) {
	d := streak.New()
	for i := 0; i < 10; i++ {
		d, _ = streak.Record(d, day0.AddDate(0, 0, i))
		if d.BestStreak < d.CurrentStreak {
			t.Fatalf("best %d fell below current %d", d.BestStreak, d.CurrentStreak)
		}
	}
}

func TestSnapshot_Decay(t *testing.T) {
	d, _ := streak.Record(streak.New(), day0)

	// Today and yesterday: reported unchanged.
	if got := streak.Snapshot(d, day0); got.CurrentStreak != 1 {
		t.Errorf("expected streak 1 on same day, got %d", got.CurrentStreak)
	}
	if got := streak.Snapshot(d, day0.AddDate(0, 0, 1)); got.CurrentStreak != 1 {
		t.Errorf("expected streak 1 on next day, got %d", got.CurrentStreak)
	}

	// Two days later the streak reads as broken, but the stored value is
	// untouched: only Record persists.
	got := streak.Snapshot(d, day0.AddDate(0, 0, 2))
	if got.CurrentStreak != 0 {
		t.Errorf("expected decayed streak 0, got %d", got.CurrentStreak)
	}
	if countSlots(got.WeekHistory) != 0 {
		t.Error("expected cleared week history in decayed snapshot")
	}
	if d.CurrentStreak != 1 {
		t.Error("Snapshot must not mutate its input")
	}
	if got.BestStreak != 1 {
		t.Errorf("expected best streak preserved, got %d", got.BestStreak)
	}
}

func TestSnapshot_NoHistory(t *testing.T) {
	got := streak.Snapshot(streak.New(), day0)
	if got.CurrentStreak != 0 || got.LastPracticeDate != nil {
		t.Error("expected zero state to pass through Snapshot")
	}
}
