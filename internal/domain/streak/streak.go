// Package streak implements the daily practice streak: consecutive calendar
// days with at least one completed session, plus a rolling 7-slot
// day-of-week history for the weekly view.
package streak

import "time"

// Data is the persisted streak state. WeekHistory is indexed by weekday
// with 0 = Sunday, matching time.Weekday.
type Data struct {
	CurrentStreak    int        `json:"currentStreak"`
	BestStreak       int        `json:"bestStreak"`
	LastPracticeDate *time.Time `json:"lastPracticeDate,omitempty"`
	WeekHistory      [7]bool    `json:"weekHistory"`
}

// New returns the zero streak state, the documented default when nothing
// has been persisted yet.
func New() Data {
	return Data{}
}

// sameDay compares two instants by calendar date, not 24h windows.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// isYesterday reports whether a falls on the calendar day before b.
func isYesterday(a, b time.Time) bool {
	return sameDay(a, b.AddDate(0, 0, -1))
}

// Record applies one practice event at the given instant and returns the
// updated state plus whether anything changed. A second practice on the
// same calendar day is a no-op, so callers can skip the storage write.
func Record(d Data, now time.Time) (Data, bool) {
	if d.LastPracticeDate != nil && sameDay(*d.LastPracticeDate, now) {
		return d, false
	}

	switch {
	case d.LastPracticeDate == nil:
		// First practice ever.
		d.CurrentStreak = 1
	case isYesterday(*d.LastPracticeDate, now):
		d.CurrentStreak++
	default:
		// Gap of two or more days: the streak is broken, the week view
		// starts over.
		d.CurrentStreak = 1
		d.WeekHistory = [7]bool{}
	}

	d.WeekHistory[int(now.Weekday())] = true
	t := now
	d.LastPracticeDate = &t
	if d.CurrentStreak > d.BestStreak {
		d.BestStreak = d.CurrentStreak
	}
	return d, true
}

// Snapshot returns the state as it should be reported at read time. A
// streak whose last practice is neither today nor yesterday is already
// broken, so it is shown as zero with a cleared week view — but this decay
// is not written back; only Record persists.
func Snapshot(d Data, now time.Time) Data {
	if d.LastPracticeDate == nil {
		return d
	}
	last := *d.LastPracticeDate
	if sameDay(last, now) || isYesterday(last, now) {
		return d
	}
	d.CurrentStreak = 0
	d.WeekHistory = [7]bool{}
	return d
}
