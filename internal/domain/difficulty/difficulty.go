// Package difficulty maps mastery levels (1-5) onto the three quiz
// difficulty buckets the question generator understands.
package difficulty

import "math"

// Quiz difficulty buckets.
const (
	Beginner     = 1
	Intermediate = 2
	Advanced     = 3
)

// FromMastery converts a mastery level into a quiz difficulty. The input is
// a float so callers can pass averages; any value up to 2 maps to beginner,
// up to 3 to intermediate, everything above to advanced. Non-finite input
// falls back to beginner.
func FromMastery(level float64) int {
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return Beginner
	}
	switch {
	case level <= 2:
		return Beginner
	case level <= 3:
		return Intermediate
	default:
		return Advanced
	}
}

// FromAverageMastery picks one shared difficulty for a multi-topic quiz from
// the individual mastery levels of its topics. With no levels at all it
// returns the fallback unchanged.
func FromAverageMastery(levels []float64, fallback int) int {
	if len(levels) == 0 {
		return fallback
	}
	sum := 0.0
	for _, l := range levels {
		sum += l
	}
	return FromMastery(sum / float64(len(levels)))
}

// ClampMastery coerces an externally supplied value into a valid mastery
// level. Non-finite input is replaced by the fallback before clamping, so
// the result is always in [1,5].
func ClampMastery(v float64, fallback int) int {
	return clamp(v, fallback, 1, 5)
}

// ClampQuizLevel coerces an externally supplied value into a valid quiz
// difficulty in [1,3].
func ClampQuizLevel(v float64, fallback int) int {
	return clamp(v, fallback, 1, 3)
}

func clamp(v float64, fallback, min, max int) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = float64(fallback)
	}
	n := int(v)
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
