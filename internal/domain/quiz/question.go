// Package quiz holds the multiple-choice question model and the single
// active quiz session state machine.
package quiz

import "math/rand"

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Question is one AI-generated multiple-choice question. Immutable once
// generated; clients may permute the option order as long as CorrectIndex
// is remapped consistently.
type Question struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Code         string   `json:"code,omitempty"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Valid reports whether the question has exactly four options and a correct
// index pointing at one of them.
func (q Question) Valid() bool {
	return len(q.Options) == OptionCount &&
		q.CorrectIndex >= 0 && q.CorrectIndex < OptionCount
}

// CorrectAnswer returns the text of the correct option, or "" for an
// invalid question.
func (q Question) CorrectAnswer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// ShuffleOptions returns a copy of q with the options in random order and
// CorrectIndex pointing at the correct option's new position. If the
// correct option cannot be located after the permutation the original
// question is returned unmodified rather than producing an invalid index.
func ShuffleOptions(q Question, rng *rand.Rand) Question {
	if !q.Valid() {
		return q
	}
	correct := q.Options[q.CorrectIndex]

	options := make([]string, len(q.Options))
	copy(options, q.Options)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	newIndex := -1
	for i, opt := range options {
		if opt == correct {
			newIndex = i
			break
		}
	}
	if newIndex == -1 {
		return q
	}

	q.Options = options
	q.CorrectIndex = newIndex
	return q
}

// ShuffleQuestions returns a new slice with the questions in random order.
func ShuffleQuestions(questions []Question, rng *rand.Rand) []Question {
	shuffled := make([]Question, len(questions))
	copy(shuffled, questions)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// PerTopicCount apportions a requested total across k topics: each topic is
// asked for ceil(total/k) questions. The combined pool is over-generated on
// purpose and trimmed after shuffling.
func PerTopicCount(total, topics int) int {
	if topics <= 0 {
		return total
	}
	return (total + topics - 1) / topics
}

// Truncate trims a question pool to at most n entries.
func Truncate(questions []Question, n int) []Question {
	if n < len(questions) {
		return questions[:n]
	}
	return questions
}
