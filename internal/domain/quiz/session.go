package quiz

import (
	"errors"
	"sync"
)

// State is the lifecycle phase of a Session.
type State string

const (
	StateLoading   State = "loading"   // question batch requested, not yet available
	StateActive    State = "active"    // current question shown, awaiting an answer
	StateRevealed  State = "revealed"  // answer submitted, correctness shown
	StateCompleted State = "completed" // all questions answered, summary available
	StateFailed    State = "failed"    // loading failed; Retry re-enters loading
)

var (
	ErrNoQuestions  = errors.New("quiz: question batch is empty")
	ErrInvalidState = errors.New("quiz: operation not valid in current state")
	ErrOptionRange  = errors.New("quiz: option index out of range")
)

// AnswerRecord is one entry in the session's answer log, appended when the
// user advances past a revealed question.
type AnswerRecord struct {
	QuestionID    string `json:"questionId"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Summary is the terminal payload of a completed session.
type Summary struct {
	SessionID  string         `json:"sessionId"`
	LanguageID string         `json:"languageId"`
	TopicID    string         `json:"topicId,omitempty"`
	Score      int            `json:"score"`
	Total      int            `json:"total"`
	Answers    []AnswerRecord `json:"answers"`
}

// Session is one in-flight quiz run: an ordered question list, a cursor,
// and the answer/reveal cycle. A session is owned by the flow that created
// it; the internal mutex only serializes duplicate requests for the same
// session, it does not make sessions shareable.
type Session struct {
	mu sync.Mutex

	ID         string
	LanguageID string
	TopicID    string // empty for a mixed quiz

	state     State
	questions []Question
	current   int
	selected  int // -1 when nothing is selected
	revealed  bool
	answers   []AnswerRecord

	// advancing guards the advance operation: a duplicate advance while
	// one is in flight is dropped, never queued, so the answer log cannot
	// receive two entries for one question.
	advancing bool
}

// NewSession creates a session in the loading state. TopicID is empty for
// mixed quizzes.
func NewSession(id, languageID, topicID string) *Session {
	return &Session{
		ID:         id,
		LanguageID: languageID,
		TopicID:    topicID,
		state:      StateLoading,
		selected:   -1,
	}
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin installs the fetched question batch and moves the session to the
// first question. An empty batch moves the session to failed instead.
func (s *Session) Begin(questions []Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading {
		return ErrInvalidState
	}
	if len(questions) == 0 {
		s.state = StateFailed
		return ErrNoQuestions
	}

	s.questions = questions
	s.current = 0
	s.selected = -1
	s.revealed = false
	s.answers = nil
	s.state = StateActive
	return nil
}

// Fail marks a loading session as failed (transport or generation error).
func (s *Session) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		s.state = StateFailed
	}
}

// Retry re-enters the loading state from failed. The fetch restarts from
// scratch; nothing of the failed attempt survives.
func (s *Session) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateFailed {
		return ErrInvalidState
	}
	s.questions = nil
	s.current = 0
	s.selected = -1
	s.revealed = false
	s.answers = nil
	s.state = StateLoading
	return nil
}

// Select records the user's choice for the current question. Selecting
// again before submitting simply replaces the previous choice.
func (s *Session) Select(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return ErrInvalidState
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return ErrOptionRange
	}
	s.selected = option
	return nil
}

// Submit reveals the current question. Submitting with no selection is a
// guarded no-op, not an error; the caller sees revealed=false. The answer
// log is NOT appended here — that happens on advance, so the log entry
// always captures the final state.
func (s *Session) Submit() (revealed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return false, ErrInvalidState
	}
	if s.selected < 0 {
		return false, nil
	}
	s.revealed = true
	s.state = StateRevealed
	return true, nil
}

// Current returns the question under the cursor together with the current
// selection and reveal flag.
func (s *Session) Current() (q Question, index, selected int, revealed bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive && s.state != StateRevealed {
		return Question{}, 0, 0, false, false
	}
	return s.questions[s.current], s.current, s.selected, s.revealed, true
}

// Questions returns the session's question list.
func (s *Session) Questions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions
}

// AdvanceOutcome reports what an advance did.
type AdvanceOutcome struct {
	// Completed is true for exactly one advance per session: the one that
	// consumed the last question. The caller owning that outcome runs the
	// completion side effects (progress, streak) and then calls Settle.
	Completed bool
	Summary   Summary
}

// Advance moves past a revealed question: it appends the answer record,
// then either shows the next question or completes the session. A duplicate
// advance while one is still being settled is dropped (ok=false), as is an
// advance in any state other than revealed.
func (s *Session) Advance() (AdvanceOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRevealed || s.advancing {
		return AdvanceOutcome{}, false
	}

	q := s.questions[s.current]
	s.answers = append(s.answers, AnswerRecord{
		QuestionID:    q.ID,
		Correct:       s.selected == q.CorrectIndex,
		CorrectAnswer: q.CorrectAnswer(),
	})

	if s.current+1 < len(s.questions) {
		s.current++
		s.selected = -1
		s.revealed = false
		s.state = StateActive
		return AdvanceOutcome{}, true
	}

	// Last question: completion side effects run outside the lock, so the
	// in-flight flag stays up until the owner settles.
	s.advancing = true
	s.state = StateCompleted
	return AdvanceOutcome{Completed: true, Summary: s.summaryLocked()}, true
}

// Settle clears the in-flight advance flag once completion side effects
// have run.
func (s *Session) Settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advancing = false
}

// Summary returns the terminal payload of a completed session.
func (s *Session) Summary() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCompleted {
		return Summary{}, ErrInvalidState
	}
	return s.summaryLocked(), nil
}

func (s *Session) summaryLocked() Summary {
	score := 0
	for _, a := range s.answers {
		if a.Correct {
			score++
		}
	}
	answers := make([]AnswerRecord, len(s.answers))
	copy(answers, s.answers)
	return Summary{
		SessionID:  s.ID,
		LanguageID: s.LanguageID,
		TopicID:    s.TopicID,
		Score:      score,
		Total:      len(s.questions),
		Answers:    answers,
	}
}
