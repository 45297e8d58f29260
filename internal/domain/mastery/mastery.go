package mastery

import (
	"fmt"
	"time"
)

// Skill levels run from 1 (just started) to 5 (mastered).
const (
	MinSkillLevel = 1
	MaxSkillLevel = 5
)

// SkillLevelIntervals maps a skill level to the spaced-repetition review
// interval in days. A topic at level 1 comes back the next day, a mastered
// topic only after a month.
var SkillLevelIntervals = map[int]int{
	1: 1,
	2: 3,
	3: 7,
	4: 14,
	5: 30,
}

// TopicProgress tracks practice history for a single topic.
type TopicProgress struct {
	TopicID           string     `json:"topicId"`
	QuestionsAnswered int        `json:"questionsAnswered"`
	CorrectAnswers    int        `json:"correctAnswers"`
	SkillLevel        int        `json:"skillLevel"`
	LastPracticed     *time.Time `json:"lastPracticed,omitempty"`
}

// ProgressData is the whole persisted progress state: global counters plus
// one TopicProgress per practiced topic, keyed by Key(languageID, topicID).
type ProgressData struct {
	TotalQuestions int                       `json:"totalQuestions"`
	CorrectAnswers int                       `json:"correctAnswers"`
	TopicProgress  map[string]*TopicProgress `json:"topicProgress"`
	Achievements   []string                  `json:"achievements"`
}

// NewProgressData returns an empty progress container, the documented
// default when nothing has been persisted yet.
func NewProgressData() ProgressData {
	return ProgressData{
		TopicProgress: make(map[string]*TopicProgress),
		Achievements:  []string{},
	}
}

// Key builds the topic-progress map key for a topic within a curriculum
// language.
func Key(languageID, topicID string) string {
	return fmt.Sprintf("%s:%s", languageID, topicID)
}

// interval returns the review interval for a level, clamping out-of-range
// levels into [MinSkillLevel, MaxSkillLevel] so stale persisted data cannot
// produce a zero interval.
func interval(level int) int {
	if level < MinSkillLevel {
		level = MinSkillLevel
	}
	if level > MaxSkillLevel {
		level = MaxSkillLevel
	}
	return SkillLevelIntervals[level]
}

// daysSince is the number of whole days elapsed between last and now.
func daysSince(last, now time.Time) int {
	d := now.Sub(last)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// IsDue reports whether a topic should be reviewed. A topic with no progress
// record, or one that has never been practiced, is always due. Otherwise it
// becomes due once the elapsed whole days reach the level's interval.
func IsDue(p *TopicProgress, now time.Time) bool {
	if p == nil || p.LastPracticed == nil {
		return true
	}
	return daysSince(*p.LastPracticed, now) >= interval(p.SkillLevel)
}

// DaysUntilDue returns how many days remain until the topic is due again.
// Due (or never-practiced) topics report 0.
func DaysUntilDue(p *TopicProgress, now time.Time) int {
	if p == nil || p.LastPracticed == nil {
		return 0
	}
	remaining := interval(p.SkillLevel) - daysSince(*p.LastPracticed, now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// NextSkillLevel applies the promotion rules after a completed quiz:
// 80% or better moves the level up, below 50% moves it down, anything in
// between leaves it alone. The guards keep the result inside [1,5].
func NextSkillLevel(level int, scorePercent float64) int {
	if scorePercent >= 80 && level < MaxSkillLevel {
		return level + 1
	}
	if scorePercent < 50 && level > MinSkillLevel {
		return level - 1
	}
	return level
}

// Topic returns the progress entry for a key, or nil when the topic has
// never been practiced.
func (pd *ProgressData) Topic(key string) *TopicProgress {
	if pd.TopicProgress == nil {
		return nil
	}
	return pd.TopicProgress[key]
}

// SkillLevel returns the stored level for a key, defaulting to
// MinSkillLevel for unknown topics.
func (pd *ProgressData) SkillLevel(key string) int {
	if p := pd.Topic(key); p != nil {
		return p.SkillLevel
	}
	return MinSkillLevel
}

// ensureTopic looks up or default-initializes the entry for a key.
func (pd *ProgressData) ensureTopic(key, topicID string) *TopicProgress {
	if pd.TopicProgress == nil {
		pd.TopicProgress = make(map[string]*TopicProgress)
	}
	p, ok := pd.TopicProgress[key]
	if !ok {
		p = &TopicProgress{TopicID: topicID, SkillLevel: MinSkillLevel}
		pd.TopicProgress[key] = p
	}
	return p
}

// Apply accumulates a completed session into both the topic entry and the
// global counters, and stamps the topic as practiced now. Counters only ever
// grow; correct is capped at answered to preserve the invariant
// CorrectAnswers <= QuestionsAnswered.
func (pd *ProgressData) Apply(languageID, topicID string, answered, correct int, now time.Time) {
	if answered < 0 {
		answered = 0
	}
	if correct < 0 {
		correct = 0
	}
	if correct > answered {
		correct = answered
	}

	p := pd.ensureTopic(Key(languageID, topicID), topicID)
	p.QuestionsAnswered += answered
	p.CorrectAnswers += correct
	t := now
	p.LastPracticed = &t

	pd.TotalQuestions += answered
	pd.CorrectAnswers += correct
}

// SetSkillLevel applies NextSkillLevel to the entry for the given topic,
// default-initializing it when absent.
func (pd *ProgressData) SetSkillLevel(languageID, topicID string, scorePercent float64) int {
	p := pd.ensureTopic(Key(languageID, topicID), topicID)
	p.SkillLevel = NextSkillLevel(p.SkillLevel, scorePercent)
	return p.SkillLevel
}

// HasAchievement reports whether the named achievement was already earned.
func (pd *ProgressData) HasAchievement(name string) bool {
	for _, a := range pd.Achievements {
		if a == name {
			return true
		}
	}
	return false
}

// AddAchievement records an achievement once; duplicates are ignored.
func (pd *ProgressData) AddAchievement(name string) bool {
	if pd.HasAchievement(name) {
		return false
	}
	pd.Achievements = append(pd.Achievements, name)
	return true
}
