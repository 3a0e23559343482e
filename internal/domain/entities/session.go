package entities

import "time"

// SessionPhase is the lifecycle state shared by all three study modes.
// Sessions are born active; flashcard and practice sessions end in
// "review", test sessions pass through "submitting" while the result is
// persisted and end in "results".
type SessionPhase string

const (
	PhaseActive     SessionPhase = "active"
	PhaseSubmitting SessionPhase = "submitting"
	PhaseReview     SessionPhase = "review"
	PhaseResults    SessionPhase = "results"
)

// ReviewFilter selects which attempts a results/review screen shows.
type ReviewFilter string

const (
	FilterAll       ReviewFilter = "all"
	FilterCorrect   ReviewFilter = "correct"
	FilterIncorrect ReviewFilter = "incorrect"
)

// CardAttempt is one response to a flashcard. Immutable once recorded.
type CardAttempt struct {
	Card    GeneratedFlashcard `json:"card"`
	Known   bool               `json:"known"`
	SavedID int64              `json:"savedId"` // persisted card ID when studying a saved deck, else 0
}

// QuestionAttempt is one submitted answer to a generated question.
// Immutable once recorded.
type QuestionAttempt struct {
	Question      GeneratedQuestion `json:"question"`
	SelectedIndex int               `json:"selectedIndex"`
	Correct       bool              `json:"correct"`
	AnsweredAt    time.Time         `json:"answeredAt"`
}

// DomainScore is the per-domain slice of a test result breakdown. Domains
// with no attempts in the session are omitted entirely, never shown 0/0.
type DomainScore struct {
	Domain  string `json:"domain"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// TestOutcome is the locally computed result of a finished test session.
// It is always available to the caller even when remote persistence of the
// score fails.
type TestOutcome struct {
	Score          int           `json:"score"`
	TotalQuestions int           `json:"totalQuestions"`
	Percentage     int           `json:"percentage"`
	Passed         bool          `json:"passed"`
	Forced         bool          `json:"forced"` // submission forced by timer expiry
	Breakdown      []DomainScore `json:"breakdown"`
}
