package service

import (
	"math"
	"sync"
	"time"

	"github.com/studylab/certprep/internal/domain/entities"
)

const (
	// TestDuration is the wall-clock limit for a timed test.
	TestDuration = 30 * time.Minute

	// MinTestQuestions is the floor a timed test is padded up to.
	MinTestQuestions = 20

	// PassingPercent is the minimum percentage counted as a pass.
	PassingPercent = 70
)

// TestState is a snapshot of a running test for the delivery layer.
type TestState struct {
	Questions     []entities.GeneratedQuestion
	Answers       []int
	AnsweredCount int
	Remaining     time.Duration
	Phase         entities.SessionPhase
}

// TestSession is a timed exam simulation. Answers stay mutable and
// navigation is free until submission; the deadline forces a submit.
type TestSession struct {
	mu sync.Mutex

	ID              string
	UserID          string
	CertificationID string
	CertName        string

	phase     entities.SessionPhase
	questions []entities.GeneratedQuestion
	answers   []int // -1 = unanswered
	deadline  time.Time
	timer     *time.Timer
	graded    bool
	outcome   entities.TestOutcome
	attempts  []entities.QuestionAttempt

	createdAt time.Time
}

func newTestSession(id, userID string, cert *entities.Certification, questions []entities.GeneratedQuestion) *TestSession {
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = -1
	}
	now := time.Now()
	return &TestSession{
		ID:              id,
		UserID:          userID,
		CertificationID: cert.ID,
		CertName:        cert.Name,
		phase:           entities.PhaseActive,
		questions:       questions,
		answers:         answers,
		deadline:        now.Add(TestDuration),
		createdAt:       now,
	}
}

// SelectAnswer records or overwrites the answer for a question. Any
// question may be answered in any order while the test is active.
func (s *TestSession) SelectAnswer(question, option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != entities.PhaseActive {
		return ErrSessionNotActive
	}
	if question < 0 || question >= len(s.questions) {
		return ErrInvalidOption
	}
	if option < 0 || option >= len(s.questions[question].Options) {
		return ErrInvalidOption
	}

	s.answers[question] = option
	return nil
}

// State snapshots the session for rendering. Remaining never goes negative.
func (s *TestSession) State() TestState {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make([]int, len(s.answers))
	copy(answers, s.answers)

	answered := 0
	for _, a := range answers {
		if a >= 0 {
			answered++
		}
	}

	remaining := time.Until(s.deadline)
	if remaining < 0 {
		remaining = 0
	}

	return TestState{
		Questions:     s.questions,
		Answers:       answers,
		AnsweredCount: answered,
		Remaining:     remaining,
		Phase:         s.phase,
	}
}

// Submit grades the test and moves the session into submitting while the
// result is persisted. Unanswered questions count as wrong. A second
// submit, whether manual or timer-forced, returns the first outcome.
func (s *TestSession) Submit(forced bool) (entities.TestOutcome, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graded {
		return s.outcome, false, nil
	}
	if s.phase != entities.PhaseActive {
		return entities.TestOutcome{}, false, ErrSessionNotActive
	}

	s.phase = entities.PhaseSubmitting
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.outcome = s.grade(forced)
	s.graded = true
	return s.outcome, true, nil
}

// finishSubmission moves a graded session from submitting to results once
// the persistence attempt is over, succeeded or not.
func (s *TestSession) finishSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graded {
		s.phase = entities.PhaseResults
	}
}

func (s *TestSession) grade(forced bool) entities.TestOutcome {
	score := 0
	byDomain := make(map[string]*entities.DomainScore)
	order := make([]string, 0)
	gradedAt := time.Now()

	for i, q := range s.questions {
		ds, ok := byDomain[q.Domain]
		if !ok {
			ds = &entities.DomainScore{Domain: q.Domain}
			byDomain[q.Domain] = ds
			order = append(order, q.Domain)
		}
		ds.Total++
		correct := s.answers[i] == q.CorrectIndex
		if correct {
			score++
			ds.Correct++
		}
		s.attempts = append(s.attempts, entities.QuestionAttempt{
			Question:      q,
			SelectedIndex: s.answers[i],
			Correct:       correct,
			AnsweredAt:    gradedAt,
		})
	}

	total := len(s.questions)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(score) / float64(total) * 100))
	}

	breakdown := make([]entities.DomainScore, 0, len(order))
	for _, name := range order {
		breakdown = append(breakdown, *byDomain[name])
	}

	return entities.TestOutcome{
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Passed:         percentage >= PassingPercent,
		Forced:         forced,
		Breakdown:      breakdown,
	}
}

// Phase returns the session's lifecycle state.
func (s *TestSession) Phase() entities.SessionPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Outcome returns the graded result after submission.
func (s *TestSession) Outcome() (entities.TestOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.graded {
		return entities.TestOutcome{}, false
	}
	return s.outcome, true
}

// Review returns the graded per-question attempts matching the filter.
// Nothing is available before grading; answers stay hidden until then.
func (s *TestSession) Review(filter entities.ReviewFilter) ([]entities.QuestionAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.graded {
		return nil, ErrNotSubmitted
	}

	out := make([]entities.QuestionAttempt, 0, len(s.attempts))
	for _, a := range s.attempts {
		switch filter {
		case entities.FilterCorrect:
			if !a.Correct {
				continue
			}
		case entities.FilterIncorrect:
			if a.Correct {
				continue
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// setTimer installs the force-submit timer. The session must already be
// stored before the timer is armed.
func (s *TestSession) setTimer(t *time.Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != entities.PhaseActive {
		t.Stop()
		return
	}
	s.timer = t
}

func (s *TestSession) cancelTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *TestSession) expired(now time.Time, retention time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.createdAt) > retention
}
