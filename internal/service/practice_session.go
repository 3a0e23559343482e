package service

import (
	"errors"
	"sync"
	"time"

	"github.com/studylab/certprep/internal/domain/entities"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrNoSelection          = errors.New("no option selected")
	ErrAlreadySubmitted     = errors.New("answer already submitted")
	ErrNotSubmitted         = errors.New("answer not submitted yet")
	ErrInvalidOption        = errors.New("invalid option index")
)

// PracticeSession drives single-question practice: select an option,
// submit to lock it and reveal feedback, then explicitly advance.
type PracticeSession struct {
	mu sync.Mutex

	ID              string
	UserID          string
	CertificationID string
	CertName        string
	DomainFilter    string

	phase     entities.SessionPhase
	questions []entities.GeneratedQuestion
	cursor    int
	selected  int // -1 until the user picks an option
	submitted bool
	attempts  []entities.QuestionAttempt

	createdAt time.Time
}

func newPracticeSession(id, userID string, cert *entities.Certification, domainFilter string, questions []entities.GeneratedQuestion) *PracticeSession {
	return &PracticeSession{
		ID:              id,
		UserID:          userID,
		CertificationID: cert.ID,
		CertName:        cert.Name,
		DomainFilter:    domainFilter,
		phase:           entities.PhaseActive,
		questions:       questions,
		selected:        -1,
		createdAt:       time.Now(),
	}
}

// Current returns the visible question and position, plus whether feedback
// is showing for it.
func (s *PracticeSession) Current() (q entities.GeneratedQuestion, index, total, selected int, submitted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < len(s.questions) {
		q = s.questions[s.cursor]
	}
	return q, s.cursor, len(s.questions), s.selected, s.submitted
}

// Select picks an option for the current question. Selection stays mutable
// until submitted, then freezes.
func (s *PracticeSession) Select(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != entities.PhaseActive {
		return ErrSessionNotActive
	}
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if option < 0 || option >= len(s.questions[s.cursor].Options) {
		return ErrInvalidOption
	}

	s.selected = option
	return nil
}

// Submit locks the current selection, records an immutable attempt and
// reveals correctness.
func (s *PracticeSession) Submit() (entities.QuestionAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != entities.PhaseActive {
		return entities.QuestionAttempt{}, ErrSessionNotActive
	}
	if s.submitted {
		return entities.QuestionAttempt{}, ErrAlreadySubmitted
	}
	if s.selected < 0 {
		return entities.QuestionAttempt{}, ErrNoSelection
	}

	q := s.questions[s.cursor]
	attempt := entities.QuestionAttempt{
		Question:      q,
		SelectedIndex: s.selected,
		Correct:       s.selected == q.CorrectIndex,
		AnsweredAt:    time.Now(),
	}
	s.attempts = append(s.attempts, attempt)
	s.submitted = true

	return attempt, nil
}

// Next advances past a submitted question; after the last one the session
// transitions to review.
func (s *PracticeSession) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != entities.PhaseActive {
		return ErrSessionNotActive
	}
	if !s.submitted {
		return ErrNotSubmitted
	}

	s.cursor++
	s.selected = -1
	s.submitted = false

	if s.cursor >= len(s.questions) {
		s.phase = entities.PhaseReview
	}
	return nil
}

// Phase returns the session's lifecycle state.
func (s *PracticeSession) Phase() entities.SessionPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Summary returns passed/failed counters over the recorded attempts.
func (s *PracticeSession) Summary() (passed, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attempts {
		if a.Correct {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Review returns the attempts matching the filter.
func (s *PracticeSession) Review(filter entities.ReviewFilter) []entities.QuestionAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	return out
}

func (s *PracticeSession) expired(now time.Time, retention time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.createdAt) > retention
}
