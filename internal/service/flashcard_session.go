package service

import (
	"errors"
	"sync"
	"time"

	"github.com/studylab/certprep/internal/domain/entities"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionNotActive = errors.New("session is not active")
	ErrNoCards          = errors.New("no cards available")
	ErrNotFlipped       = errors.New("card has not been revealed yet")
)

// FlashcardSession drives one run of flashcard review: one card visible at
// a time, flip to reveal, mark known/missed, no going back. Reaching the
// end moves the session to review.
type FlashcardSession struct {
	mu sync.Mutex

	ID              string
	UserID          string
	CertificationID string
	CertName        string

	phase    entities.SessionPhase
	cards    []entities.GeneratedFlashcard
	savedIDs []int64 // non-zero when studying a saved deck
	cursor   int
	flipped  bool
	attempts []entities.CardAttempt

	createdAt time.Time
}

func newFlashcardSession(id, userID string, cert *entities.Certification, cards []entities.GeneratedFlashcard, savedIDs []int64) *FlashcardSession {
	return &FlashcardSession{
		ID:              id,
		UserID:          userID,
		CertificationID: cert.ID,
		CertName:        cert.Name,
		phase:           entities.PhaseActive,
		cards:           cards,
		savedIDs:        savedIDs,
		createdAt:       time.Now(),
	}
}

// Current returns the visible card and the session's position.
func (s *FlashcardSession) Current() (card entities.GeneratedFlashcard, index, total int, flipped bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < len(s.cards) {
		card = s.cards[s.cursor]
	}
	return card, s.cursor, len(s.cards), s.flipped
}

// Flip reveals the back of the current card.
func (s *FlashcardSession) Flip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != entities.PhaseActive {
		return ErrSessionNotActive
	}
	s.flipped = true
	return nil
}

// Mark records the outcome for the current card and advances the cursor.
// The returned attempt is immutable; reaching the end transitions the
// session to review.
func (s *FlashcardSession) Mark(known bool) (entities.CardAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != entities.PhaseActive {
		return entities.CardAttempt{}, ErrSessionNotActive
	}
	if !s.flipped {
		return entities.CardAttempt{}, ErrNotFlipped
	}

	var savedID int64
	if s.savedIDs != nil {
		savedID = s.savedIDs[s.cursor]
	}

	attempt := entities.CardAttempt{
		Card:    s.cards[s.cursor],
		Known:   known,
		SavedID: savedID,
	}
	s.attempts = append(s.attempts, attempt)
	s.cursor++
	s.flipped = false

	if s.cursor >= len(s.cards) {
		s.phase = entities.PhaseReview
	}

	return attempt, nil
}

// Phase returns the session's lifecycle state.
func (s *FlashcardSession) Phase() entities.SessionPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Summary returns known/missed counters over the recorded attempts.
func (s *FlashcardSession) Summary() (known, missed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attempts {
		if a.Known {
			known++
		} else {
			missed++
		}
	}
	return known, missed
}

// Review returns the attempts matching the filter. Only meaningful once
// the session reached review, but safe to call at any time.
func (s *FlashcardSession) Review(filter entities.ReviewFilter) []entities.CardAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.CardAttempt, 0, len(s.attempts))
	for _, a := range s.attempts {
		switch filter {
		case entities.FilterCorrect:
			if !a.Known {
				continue
			}
		case entities.FilterIncorrect:
			if a.Known {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// StudyAgain reruns the same deck from the top, discarding all attempts.
func (s *FlashcardSession) StudyAgain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = 0
	s.flipped = false
	s.attempts = nil
	s.phase = entities.PhaseActive
}

func (s *FlashcardSession) expired(now time.Time, retention time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.createdAt) > retention
}
