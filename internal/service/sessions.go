package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/domain/entities"
	"github.com/studylab/certprep/internal/storage"
)

const (
	// maxSavedCards bounds how many generated cards are persisted per deck.
	maxSavedCards = 20

	// defaultSessionRetention is how long an idle session is kept.
	defaultSessionRetention = 24 * time.Hour
)

// StudyService owns the in-memory study sessions and wires them to the
// content generator and the remote stores.
type StudyService struct {
	catalog   Catalog
	generator *Generator

	flashcardSessions *storage.SessionStore[*FlashcardSession]
	practiceSessions  *storage.SessionStore[*PracticeSession]
	testSessions      *storage.SessionStore[*TestSession]

	flashcards FlashcardStore
	results    *ResultsService

	retention time.Duration
	logger    *zap.Logger
}

// NewStudyService creates the session orchestrator.
func NewStudyService(
	catalog Catalog,
	generator *Generator,
	flashcards FlashcardStore,
	results *ResultsService,
	retention time.Duration,
	logger *zap.Logger,
) *StudyService {
	if retention <= 0 {
		retention = defaultSessionRetention
	}
	return &StudyService{
		catalog:           catalog,
		generator:         generator,
		flashcardSessions: storage.NewSessionStore[*FlashcardSession](),
		practiceSessions:  storage.NewSessionStore[*PracticeSession](),
		testSessions:      storage.NewSessionStore[*TestSession](),
		flashcards:        flashcards,
		results:           results,
		retention:         retention,
		logger:            logger,
	}
}

// Certifications lists the full catalog.
func (s *StudyService) Certifications() []*entities.Certification {
	return s.catalog.GetAll()
}

// Certification looks up a single catalog entry.
func (s *StudyService) Certification(id string) (*entities.Certification, error) {
	return s.catalog.GetByID(id)
}

// StartFlashcards generates a fresh deck for the certification and opens a
// study session over it. The first cards of the deck are persisted
// best-effort for later saved-deck study.
func (s *StudyService) StartFlashcards(ctx context.Context, userID, certificationID string) (*FlashcardSession, error) {
	cert, err := s.catalog.GetByID(certificationID)
	if err != nil {
		return nil, fmt.Errorf("get certification: %w", err)
	}

	cards := s.generator.GenerateFlashcards(cert)
	if len(cards) == 0 {
		return nil, ErrNoCards
	}

	if userID != "" {
		for i, card := range cards {
			if i >= maxSavedCards {
				break
			}
			// per-card failures are skipped, the rest still get saved
			if err := s.flashcards.Add(ctx, userID, cert.ID, card.Front, card.Back); err != nil {
				s.logger.Warn("failed to save flashcard",
					zap.String("user_id", userID),
					zap.String("certification_id", cert.ID),
					zap.Error(err),
				)
				continue
			}
		}
	}

	session := newFlashcardSession(uuid.New().String(), userID, cert, cards, nil)
	s.flashcardSessions.Store(session.ID, session)
	return session, nil
}

// StartSavedDeck opens a study session over the user's previously saved
// flashcards for the certification.
func (s *StudyService) StartSavedDeck(ctx context.Context, userID, certificationID string) (*FlashcardSession, error) {
	cert, err := s.catalog.GetByID(certificationID)
	if err != nil {
		return nil, fmt.Errorf("get certification: %w", err)
	}

	saved, err := s.flashcards.GetByCertification(ctx, userID, cert.ID)
	if err != nil {
		return nil, fmt.Errorf("get saved flashcards: %w", err)
	}
	if len(saved) == 0 {
		return nil, ErrNoCards
	}

	cards := make([]entities.GeneratedFlashcard, len(saved))
	savedIDs := make([]int64, len(saved))
	for i, f := range saved {
		cards[i] = entities.GeneratedFlashcard{Front: f.Front, Back: f.Back}
		savedIDs[i] = f.ID
	}

	session := newFlashcardSession(uuid.New().String(), userID, cert, cards, savedIDs)
	s.flashcardSessions.Store(session.ID, session)
	return session, nil
}

// Flashcards returns an open flashcard session.
func (s *StudyService) Flashcards(sessionID string) (*FlashcardSession, error) {
	session, ok := s.flashcardSessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// MarkCard records the outcome for the current card. For saved decks the
// per-card counters are updated best-effort.
func (s *StudyService) MarkCard(ctx context.Context, sessionID string, known bool) (entities.CardAttempt, error) {
	session, err := s.Flashcards(sessionID)
	if err != nil {
		return entities.CardAttempt{}, err
	}

	attempt, err := session.Mark(known)
	if err != nil {
		return entities.CardAttempt{}, err
	}

	if attempt.SavedID != 0 {
		if err := s.flashcards.RecordOutcome(ctx, attempt.SavedID, known); err != nil {
			s.logger.Warn("failed to record flashcard outcome",
				zap.Int64("card_id", attempt.SavedID),
				zap.Error(err),
			)
		}
	}
	return attempt, nil
}

// StartPractice generates practice questions, optionally limited to one
// domain, and opens a question-by-question session over them.
func (s *StudyService) StartPractice(userID, certificationID, domainFilter string) (*PracticeSession, error) {
	cert, err := s.catalog.GetByID(certificationID)
	if err != nil {
		return nil, fmt.Errorf("get certification: %w", err)
	}
	if domainFilter != "" {
		if _, _, err := s.catalog.GetDomain(cert.ID, domainFilter); err != nil {
			return nil, err
		}
	}

	questions := s.generator.GenerateQuestions(cert, domainFilter)
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	session := newPracticeSession(uuid.New().String(), userID, cert, domainFilter, questions)
	s.practiceSessions.Store(session.ID, session)
	return session, nil
}

// Practice returns an open practice session.
func (s *StudyService) Practice(sessionID string) (*PracticeSession, error) {
	session, ok := s.practiceSessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// StartTest generates a padded question set and opens a timed test. When
// the time limit elapses the test is submitted and recorded as if the
// user had submitted it.
func (s *StudyService) StartTest(userID, certificationID string) (*TestSession, error) {
	cert, err := s.catalog.GetByID(certificationID)
	if err != nil {
		return nil, fmt.Errorf("get certification: %w", err)
	}

	questions := PadQuestions(s.generator.GenerateQuestions(cert, ""), MinTestQuestions)
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	session := newTestSession(uuid.New().String(), userID, cert, questions)
	s.testSessions.Store(session.ID, session)

	session.setTimer(time.AfterFunc(TestDuration, func() {
		s.forceSubmit(session)
	}))
	return session, nil
}

func (s *StudyService) forceSubmit(session *TestSession) {
	outcome, first, err := session.Submit(true)
	if err != nil || !first {
		return
	}

	s.logger.Info("test time expired, submitting",
		zap.String("session_id", session.ID),
		zap.String("user_id", session.UserID),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.results.Record(ctx, session.UserID, session.CertificationID, outcome)
	session.finishSubmission()
}

// Test returns an open test session.
func (s *StudyService) Test(sessionID string) (*TestSession, error) {
	session, ok := s.testSessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SubmitTest grades the test and records the result. Submitting an
// already graded test returns the original outcome.
func (s *StudyService) SubmitTest(ctx context.Context, sessionID string) (entities.TestOutcome, error) {
	session, err := s.Test(sessionID)
	if err != nil {
		return entities.TestOutcome{}, err
	}

	outcome, first, err := session.Submit(false)
	if err != nil {
		return entities.TestOutcome{}, err
	}
	if first {
		s.results.Record(ctx, session.UserID, session.CertificationID, outcome)
		session.finishSubmission()
	}
	return outcome, nil
}

// DiscardFlashcards drops a flashcard session.
func (s *StudyService) DiscardFlashcards(sessionID string) {
	s.flashcardSessions.Delete(sessionID)
}

// DiscardPractice drops a practice session.
func (s *StudyService) DiscardPractice(sessionID string) {
	s.practiceSessions.Delete(sessionID)
}

// DiscardTest drops a test session and cancels its timer.
func (s *StudyService) DiscardTest(sessionID string) {
	if session, ok := s.testSessions.Get(sessionID); ok {
		session.cancelTimer()
	}
	s.testSessions.Delete(sessionID)
}

// Reap removes sessions past the retention window. Expired test sessions
// have their timers cancelled.
func (s *StudyService) Reap() (removed int) {
	now := time.Now()

	s.flashcardSessions.Range(func(id string, session *FlashcardSession) bool {
		if session.expired(now, s.retention) {
			removed++
			return true
		}
		return false
	})
	s.practiceSessions.Range(func(id string, session *PracticeSession) bool {
		if session.expired(now, s.retention) {
			removed++
			return true
		}
		return false
	})
	s.testSessions.Range(func(id string, session *TestSession) bool {
		if session.expired(now, s.retention) {
			session.cancelTimer()
			removed++
			return true
		}
		return false
	})
	return removed
}
