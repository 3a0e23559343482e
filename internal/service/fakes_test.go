package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/studylab/certprep/internal/domain/entities"
	"github.com/studylab/certprep/internal/repository"
)

type fakeCatalog struct {
	certs []*entities.Certification
}

func (c *fakeCatalog) GetByID(id string) (*entities.Certification, error) {
	for _, cert := range c.certs {
		if cert.ID == id {
			return cert, nil
		}
	}
	return nil, repository.ErrCertificationNotFound
}

func (c *fakeCatalog) GetAll() []*entities.Certification {
	return c.certs
}

func (c *fakeCatalog) GetDomain(certID, domainName string) (*entities.Certification, *entities.CertDomain, error) {
	cert, err := c.GetByID(certID)
	if err != nil {
		return nil, nil, err
	}
	if d := cert.DomainByName(domainName); d != nil {
		return cert, d, nil
	}
	return nil, nil, repository.ErrDomainNotFound
}

type savedCard struct {
	userID          string
	certificationID string
	front, back     string
}

type outcomeCall struct {
	cardID int64
	known  bool
}

type fakeFlashcardStore struct {
	mu       sync.Mutex
	saved    []savedCard
	stored   []*entities.Flashcard
	outcomes []outcomeCall
	addErr   error // every Add fails
	failNext int   // this many Add calls fail, then Add recovers
}

func (s *fakeFlashcardStore) Add(_ context.Context, userID, certificationID, front, back string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return s.addErr
	}
	if s.failNext > 0 {
		s.failNext--
		return errors.New("transient store failure")
	}
	s.saved = append(s.saved, savedCard{userID, certificationID, front, back})
	return nil
}

func (s *fakeFlashcardStore) GetByCertification(_ context.Context, userID, certificationID string) ([]*entities.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stored, nil
}

func (s *fakeFlashcardStore) RecordOutcome(_ context.Context, cardID int64, known bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, outcomeCall{cardID, known})
	return nil
}

func (s *fakeFlashcardStore) savedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

type submission struct {
	userID          string
	certificationID string
	score, total    int
}

type fakeResultStore struct {
	mu          sync.Mutex
	submissions []submission
	results     []*entities.TestResult
	submitErr   error
	getErr      error
}

func (s *fakeResultStore) Submit(_ context.Context, userID, certificationID string, score, totalQuestions int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitErr != nil {
		return "", s.submitErr
	}
	s.submissions = append(s.submissions, submission{userID, certificationID, score, totalQuestions})
	return "test-id", nil
}

func (s *fakeResultStore) GetByCertification(_ context.Context, userID, certificationID string) ([]*entities.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.results, nil
}

func (s *fakeResultStore) submissionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submissions)
}

type fakeCache struct {
	mu          sync.Mutex
	best        map[string]*entities.TestResult
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{best: make(map[string]*entities.TestResult)}
}

func (c *fakeCache) GetBest(_ context.Context, userID, certificationID string) (*entities.TestResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.best[userID+"/"+certificationID]
	return r, ok
}

func (c *fakeCache) SetBest(_ context.Context, result *entities.TestResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.best[result.UserID+"/"+result.CertificationID] = result
}

func (c *fakeCache) Invalidate(_ context.Context, userID, certificationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := userID + "/" + certificationID
	delete(c.best, key)
	c.invalidated = append(c.invalidated, key)
}

type progressRecord struct {
	percentage int
	savedAt    time.Time
}

type fakeProgressStore struct {
	mu      sync.Mutex
	records map[string]progressRecord
	saves   []int
	getErr  error
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: make(map[string]progressRecord)}
}

func (s *fakeProgressStore) Upsert(_ context.Context, p *entities.ReadingProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[p.UserID+"/"+p.CertificationID] = progressRecord{p.Percentage, time.Now()}
	s.saves = append(s.saves, p.Percentage)
	return nil
}

func (s *fakeProgressStore) Get(_ context.Context, userID, certificationID string) (*entities.ReadingProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	r, ok := s.records[userID+"/"+certificationID]
	if !ok {
		return nil, repository.ErrProgressNotFound
	}
	return entities.NewReadingProgress(userID, certificationID, r.percentage), nil
}

func (s *fakeProgressStore) GetByUserID(_ context.Context, userID string) ([]*entities.ReadingProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := userID + "/"
	var out []*entities.ReadingProgress
	for key, r := range s.records {
		if strings.HasPrefix(key, prefix) {
			out = append(out, entities.NewReadingProgress(userID, strings.TrimPrefix(key, prefix), r.percentage))
		}
	}
	return out, nil
}

func (s *fakeProgressStore) saveHistory() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.saves...)
}
