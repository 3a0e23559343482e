package service

import (
	"context"

	"github.com/studylab/certprep/internal/domain/entities"
)

// FlashcardStore persists flashcards in the remote store.
type FlashcardStore interface {
	Add(ctx context.Context, userID, certificationID, front, back string) error
	GetByCertification(ctx context.Context, userID, certificationID string) ([]*entities.Flashcard, error)
	RecordOutcome(ctx context.Context, cardID int64, known bool) error
}

// ResultStore persists completed test submissions.
type ResultStore interface {
	Submit(ctx context.Context, userID, certificationID string, score, totalQuestions int) (string, error)
	GetByCertification(ctx context.Context, userID, certificationID string) ([]*entities.TestResult, error)
}

// ProgressStore persists reading-progress records.
type ProgressStore interface {
	Upsert(ctx context.Context, progress *entities.ReadingProgress) error
	Get(ctx context.Context, userID, certificationID string) (*entities.ReadingProgress, error)
	GetByUserID(ctx context.Context, userID string) ([]*entities.ReadingProgress, error)
}

// QuestionStore persists community-added questions.
type QuestionStore interface {
	Add(ctx context.Context, certificationID, domain, questionText, correctAnswer string) (int64, error)
	GetByCertification(ctx context.Context, certificationID string) ([]*entities.StoredQuestion, error)
}

// BestResultCache caches the derived best result per user and
// certification. Implementations must treat every failure as a miss.
type BestResultCache interface {
	GetBest(ctx context.Context, userID, certificationID string) (*entities.TestResult, bool)
	SetBest(ctx context.Context, result *entities.TestResult)
	Invalidate(ctx context.Context, userID, certificationID string)
}

// Catalog provides read-only certification lookup.
type Catalog interface {
	GetByID(id string) (*entities.Certification, error)
	GetAll() []*entities.Certification
	GetDomain(certID, domainName string) (*entities.Certification, *entities.CertDomain, error)
}
