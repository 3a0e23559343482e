package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/domain/entities"
)

// ResultsService records test results and serves per-certification
// history and personal bests.
type ResultsService struct {
	results ResultStore
	cache   BestResultCache
	logger  *zap.Logger
}

// NewResultsService creates a results service.
func NewResultsService(results ResultStore, cache BestResultCache, logger *zap.Logger) *ResultsService {
	return &ResultsService{
		results: results,
		cache:   cache,
		logger:  logger,
	}
}

// Record persists a graded test result. Failures are logged and swallowed
// so a finished test still shows its outcome locally.
func (s *ResultsService) Record(ctx context.Context, userID, certificationID string, outcome entities.TestOutcome) {
	if userID == "" {
		return
	}

	testID, err := s.results.Submit(ctx, userID, certificationID, outcome.Score, outcome.TotalQuestions)
	if err != nil {
		s.logger.Warn("failed to submit test result",
			zap.String("user_id", userID),
			zap.String("certification_id", certificationID),
			zap.Error(err),
		)
		return
	}

	s.cache.Invalidate(ctx, userID, certificationID)

	s.logger.Info("test result recorded",
		zap.String("test_id", testID),
		zap.String("user_id", userID),
		zap.String("certification_id", certificationID),
		zap.Int("score", outcome.Score),
		zap.Int("total", outcome.TotalQuestions),
	)
}

// History returns the user's results for a certification, newest first.
// An anonymous user has no history.
func (s *ResultsService) History(ctx context.Context, userID, certificationID string) ([]*entities.TestResult, error) {
	if userID == "" {
		return nil, nil
	}

	results, err := s.results.GetByCertification(ctx, userID, certificationID)
	if err != nil {
		return nil, fmt.Errorf("get test results: %w", err)
	}
	return results, nil
}

// BestResult returns the user's highest-ratio result for a certification,
// or nil when none exist. Read failures degrade to no history.
func (s *ResultsService) BestResult(ctx context.Context, userID, certificationID string) *entities.TestResult {
	if userID == "" {
		return nil
	}

	if best, ok := s.cache.GetBest(ctx, userID, certificationID); ok {
		return best
	}

	results, err := s.results.GetByCertification(ctx, userID, certificationID)
	if err != nil {
		s.logger.Warn("failed to load test results",
			zap.String("user_id", userID),
			zap.String("certification_id", certificationID),
			zap.Error(err),
		)
		return nil
	}

	var best *entities.TestResult
	for _, r := range results {
		if best == nil || r.Ratio() > best.Ratio() {
			best = r
		}
	}

	if best != nil {
		s.cache.SetBest(ctx, best)
	}
	return best
}
