package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/domain/entities"
)

func TestBestResultDerivesMaxRatio(t *testing.T) {
	store := &fakeResultStore{results: []*entities.TestResult{
		{UserID: "u", CertificationID: "c", Score: 10, TotalQuestions: 20, Timestamp: time.Now()},
		{UserID: "u", CertificationID: "c", Score: 18, TotalQuestions: 20, Timestamp: time.Now()},
		{UserID: "u", CertificationID: "c", Score: 12, TotalQuestions: 20, Timestamp: time.Now()},
	}}
	cache := newFakeCache()
	svc := NewResultsService(store, cache, zap.NewNop())

	best := svc.BestResult(context.Background(), "u", "c")
	if best == nil {
		t.Fatal("expected a best result")
	}
	if best.Score != 18 {
		t.Errorf("best score = %d, want 18", best.Score)
	}

	// the derived best lands in the cache
	if cached, ok := cache.GetBest(context.Background(), "u", "c"); !ok || cached.Score != 18 {
		t.Error("best result should be cached after derivation")
	}
}

func TestBestResultCacheHitSkipsStore(t *testing.T) {
	store := &fakeResultStore{getErr: errors.New("store down")}
	cache := newFakeCache()
	cache.SetBest(context.Background(), &entities.TestResult{
		UserID: "u", CertificationID: "c", Score: 9, TotalQuestions: 10,
	})
	svc := NewResultsService(store, cache, zap.NewNop())

	best := svc.BestResult(context.Background(), "u", "c")
	if best == nil || best.Score != 9 {
		t.Errorf("best = %+v, want cached score 9", best)
	}
}

func TestBestResultDegradesToNil(t *testing.T) {
	store := &fakeResultStore{getErr: errors.New("store down")}
	svc := NewResultsService(store, newFakeCache(), zap.NewNop())

	if best := svc.BestResult(context.Background(), "u", "c"); best != nil {
		t.Errorf("read failure should yield nil, got %+v", best)
	}
	if best := svc.BestResult(context.Background(), "", "c"); best != nil {
		t.Errorf("anonymous user should yield nil, got %+v", best)
	}
}

func TestRecordSwallowsFailure(t *testing.T) {
	store := &fakeResultStore{submitErr: errors.New("store down")}
	cache := newFakeCache()
	svc := NewResultsService(store, cache, zap.NewNop())

	svc.Record(context.Background(), "u", "c", entities.TestOutcome{Score: 5, TotalQuestions: 10})

	if len(cache.invalidated) != 0 {
		t.Error("failed submit should not invalidate the cache")
	}
}

func TestRecordSkipsAnonymous(t *testing.T) {
	store := &fakeResultStore{}
	svc := NewResultsService(store, newFakeCache(), zap.NewNop())

	svc.Record(context.Background(), "", "c", entities.TestOutcome{Score: 5, TotalQuestions: 10})

	if got := store.submissionCount(); got != 0 {
		t.Errorf("anonymous record stored %d submissions, want 0", got)
	}
}
