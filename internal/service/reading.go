package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/domain/entities"
	"github.com/studylab/certprep/internal/repository"
	"github.com/studylab/certprep/internal/storage"
)

const (
	// saveDebounce is how long the tracker waits after the last scroll
	// observation before pushing progress to the store.
	saveDebounce = 2 * time.Second

	// trackerIdleTimeout is how long an open tracker may go without an
	// observation before the reaper closes it.
	trackerIdleTimeout = time.Hour
)

// ReadingService tracks how far a user has scrolled through study
// material and restores the position on return.
type ReadingService struct {
	progress ProgressStore
	trackers *storage.SessionStore[*ReadingTracker]
	debounce time.Duration
	logger   *zap.Logger
}

// NewReadingService creates a reading-progress service.
func NewReadingService(progress ProgressStore, logger *zap.Logger) *ReadingService {
	return &ReadingService{
		progress: progress,
		trackers: storage.NewSessionStore[*ReadingTracker](),
		debounce: saveDebounce,
		logger:   logger,
	}
}

// Restore returns the saved percentage for the material, or 0 when there
// is none. Read failures degrade to no saved progress.
func (s *ReadingService) Restore(ctx context.Context, userID, certificationID string) int {
	if userID == "" {
		return 0
	}

	p, err := s.progress.Get(ctx, userID, certificationID)
	if err != nil {
		if !errors.Is(err, repository.ErrProgressNotFound) {
			s.logger.Warn("failed to load reading progress",
				zap.String("user_id", userID),
				zap.String("certification_id", certificationID),
				zap.Error(err),
			)
		}
		return 0
	}
	return p.Percentage
}

// Records returns all of the user's reading-progress records.
func (s *ReadingService) Records(ctx context.Context, userID string) ([]*entities.ReadingProgress, error) {
	if userID == "" {
		return nil, nil
	}

	records, err := s.progress.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get reading progress records: %w", err)
	}
	return records, nil
}

// Save writes a progress record directly, bypassing any debounce.
func (s *ReadingService) Save(ctx context.Context, userID, certificationID string, percentage int) error {
	if userID == "" {
		return nil
	}

	p := entities.NewReadingProgress(userID, certificationID, percentage)
	if err := s.progress.Upsert(ctx, p); err != nil {
		return fmt.Errorf("save reading progress: %w", err)
	}
	return nil
}

// Track opens a tracker for one reading of one document.
func (s *ReadingService) Track(userID, certificationID string) *ReadingTracker {
	return &ReadingTracker{
		svc:             s,
		userID:          userID,
		certificationID: certificationID,
		lastSeen:        time.Now(),
	}
}

func trackerKey(userID, certificationID string) string {
	return userID + "/" + certificationID
}

// Tracker returns the open tracker for a (user, certification) pair,
// creating one on first use. One tracker per pair.
func (s *ReadingService) Tracker(userID, certificationID string) *ReadingTracker {
	key := trackerKey(userID, certificationID)
	if tracker, ok := s.trackers.Get(key); ok {
		return tracker
	}
	tracker := s.Track(userID, certificationID)
	s.trackers.Store(key, tracker)
	return tracker
}

// CloseTracker closes and removes the tracker for a (user, certification)
// pair. Closing a pair without an open tracker is a no-op.
func (s *ReadingService) CloseTracker(userID, certificationID string) {
	key := trackerKey(userID, certificationID)
	if tracker, ok := s.trackers.Get(key); ok {
		tracker.Close()
		s.trackers.Delete(key)
	}
}

// ReapTrackers closes and removes trackers that have gone without an
// observation for longer than the idle timeout.
func (s *ReadingService) ReapTrackers(now time.Time) (removed int) {
	s.trackers.Range(func(id string, tracker *ReadingTracker) bool {
		if tracker.idle(now, trackerIdleTimeout) {
			tracker.Close()
			removed++
			return true
		}
		return false
	})
	return removed
}

// ReadingTracker turns raw scroll observations into debounced progress
// saves. Progress only ever moves forward within a tracker's lifetime.
type ReadingTracker struct {
	svc             *ReadingService
	userID          string
	certificationID string

	mu       sync.Mutex
	max      int
	timer    *time.Timer
	closed   bool
	lastSeen time.Time
}

// Observe records a scroll position. An unscrollable document counts as
// fully read. A new maximum resets the debounce, so only the latest
// maximum is pushed once scrolling settles.
func (t *ReadingTracker) Observe(scrollTop, scrollHeight, clientHeight float64) int {
	scrollable := scrollHeight - clientHeight

	var pct int
	if scrollable <= 0 {
		pct = 100
	} else {
		pct = int(math.Round(scrollTop / scrollable * 100))
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return t.max
	}
	t.lastSeen = time.Now()

	// only a new maximum schedules a push; scrolling back down after a
	// flush must not re-send the same value
	if pct > t.max {
		t.max = pct
		if t.userID != "" {
			if t.timer != nil {
				t.timer.Stop()
			}
			t.timer = time.AfterFunc(t.svc.debounce, t.flush)
		}
	}
	return t.max
}

// Max returns the highest percentage observed so far.
func (t *ReadingTracker) Max() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.max
}

func (t *ReadingTracker) flush() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	pct := t.max
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := t.svc.Save(ctx, t.userID, t.certificationID, pct); err != nil {
		t.svc.logger.Warn("failed to save reading progress",
			zap.String("user_id", t.userID),
			zap.String("certification_id", t.certificationID),
			zap.Error(err),
		)
	}
}

func (t *ReadingTracker) idle(now time.Time, timeout time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return now.Sub(t.lastSeen) > timeout
}

// Close cancels any pending save without firing it.
func (t *ReadingTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
