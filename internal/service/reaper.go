package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReaperService periodically evicts sessions past retention and idle
// reading trackers.
type ReaperService struct {
	study   *StudyService
	reading *ReadingService
	logger  *zap.Logger
}

// NewReaperService creates a session reaper.
func NewReaperService(study *StudyService, reading *ReadingService, logger *zap.Logger) *ReaperService {
	return &ReaperService{study: study, reading: reading, logger: logger}
}

// Start begins the hourly reaping loop and blocks until ctx is done.
func (s *ReaperService) Start(ctx context.Context) {
	s.logger.Info("session reaper started")

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc("0 * * * *", func() {
		sessions := s.study.Reap()
		trackers := s.reading.ReapTrackers(time.Now())
		if sessions > 0 || trackers > 0 {
			s.logger.Info("expired state removed",
				zap.Int("sessions", sessions),
				zap.Int("trackers", trackers),
			)
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()

	<-ctx.Done()

	c.Stop()
	s.logger.Info("session reaper stopped")
}
