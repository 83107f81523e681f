package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ycwang-tw/matcha-trip-weather/internal/forecast"
)

// Scheduler refreshes the forecast cache periodically so interactive
// queries mostly hit fresh entries.
type Scheduler struct {
	cron     *cron.Cron
	service  *forecast.Service
	logger   *zap.Logger
	interval time.Duration

	mu      sync.Mutex
	running bool
}

func NewScheduler(service *forecast.Service, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		service:  service,
		logger:   logger,
		interval: interval,
	}
}

func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("Refresh interval disabled, scheduler not started")
		return nil
	}

	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))

	// Warm the cache immediately on start
	go s.refresh()

	return nil
}

func (s *Scheduler) refresh() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Debug("Skipping refresh, previous run still in progress")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	startTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	bundle := s.service.QueryAll(ctx)
	if !bundle.Success {
		s.logger.Error("Scheduled forecast refresh failed",
			zap.String("error", bundle.Error),
			zap.Duration("duration", time.Since(startTime)))
		return
	}

	s.logger.Info("Scheduled forecast refresh completed",
		zap.Duration("duration", time.Since(startTime)))
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}
