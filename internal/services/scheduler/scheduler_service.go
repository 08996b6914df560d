package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// SweepFunc runs one sweep of recently modified tasks and returns how many
// were processed
type SweepFunc func(ctx context.Context) (int, error)

// Service runs the periodic repair-project sweep on a cron schedule. The
// sweep is a safety net behind webhook delivery; runs never overlap.
type Service struct {
	cron   *cron.Cron
	sweep  SweepFunc
	logger arbor.ILogger

	mu        sync.Mutex
	running   bool
	isRunning bool // Guards against overlapping sweep executions
	lastRun   time.Time
	lastError string
}

// NewService creates a scheduler around the given sweep function
func NewService(sweep SweepFunc, logger arbor.ILogger) *Service {
	return &Service{
		cron:   cron.New(),
		sweep:  sweep,
		logger: logger,
	}
}

// Start begins the scheduler with the given cron expression
func (s *Service) Start(cronExpr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if cronExpr == "" {
		cronExpr = "0 * * * *" // Default: hourly
	}

	if _, err := s.cron.AddFunc(cronExpr, s.runSweep); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().Str("cron_expr", cronExpr).Msg("Scheduler started")
	return nil
}

// Stop halts the scheduler, waiting for an in-flight sweep to finish
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info().Msg("Scheduler stopped")
}

// Status reports the last sweep time and error, if any
func (s *Service) Status() (lastRun time.Time, lastError string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastError
}

func (s *Service) runSweep() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		s.logger.Warn().Msg("Previous sweep still running, skipping this cycle")
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.lastRun = time.Now()
		s.mu.Unlock()
	}()

	processed, err := s.sweep(context.Background())

	s.mu.Lock()
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled sweep failed")
		return
	}
	s.logger.Info().Int("processed", processed).Msg("Scheduled sweep finished")
}
