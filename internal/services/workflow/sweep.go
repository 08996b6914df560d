package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/interfaces"
	"github.com/ternarybob/reparo/internal/services/classify"
)

// Sweeper processes recently modified tasks in the repair project. It backs
// the manual /process-recent endpoint and the optional scheduled sweep, as a
// safety net for webhook deliveries that were missed.
type Sweeper struct {
	tasks        interfaces.TaskAPI
	classifier   *classify.Classifier
	orchestrator interfaces.Orchestrator
	projectGID   string
	lookback     time.Duration
	logger       arbor.ILogger
}

// NewSweeper creates a sweeper over the configured repair project
func NewSweeper(tasks interfaces.TaskAPI, classifier *classify.Classifier, orchestrator interfaces.Orchestrator, projectGID string, lookback time.Duration, logger arbor.ILogger) *Sweeper {
	return &Sweeper{
		tasks:        tasks,
		classifier:   classifier,
		orchestrator: orchestrator,
		projectGID:   projectGID,
		lookback:     lookback,
		logger:       logger,
	}
}

// Sweep fetches tasks modified within the lookback window, classifies each,
// and processes the qualifying ones. It returns the number of tasks that were
// actually processed (skipped and non-qualifying tasks are not counted).
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	since := time.Now().Add(-s.lookback)

	summaries, err := s.tasks.ListTasks(ctx, s.projectGID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to list recent tasks: %w", err)
	}

	processed := 0
	for _, summary := range summaries {
		// Re-fetch for current state and full custom fields; list results are thin
		task, err := s.tasks.GetTask(ctx, summary.GID)
		if err != nil {
			s.logger.Warn().Err(err).Str("task", summary.GID).Msg("Failed to fetch task during sweep")
			continue
		}

		if !s.classifier.IsRepairRequest(task) {
			continue
		}

		outcome, err := s.orchestrator.Process(ctx, task)
		if err != nil {
			s.logger.Error().Err(err).Str("task", task.GID).Msg("Sweep processing failed")
			continue
		}
		if outcome != interfaces.OutcomeSkipped {
			processed++
		}
	}

	s.logger.Info().
		Int("candidates", len(summaries)).
		Int("processed", processed).
		Dur("lookback", s.lookback).
		Msg("Sweep completed")

	return processed, nil
}
