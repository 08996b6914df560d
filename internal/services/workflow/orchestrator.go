package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/interfaces"
	"github.com/ternarybob/reparo/internal/models"
	"github.com/ternarybob/reparo/internal/services/catalog"
)

// Orchestrator drives the multi-step reaction to a qualifying repair-request
// task: idempotency check, detail extraction, rename, checklist creation,
// notification, and marker commit. Each side-effecting step is caught at its
// own boundary and recorded as a boolean; no step aborts its siblings.
type Orchestrator struct {
	tasks           interfaces.TaskAPI
	notifier        interfaces.Notifier
	subtasksProject string
	logger          arbor.ILogger

	// Per-gid locks close the duplicate-delivery race: the upstream platform
	// delivers at-least-once and concurrent deliveries for the same task are
	// expected.
	mu        sync.Mutex
	taskLocks map[string]*sync.Mutex
}

// NewOrchestrator creates a workflow orchestrator
func NewOrchestrator(tasks interfaces.TaskAPI, notifier interfaces.Notifier, subtasksProject string, logger arbor.ILogger) *Orchestrator {
	return &Orchestrator{
		tasks:           tasks,
		notifier:        notifier,
		subtasksProject: subtasksProject,
		logger:          logger,
		taskLocks:       make(map[string]*sync.Mutex),
	}
}

// Process runs the repair workflow for one task. It returns OutcomeSkipped
// when a success marker already exists, OutcomeSucceeded when checklist
// creation and notification both succeeded, and OutcomePartiallyFailed
// otherwise. Rename is best-effort and never fails the run.
func (o *Orchestrator) Process(ctx context.Context, task *models.Task) (interfaces.Outcome, error) {
	if task == nil || task.GID == "" {
		return interfaces.OutcomePartiallyFailed, fmt.Errorf("task is nil or has no gid")
	}

	lock := o.lockFor(task.GID)
	lock.Lock()
	defer lock.Unlock()

	if o.alreadyProcessed(ctx, task.GID) {
		o.logger.Info().Str("task", task.GID).Msg("Task already processed, skipping")
		return interfaces.OutcomeSkipped, nil
	}

	details := ExtractDetails(task)
	o.logger.Info().
		Str("task", task.GID).
		Str("category", details.IssueCategory).
		Str("urgency", details.UrgencyLevel).
		Str("address", details.Address).
		Msg("Processing repair request")

	result := markerResult{
		Renamed:         o.renameTask(ctx, details),
		SubtasksCreated: o.createChecklist(ctx, details),
		EmailSent:       o.sendNotification(ctx, details),
	}

	// Marker append is the idempotency commit point. If it fails the task is
	// treated as unprocessed on the next delivery; rename is idempotent and
	// re-created subtasks are an accepted limitation.
	if err := o.tasks.CreateStory(ctx, task.GID, formatMarker(result)); err != nil {
		o.logger.Error().Err(err).Str("task", task.GID).Msg("Failed to append processing marker, task will be re-processed on redelivery")
	}

	if result.success() {
		return interfaces.OutcomeSucceeded, nil
	}
	return interfaces.OutcomePartiallyFailed, nil
}

// alreadyProcessed scans existing stories for a success marker. A scan error
// is logged and treated as "not processed": reprocessing converges while a
// false skip would drop the request.
func (o *Orchestrator) alreadyProcessed(ctx context.Context, taskGID string) bool {
	stories, err := o.tasks.ListStories(ctx, taskGID)
	if err != nil {
		o.logger.Warn().Err(err).Str("task", taskGID).Msg("Failed to list stories for idempotency check")
		return false
	}
	for _, story := range stories {
		if marker, ok := parseMarker(story.Text); ok && marker.success() {
			return true
		}
	}
	return false
}

func (o *Orchestrator) renameTask(ctx context.Context, details *models.RepairRequest) bool {
	name := fmt.Sprintf("%s %s - %s", catalog.Tag(details.IssueCategory), details.IssueCategory, details.Address)
	if err := o.tasks.UpdateTaskName(ctx, details.TaskGID, name); err != nil {
		o.logger.Warn().Err(err).Str("task", details.TaskGID).Msg("Failed to rename task")
		return false
	}
	return true
}

// createChecklist creates every checklist item as an independent subtask.
// One creation failure does not stop the remaining creations; the aggregate
// boolean is true only when all succeed.
func (o *Orchestrator) createChecklist(ctx context.Context, details *models.RepairRequest) bool {
	steps := catalog.Checklist(details.IssueCategory, details.UrgencyLevel)

	allCreated := true
	for _, step := range steps {
		if _, err := o.tasks.CreateSubtask(ctx, details.TaskGID, step, o.subtasksProject); err != nil {
			o.logger.Error().Err(err).
				Str("task", details.TaskGID).
				Str("subtask", step).
				Msg("Failed to create subtask")
			allCreated = false
		}
	}

	o.logger.Info().
		Str("task", details.TaskGID).
		Int("steps", len(steps)).
		Bool("all_created", allCreated).
		Msg("Checklist creation finished")

	return allCreated
}

func (o *Orchestrator) sendNotification(ctx context.Context, details *models.RepairRequest) bool {
	if err := o.notifier.NotifyRepairRequest(ctx, details); err != nil {
		o.logger.Error().Err(err).Str("task", details.TaskGID).Msg("Failed to send repair notification")
		return false
	}
	return true
}

func (o *Orchestrator) lockFor(gid string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.taskLocks[gid]
	if !ok {
		lock = &sync.Mutex{}
		o.taskLocks[gid] = lock
	}
	return lock
}
