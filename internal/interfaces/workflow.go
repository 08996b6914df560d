package interfaces

import (
	"context"

	"github.com/ternarybob/reparo/internal/models"
)

// Outcome is the result of processing one repair-request task
type Outcome string

const (
	// OutcomeSkipped means a success marker already existed and no work was done
	OutcomeSkipped Outcome = "skipped"
	// OutcomeSucceeded means subtask creation and notification both succeeded
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomePartiallyFailed means at least one side-effect step failed
	OutcomePartiallyFailed Outcome = "partially-failed"
)

// Orchestrator drives the multi-step reaction to a qualifying task: checklist
// creation, notification dispatch, and idempotency marking.
type Orchestrator interface {
	Process(ctx context.Context, task *models.Task) (Outcome, error)
}
