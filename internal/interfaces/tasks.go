package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/reparo/internal/models"
)

// TaskAPI is the upstream task-tracking platform consumed by the pipeline.
// All calls are blocking and performed in request context; retry is delegated
// to the platform's own webhook redelivery.
type TaskAPI interface {
	// GetTask fetches a task by gid with custom fields expanded
	GetTask(ctx context.Context, gid string) (*models.Task, error)

	// CreateSubtask creates a checklist item under the parent task
	CreateSubtask(ctx context.Context, parentGID, name, projectGID string) (*models.Task, error)

	// UpdateTaskName renames a task
	UpdateTaskName(ctx context.Context, gid, name string) error

	// CreateStory appends a comment to a task
	CreateStory(ctx context.Context, taskGID, text string) error

	// ListStories returns the comments attached to a task
	ListStories(ctx context.Context, taskGID string) ([]models.Story, error)

	// ListTasks returns tasks in a project modified since the given time
	ListTasks(ctx context.Context, projectGID string, modifiedSince time.Time) ([]models.Task, error)

	// CreateWebhook registers a webhook for a resource and returns its gid
	CreateWebhook(ctx context.Context, resourceGID, targetURL string) (string, error)
}
