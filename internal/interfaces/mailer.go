package interfaces

import (
	"context"

	"github.com/ternarybob/reparo/internal/models"
)

// Notifier dispatches repair-request notifications. A send failure must not
// propagate past the orchestrator; it is recorded as a per-step boolean.
type Notifier interface {
	// NotifyRepairRequest sends one notification for a repair request
	NotifyRepairRequest(ctx context.Context, req *models.RepairRequest) error

	// IsConfigured reports whether the transport has usable credentials
	IsConfigured() bool
}
