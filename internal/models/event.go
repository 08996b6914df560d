package models

// Event actions delivered by the upstream platform. Only ActionAdded
// triggers processing.
const (
	ActionAdded   = "added"
	ActionChanged = "changed"
	ActionRemoved = "removed"
	ActionDeleted = "deleted"
)

// ResourceTypeTask is the only resource type this pipeline handles
const ResourceTypeTask = "task"

// EventEnvelope is one webhook delivery body. It is transient: parsed,
// iterated, and discarded per request.
type EventEnvelope struct {
	Events []Event `json:"events"`
}

// Event is a single change notification inside an envelope
type Event struct {
	Action   string        `json:"action"`
	Resource EventResource `json:"resource"`
}

// EventResource identifies the changed resource
type EventResource struct {
	GID          string `json:"gid"`
	ResourceType string `json:"resource_type"`
}

// IsTaskAdded reports whether the event is a new-task notification
func (e Event) IsTaskAdded() bool {
	return e.Action == ActionAdded && e.Resource.ResourceType == ResourceTypeTask && e.Resource.GID != ""
}
