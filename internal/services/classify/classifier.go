package classify

import (
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/models"
	"github.com/ternarybob/reparo/internal/services/fields"
)

// Fields a well-formed repair-request form submission always carries
var requiredFields = []string{"Issue Category", "Urgency Level"}

// Token groups for the heuristic field-name check
var (
	categoryTokens = []string{"category", "issue"}
	urgencyTokens  = []string{"urgency", "priority"}
)

// Free-text keywords that mark a task as repair-related when the form fields
// are missing or renamed beyond recognition
var repairKeywords = []string{
	"repair", "fix", "broken", "not working", "problem", "maintenance",
}

// Classifier decides whether an incoming task is a qualifying repair-request
// submission. Project membership is an independent gate checked before any
// field inspection.
type Classifier struct {
	projectGID string
	logger     arbor.ILogger
}

// New creates a classifier bound to the configured repair project
func New(projectGID string, logger arbor.ILogger) *Classifier {
	return &Classifier{
		projectGID: projectGID,
		logger:     logger,
	}
}

// InTargetProject reports whether the task belongs to the configured repair
// project. Tasks outside it are never classified, regardless of content.
func (c *Classifier) InTargetProject(task *models.Task) bool {
	if task == nil {
		return false
	}
	for _, project := range task.Projects {
		if project.GID == c.projectGID {
			return true
		}
	}
	return false
}

// IsRepairRequest is the binary predicate over a task record: project gate,
// then strict field check, then heuristic fallback. First success wins.
func (c *Classifier) IsRepairRequest(task *models.Task) bool {
	if !c.InTargetProject(task) {
		return false
	}

	if c.strictMatch(task) {
		return true
	}

	if c.heuristicMatch(task) {
		c.logger.Debug().
			Str("task", task.GID).
			Msg("Task qualified via heuristic fallback")
		return true
	}

	return false
}

// strictMatch requires every field in the required set to be extractable
func (c *Classifier) strictMatch(task *models.Task) bool {
	for _, name := range requiredFields {
		if _, ok := fields.Extract(task, name); !ok {
			return false
		}
	}
	return true
}

// heuristicMatch qualifies a task when its field names carry both a
// category-like and an urgency-like token, or when its name/notes contain a
// repair keyword.
func (c *Classifier) heuristicMatch(task *models.Task) bool {
	hasCategory := false
	hasUrgency := false
	for _, field := range task.CustomFields {
		label := strings.ToLower(field.Name)
		if containsAny(label, categoryTokens) {
			hasCategory = true
		}
		if containsAny(label, urgencyTokens) {
			hasUrgency = true
		}
	}
	if hasCategory && hasUrgency {
		return true
	}

	text := strings.ToLower(task.Name + " " + task.Notes)
	return containsAny(text, repairKeywords)
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
