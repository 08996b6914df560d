package workflow

import (
	"github.com/ternarybob/reparo/internal/models"
	"github.com/ternarybob/reparo/internal/services/fields"
)

// ExtractDetails derives the flat repair-request record from a task. Every
// attribute has a defined fallback so later steps never branch on absence.
func ExtractDetails(task *models.Task) *models.RepairRequest {
	specific, ok := fields.ExtractAny(task,
		"What kind of standard issue",
		"What kind of emergency issue",
	)
	if !ok {
		specific = "Unspecified"
	}

	description := task.Notes
	if description == "" {
		description = "No additional description provided"
	}

	return &models.RepairRequest{
		TaskGID:       task.GID,
		FirstName:     fields.ExtractOr(task, "First Name", "Unknown"),
		LastName:      fields.ExtractOr(task, "Last Name", ""),
		Email:         fields.ExtractOr(task, "Email Address", "N/A"),
		Phone:         fields.ExtractOr(task, "Phone Number", "N/A"),
		Address:       fields.ExtractOr(task, "Property Address", "Unknown"),
		UnitNumber:    fields.ExtractOr(task, "Unit Number", "N/A"),
		UrgencyLevel:  fields.ExtractOr(task, "Urgency Level", "Standard"),
		IssueCategory: fields.ExtractOr(task, "Issue Category", "Other"),
		SpecificIssue: specific,
		Description:   description,
	}
}
