package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/reparo/internal/models"
)

func TestExtractDetails_FullSubmission(t *testing.T) {
	task := &models.Task{
		GID:   "T1",
		Notes: "Water pooling under the sink",
		CustomFields: []models.CustomField{
			{Name: "First Name", Type: models.FieldTypeText, TextValue: "Jordan"},
			{Name: "Last Name", Type: models.FieldTypeText, TextValue: "Lee"},
			{Name: "Email Address", Type: models.FieldTypeText, TextValue: "jordan@example.com"},
			{Name: "Phone Number", Type: models.FieldTypeText, TextValue: "555-0100"},
			{Name: "Property Address", Type: models.FieldTypeText, TextValue: "123 Main St"},
			{Name: "Unit Number", Type: models.FieldTypeText, TextValue: "4B"},
			{Name: "Urgency Level", Type: models.FieldTypeEnum, EnumValue: &models.EnumOption{Name: "Emergency"}},
			{Name: "Issue Category", Type: models.FieldTypeEnum, EnumValue: &models.EnumOption{Name: "Plumbing"}},
			{Name: "What kind of emergency issue", Type: models.FieldTypeEnum, EnumValue: &models.EnumOption{Name: "Burst pipe"}},
		},
	}

	details := ExtractDetails(task)

	assert.Equal(t, "T1", details.TaskGID)
	assert.Equal(t, "Jordan Lee", details.TenantName())
	assert.Equal(t, "jordan@example.com", details.Email)
	assert.Equal(t, "555-0100", details.Phone)
	assert.Equal(t, "123 Main St", details.Address)
	assert.Equal(t, "4B", details.UnitNumber)
	assert.Equal(t, "Emergency", details.UrgencyLevel)
	assert.True(t, details.IsEmergency())
	assert.Equal(t, "Plumbing", details.IssueCategory)
	assert.Equal(t, "Burst pipe", details.SpecificIssue)
	assert.Equal(t, "Water pooling under the sink", details.Description)
}

func TestExtractDetails_EmptyTaskGetsFallbacks(t *testing.T) {
	details := ExtractDetails(&models.Task{GID: "T2"})

	assert.Equal(t, "Unknown", details.FirstName)
	assert.Equal(t, "Unknown", details.TenantName())
	assert.Equal(t, "N/A", details.Email)
	assert.Equal(t, "N/A", details.Phone)
	assert.Equal(t, "Unknown", details.Address)
	assert.Equal(t, "N/A", details.UnitNumber)
	assert.Equal(t, "Standard", details.UrgencyLevel)
	assert.False(t, details.IsEmergency())
	assert.Equal(t, "Other", details.IssueCategory)
	assert.Equal(t, "Unspecified", details.SpecificIssue)
	assert.Equal(t, "No additional description provided", details.Description)
}

func TestExtractDetails_StandardIssueFieldPreferred(t *testing.T) {
	task := &models.Task{
		GID: "T3",
		CustomFields: []models.CustomField{
			{Name: "What kind of standard issue", Type: models.FieldTypeEnum, EnumValue: &models.EnumOption{Name: "Dripping faucet"}},
			{Name: "What kind of emergency issue", Type: models.FieldTypeEnum, EnumValue: &models.EnumOption{Name: "Flooding"}},
		},
	}

	assert.Equal(t, "Dripping faucet", ExtractDetails(task).SpecificIssue)
}
