package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/reparo/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestExtract_SubstringMatchOnName(t *testing.T) {
	task := &models.Task{
		CustomFields: []models.CustomField{
			{Name: "Urgency Level", Type: models.FieldTypeEnum, EnumValue: &models.EnumOption{Name: "Emergency"}},
		},
	}

	// "urgency" must match "Urgency Level": form labels vary across deployments
	value, ok := Extract(task, "urgency")
	assert.True(t, ok)
	assert.Equal(t, "Emergency", value)
}

func TestExtract_NoMatchingField(t *testing.T) {
	task := &models.Task{
		CustomFields: []models.CustomField{
			{Name: "Issue Category", Type: models.FieldTypeEnum, EnumValue: &models.EnumOption{Name: "Plumbing"}},
		},
	}

	_, ok := Extract(task, "urgency")
	assert.False(t, ok)
}

func TestExtract_FirstMatchWins(t *testing.T) {
	task := &models.Task{
		CustomFields: []models.CustomField{
			{Name: "Issue Category", Type: models.FieldTypeEnum, EnumValue: &models.EnumOption{Name: "Plumbing"}},
			{Name: "Secondary Issue Category", Type: models.FieldTypeEnum, EnumValue: &models.EnumOption{Name: "Electrical"}},
		},
	}

	value, ok := Extract(task, "issue category")
	assert.True(t, ok)
	assert.Equal(t, "Plumbing", value)
}

func TestExtract_TextTrimmed(t *testing.T) {
	task := &models.Task{
		CustomFields: []models.CustomField{
			{Name: "Property Address", Type: models.FieldTypeText, TextValue: "  123 Main St  "},
		},
	}

	value, ok := Extract(task, "property address")
	assert.True(t, ok)
	assert.Equal(t, "123 Main St", value)
}

func TestExtract_EnumWithoutSelection(t *testing.T) {
	task := &models.Task{
		CustomFields: []models.CustomField{
			{Name: "Urgency Level", Type: models.FieldTypeEnum, EnumValue: nil},
		},
	}

	_, ok := Extract(task, "urgency")
	assert.False(t, ok)
}

func TestExtract_MultiEnumJoined(t *testing.T) {
	task := &models.Task{
		CustomFields: []models.CustomField{
			{
				Name: "Affected Rooms",
				Type: models.FieldTypeMultiEnum,
				EnumValues: []models.EnumOption{
					{Name: "Kitchen"},
					{Name: "Bathroom"},
				},
			},
		},
	}

	value, ok := Extract(task, "affected rooms")
	assert.True(t, ok)
	assert.Equal(t, "Kitchen, Bathroom", value)
}

func TestExtract_NumberStringified(t *testing.T) {
	task := &models.Task{
		CustomFields: []models.CustomField{
			{Name: "Unit Number", Type: models.FieldTypeNumber, NumberValue: floatPtr(4)},
		},
	}

	value, ok := Extract(task, "unit number")
	assert.True(t, ok)
	assert.Equal(t, "4", value)
}

func TestExtract_NilTask(t *testing.T) {
	_, ok := Extract(nil, "urgency")
	assert.False(t, ok)
}

func TestExtractAny_FallbackChain(t *testing.T) {
	task := &models.Task{
		CustomFields: []models.CustomField{
			{Name: "What kind of emergency issue", Type: models.FieldTypeEnum, EnumValue: &models.EnumOption{Name: "Burst pipe"}},
		},
	}

	value, ok := ExtractAny(task, "What kind of standard issue", "What kind of emergency issue")
	assert.True(t, ok)
	assert.Equal(t, "Burst pipe", value)
}

func TestExtractOr_Fallback(t *testing.T) {
	task := &models.Task{}

	assert.Equal(t, "Standard", ExtractOr(task, "Urgency Level", "Standard"))
}
