package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup_KnownCategories(t *testing.T) {
	tests := []struct {
		category string
		tag      string
	}{
		{"Plumbing", "🚿"},
		{"Electrical", "⚡"},
		{"Heating/Cooling", "❄️"},
		{"Appliance", "🔌"},
		{"Structural", "🏠"},
		{"Pest Control", "🐜"},
		{"Other", "🔧"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.tag, Tag(tt.category))
		})
	}
}

func TestLookup_UnknownCategoryFallsBackToOther(t *testing.T) {
	entry := Lookup("Landscaping")

	assert.Equal(t, "🔧", entry.Tag)
	assert.Equal(t, []string{"Determine trade required for repair"}, entry.Steps)
}

func TestLookup_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "⚡", Tag("ELECTRICAL"))
	assert.Equal(t, "🚿", Tag("  plumbing  "))
}

func TestChecklist_StandardOrder(t *testing.T) {
	steps := Checklist("Plumbing", "Standard")

	expected := []string{
		"Initial assessment of repair request",
		"Contact tenant to confirm issue details",
		"Schedule repair appointment",
		"Locate and check water shutoff valve",
		"Inspect surrounding areas for water damage",
		"Order required parts and materials",
		"Complete repair work",
		"Verify repair quality",
		"Follow up with tenant on completion",
	}
	assert.Equal(t, expected, steps)
}

func TestChecklist_EmergencyInsertsAfterFirstStep(t *testing.T) {
	steps := Checklist("Electrical", "Emergency")

	assert.Equal(t, "Initial assessment of repair request", steps[0])
	assert.Equal(t, "URGENT: Perform immediate safety check", steps[1])
	assert.Equal(t, "URGENT: Escalate to on-call contractor", steps[2])
	assert.Equal(t, "Contact tenant to confirm issue details", steps[3])
	assert.Equal(t, "Follow up with tenant on completion", steps[len(steps)-1])
}

func TestChecklist_EmergencyUrgencyCaseInsensitive(t *testing.T) {
	standard := Checklist("Other", "Standard")
	emergency := Checklist("Other", "emergency")

	assert.Len(t, emergency, len(standard)+2)
}
