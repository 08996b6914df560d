package catalog

import "strings"

// Entry maps an issue category to its tag and category-specific checklist steps
type Entry struct {
	Tag   string
	Steps []string
}

// basePrefix opens every checklist: assessment, tenant contact, scheduling
var basePrefix = []string{
	"Initial assessment of repair request",
	"Contact tenant to confirm issue details",
	"Schedule repair appointment",
}

// emergencyInsert is spliced in after the first base step when urgency is Emergency
var emergencyInsert = []string{
	"URGENT: Perform immediate safety check",
	"URGENT: Escalate to on-call contractor",
}

// suffix closes every checklist: procurement, execution, verification, follow-up
var suffix = []string{
	"Order required parts and materials",
	"Complete repair work",
	"Verify repair quality",
	"Follow up with tenant on completion",
}

var categories = map[string]Entry{
	"plumbing": {
		Tag: "🚿",
		Steps: []string{
			"Locate and check water shutoff valve",
			"Inspect surrounding areas for water damage",
		},
	},
	"electrical": {
		Tag: "⚡",
		Steps: []string{
			"Check breaker panel for tripped circuits",
			"Inspect for exposed wiring hazards",
		},
	},
	"heating/cooling": {
		Tag: "❄️",
		Steps: []string{
			"Check thermostat settings and batteries",
			"Inspect HVAC filters and vents",
		},
	},
	"appliance": {
		Tag: "🔌",
		Steps: []string{
			"Record appliance make, model, and serial number",
			"Check warranty coverage",
		},
	},
	"structural": {
		Tag: "🏠",
		Steps: []string{
			"Document damage with photos",
			"Assess whether area must be cordoned off",
		},
	},
	"pest control": {
		Tag: "🐜",
		Steps: []string{
			"Identify pest type and affected areas",
			"Arrange licensed exterminator visit",
		},
	},
	"other": {
		Tag: "🔧",
		Steps: []string{
			"Determine trade required for repair",
		},
	},
}

// Lookup returns the catalog entry for a category, falling back to "Other"
// for anything unrecognized. Matching is case-insensitive.
func Lookup(category string) Entry {
	if entry, ok := categories[strings.ToLower(strings.TrimSpace(category))]; ok {
		return entry
	}
	return categories["other"]
}

// Tag returns the emoji tag for a category
func Tag(category string) string {
	return Lookup(category).Tag
}

// Checklist builds the ordered remediation steps for a category and urgency:
// base prefix (with emergency steps spliced in after the first base step when
// urgency is "Emergency"), then category-specific steps, then the fixed suffix.
func Checklist(category, urgency string) []string {
	entry := Lookup(category)

	steps := make([]string, 0, len(basePrefix)+len(emergencyInsert)+len(entry.Steps)+len(suffix))
	steps = append(steps, basePrefix[0])
	if strings.EqualFold(strings.TrimSpace(urgency), "emergency") {
		steps = append(steps, emergencyInsert...)
	}
	steps = append(steps, basePrefix[1:]...)
	steps = append(steps, entry.Steps...)
	steps = append(steps, suffix...)

	return steps
}
