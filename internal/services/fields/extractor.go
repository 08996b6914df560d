package fields

import (
	"strconv"
	"strings"

	"github.com/ternarybob/reparo/internal/models"
)

// Extract returns the value of the first custom field whose name contains
// logicalName, compared case-insensitively. Substring matching is deliberate:
// form field labels vary across deployments ("Urgency" vs "Urgency Level"),
// so exact matching would silently drop data. Field ordering follows the
// upstream record and is stable, so first match wins deterministically.
//
// The boolean result is false when no field matches or the matched field
// carries no value; callers supply their own defaults.
func Extract(task *models.Task, logicalName string) (string, bool) {
	if task == nil {
		return "", false
	}

	needle := strings.ToLower(strings.TrimSpace(logicalName))
	if needle == "" {
		return "", false
	}

	for _, field := range task.CustomFields {
		label := strings.ToLower(strings.TrimSpace(field.Name))
		if !strings.Contains(label, needle) {
			continue
		}
		return coerce(field)
	}

	return "", false
}

// ExtractAny tries each logical name in order and returns the first value found
func ExtractAny(task *models.Task, logicalNames ...string) (string, bool) {
	for _, name := range logicalNames {
		if value, ok := Extract(task, name); ok {
			return value, ok
		}
	}
	return "", false
}

// ExtractOr returns the extracted value or the fallback when absent
func ExtractOr(task *models.Task, logicalName, fallback string) string {
	if value, ok := Extract(task, logicalName); ok {
		return value
	}
	return fallback
}

// coerce converts a field's typed value to its string form. Absent values
// yield ok=false rather than an empty-string hit.
func coerce(field models.CustomField) (string, bool) {
	switch field.Type {
	case models.FieldTypeText:
		value := strings.TrimSpace(field.TextValue)
		return value, value != ""

	case models.FieldTypeEnum:
		if field.EnumValue == nil {
			return "", false
		}
		value := strings.TrimSpace(field.EnumValue.Name)
		return value, value != ""

	case models.FieldTypeMultiEnum:
		if len(field.EnumValues) == 0 {
			return "", false
		}
		names := make([]string, 0, len(field.EnumValues))
		for _, option := range field.EnumValues {
			if name := strings.TrimSpace(option.Name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return "", false
		}
		return strings.Join(names, ", "), true

	case models.FieldTypeNumber:
		if field.NumberValue == nil {
			return "", false
		}
		return strconv.FormatFloat(*field.NumberValue, 'f', -1, 64), true
	}

	return "", false
}
