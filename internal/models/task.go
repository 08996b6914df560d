package models

import "time"

// Custom field types as reported by the upstream platform
const (
	FieldTypeText      = "text"
	FieldTypeEnum      = "enum"
	FieldTypeMultiEnum = "multi_enum"
	FieldTypeNumber    = "number"
)

// Task is a task record fetched from the upstream platform. It is never
// cached; the same gid may be delivered more than once and the record is
// re-fetched each time to pick up current state.
type Task struct {
	GID          string        `json:"gid"`
	Name         string        `json:"name"`
	Notes        string        `json:"notes"`
	PermalinkURL string        `json:"permalink_url,omitempty"`
	Projects     []Project     `json:"projects"`
	CustomFields []CustomField `json:"custom_fields"`
}

// Project is a project reference on a task
type Project struct {
	GID  string `json:"gid"`
	Name string `json:"name,omitempty"`
}

// CustomField is one entry of a task's custom field list. Exactly one of the
// value members is populated depending on Type.
type CustomField struct {
	GID         string       `json:"gid,omitempty"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	TextValue   string       `json:"text_value,omitempty"`
	NumberValue *float64     `json:"number_value,omitempty"`
	EnumValue   *EnumOption  `json:"enum_value,omitempty"`
	EnumValues  []EnumOption `json:"enum_values,omitempty"`
}

// EnumOption is a selected enum choice on a custom field
type EnumOption struct {
	GID  string `json:"gid,omitempty"`
	Name string `json:"name"`
}

// Story is a comment attached to a task. Processing markers are stored as
// stories, so scanning stories is how idempotency is decided.
type Story struct {
	GID       string    `json:"gid"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
