package workflow

import "strings"

// Processing markers are stored as human-readable comments on the task so the
// record stays visible to operators in the upstream UI. The text format is
// brittle by nature, so translation between text and the typed result is
// confined to this file.

const markerSentinel = "🔧 Repair request processed"

const (
	flagOK     = "✅"
	flagFailed = "❌"
)

// markerResult is the typed view of one processing marker
type markerResult struct {
	Renamed         bool
	SubtasksCreated bool
	EmailSent       bool
}

// success reports whether the marker records a fully processed task: subtask
// creation and notification both succeeded. Rename is best-effort and does
// not gate success.
func (m markerResult) success() bool {
	return m.SubtasksCreated && m.EmailSent
}

// formatMarker renders the marker comment appended after processing
func formatMarker(result markerResult) string {
	var b strings.Builder
	b.WriteString(markerSentinel)
	b.WriteString("\n")
	b.WriteString("Rename: " + flag(result.Renamed) + "\n")
	b.WriteString("Subtasks: " + flag(result.SubtasksCreated) + "\n")
	b.WriteString("Email: " + flag(result.EmailSent))
	return b.String()
}

// parseMarker recognizes a processing marker in story text and extracts the
// per-step flags. The second return is false for ordinary comments.
func parseMarker(text string) (markerResult, bool) {
	if !strings.Contains(text, markerSentinel) {
		return markerResult{}, false
	}
	return markerResult{
		Renamed:         strings.Contains(text, "Rename: "+flagOK),
		SubtasksCreated: strings.Contains(text, "Subtasks: "+flagOK),
		EmailSent:       strings.Contains(text, "Email: "+flagOK),
	}, true
}

func flag(ok bool) string {
	if ok {
		return flagOK
	}
	return flagFailed
}
