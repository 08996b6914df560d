package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/reparo/internal/common"
	"github.com/ternarybob/reparo/internal/models"
)

const testProjectGID = "project-123"

func newTestClassifier() *Classifier {
	return New(testProjectGID, common.GetLogger())
}

func enumField(name, value string) models.CustomField {
	return models.CustomField{
		Name:      name,
		Type:      models.FieldTypeEnum,
		EnumValue: &models.EnumOption{Name: value},
	}
}

func TestIsRepairRequest_StrictFieldsMatch(t *testing.T) {
	classifier := newTestClassifier()

	task := &models.Task{
		GID:      "T1",
		Projects: []models.Project{{GID: testProjectGID}},
		CustomFields: []models.CustomField{
			enumField("Issue Category", "Plumbing"),
			enumField("Urgency Level", "Emergency"),
		},
	}

	assert.True(t, classifier.IsRepairRequest(task))
}

func TestIsRepairRequest_ProjectGate(t *testing.T) {
	classifier := newTestClassifier()

	// Repair content in the wrong project must never classify
	task := &models.Task{
		GID:      "T2",
		Name:     "Broken heater needs repair",
		Projects: []models.Project{{GID: "other-project"}},
		CustomFields: []models.CustomField{
			enumField("Issue Category", "Heating/Cooling"),
			enumField("Urgency Level", "Standard"),
		},
	}

	assert.False(t, classifier.IsRepairRequest(task))
}

func TestIsRepairRequest_MissingRequiredFieldFallsToHeuristic(t *testing.T) {
	classifier := newTestClassifier()

	// "Issue Type" and "Priority" satisfy the token heuristic even though the
	// strict required fields are absent
	task := &models.Task{
		GID:      "T3",
		Projects: []models.Project{{GID: testProjectGID}},
		CustomFields: []models.CustomField{
			enumField("Issue Type", "Plumbing"),
			enumField("Priority", "High"),
		},
	}

	assert.True(t, classifier.IsRepairRequest(task))
}

func TestIsRepairRequest_KeywordFallback(t *testing.T) {
	classifier := newTestClassifier()

	task := &models.Task{
		GID:      "T4",
		Name:     "Dishwasher not working",
		Projects: []models.Project{{GID: testProjectGID}},
	}

	assert.True(t, classifier.IsRepairRequest(task))
}

func TestIsRepairRequest_KeywordInNotes(t *testing.T) {
	classifier := newTestClassifier()

	task := &models.Task{
		GID:      "T5",
		Name:     "Unit 4B",
		Notes:    "Tenant reports a maintenance issue in the kitchen",
		Projects: []models.Project{{GID: testProjectGID}},
	}

	assert.True(t, classifier.IsRepairRequest(task))
}

func TestIsRepairRequest_UnrelatedTask(t *testing.T) {
	classifier := newTestClassifier()

	task := &models.Task{
		GID:      "T6",
		Name:     "Quarterly newsletter draft",
		Notes:    "Collect highlights from the team",
		Projects: []models.Project{{GID: testProjectGID}},
	}

	assert.False(t, classifier.IsRepairRequest(task))
}

func TestIsRepairRequest_NilTask(t *testing.T) {
	classifier := newTestClassifier()

	assert.False(t, classifier.IsRepairRequest(nil))
}

func TestInTargetProject_MultipleProjects(t *testing.T) {
	classifier := newTestClassifier()

	task := &models.Task{
		GID: "T7",
		Projects: []models.Project{
			{GID: "unrelated"},
			{GID: testProjectGID},
		},
	}

	assert.True(t, classifier.InTargetProject(task))
}
