package models

// RepairRequest is the flat detail record derived from a repair-request task.
// Every attribute carries a fallback so downstream steps never branch on
// absence.
type RepairRequest struct {
	TaskGID       string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	UnitNumber    string
	UrgencyLevel  string
	IssueCategory string
	SpecificIssue string
	Description   string
}

// TenantName returns the tenant's display name
func (r *RepairRequest) TenantName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// IsEmergency reports whether the request was submitted with emergency urgency
func (r *RepairRequest) IsEmergency() bool {
	return r.UrgencyLevel == "Emergency"
}
