package models

import "time"

// ReportStatus is the triage state of a report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
)

// ValidReportStatus reports whether s is a known triage state.
func ValidReportStatus(s ReportStatus) bool {
	return s == ReportStatusPending || s == ReportStatusResolved
}

// Report represents a user-submitted incident report.
// Evidence holds remote URLs in submission order; the order carries
// user-visible meaning and is never reshuffled.
type Report struct {
	ID     string `bson:"_id" json:"id"`
	UserID string `bson:"user_id" json:"userId"`
	// Evidence is never empty: a report cannot be created without at
	// least one uploaded file.
	Evidence    []string     `bson:"evidence" json:"evidence"`
	IssueType   string       `bson:"issue_type" json:"issueType"`
	Location    string       `bson:"location" json:"location"`
	Description string       `bson:"description" json:"description"`
	Status      ReportStatus `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
