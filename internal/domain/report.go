package domain

import "time"

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
)

// ReportReason is the fixed reason taxonomy of the reporting flow.
type ReportReason string

const (
	ReasonInappropriate ReportReason = "Inappropriate Content"
	ReasonHarassment    ReportReason = "Harassment"
	ReasonFakeOrSpam    ReportReason = "Fake Profile / Spam"
	ReasonOther         ReportReason = "Other"
)

// ValidReportReason reports whether reason is one of the fixed taxonomy values.
func ValidReportReason(reason ReportReason) bool {
	switch reason {
	case ReasonInappropriate, ReasonHarassment, ReasonFakeOrSpam, ReasonOther:
		return true
	default:
		return false
	}
}

// Report is a user report against a target profile. Reports are never
// deleted; a resolve or ban flips Status to resolved.
type Report struct {
	ID         string       `json:"id"`
	ReporterID string       `json:"reporterId"`
	TargetID   string       `json:"targetId"`
	Reason     ReportReason `json:"reason"`
	Timestamp  time.Time    `json:"timestamp"`
	Status     ReportStatus `json:"status"`
}
