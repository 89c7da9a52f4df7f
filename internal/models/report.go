package models

import "time"

// ReportStatus tracks the moderation lifecycle of a report
type ReportStatus string

const (
	ReportOpen     ReportStatus = "open"
	ReportResolved ReportStatus = "resolved"
)

// Report is a user-filed complaint about a content item
type Report struct {
	ID         int          `json:"id"`
	ReporterID int          `json:"reporter_id"`
	TargetType ContentKind  `json:"target_type"`
	TargetID   int          `json:"target_id"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`
}

// ReportReporter is the reporter summary embedded in report views
type ReportReporter struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ReportView is the report representation returned to callers
type ReportView struct {
	ID         int            `json:"id"`
	Reporter   ReportReporter `json:"reporter"`
	TargetType ContentKind    `json:"targetType"`
	TargetID   int            `json:"targetId"`
	Reason     string         `json:"reason"`
	Status     ReportStatus   `json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
	ResolvedAt *time.Time     `json:"resolvedAt,omitempty"`
}

// CreateReportRequest defines the request body for filing a report
type CreateReportRequest struct {
	TargetType ContentKind `json:"targetType" validate:"required,oneof=post poll event slideshow audio story"`
	TargetID   int         `json:"targetId" validate:"required,min=1"`
	Reason     string      `json:"reason" validate:"required,min=3,max=1000"`
}
