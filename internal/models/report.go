package models

import "time"

// ReportStatus tracks the moderation state of a report
type ReportStatus string

const (
	ReportPending  ReportStatus = "PENDING"
	ReportResolved ReportStatus = "RESOLVED"
	ReportRejected ReportStatus = "REJECTED"
)

// Report represents a user report against an image
type Report struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	ReporterID   uint         `json:"reporter_id" gorm:"index"`
	ImageID      uint         `json:"image_id" gorm:"index"`
	Reason       string       `json:"reason" gorm:"size:500"`
	Status       ReportStatus `json:"status" gorm:"size:20;default:'PENDING';index"`
	ResolvedByID *uint        `json:"resolved_by_id"`
	CreatedAt    time.Time    `json:"created_at"`
	ResolvedAt   *time.Time   `json:"resolved_at"`
}

// CreateReportRequest defines the request body for reporting an image
type CreateReportRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// ResolveReportRequest defines the request body for resolving a report
type ResolveReportRequest struct {
	Status ReportStatus `json:"status" validate:"required,oneof=RESOLVED REJECTED"`
}
