package services

import (
	"fmt"
	"log"
	"time"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
)

// ReportView is the read shape returned for a report, with reporter and
// resolver names denormalized for moderation screens.
type ReportView struct {
	ID                 uint                `json:"id"`
	ReporterID         uint                `json:"reporter_id"`
	ReporterUsername   string              `json:"reporter_username,omitempty"`
	ImageID            uint                `json:"image_id"`
	ImageURL           string              `json:"image_url,omitempty"`
	Reason             string              `json:"reason"`
	Status             models.ReportStatus `json:"status"`
	ResolvedByID       *uint               `json:"resolved_by_id,omitempty"`
	ResolvedByUsername string              `json:"resolved_by_username,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	ResolvedAt         *time.Time          `json:"resolved_at,omitempty"`
}

// ReportService manages image reports and their moderation lifecycle:
// a report is created PENDING and resolved exactly once to RESOLVED or
// REJECTED.
type ReportService struct {
	reports       repositories.ReportRepository
	images        repositories.ImageRepository
	users         repositories.UserRepository
	notifications *NotificationService
	urls          *URLResolver
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo repositories.ReportRepository,
	imageRepo repositories.ImageRepository,
	userRepo repositories.UserRepository,
	notificationService *NotificationService,
	urls *URLResolver,
) *ReportService {
	return &ReportService{
		reports:       reportRepo,
		images:        imageRepo,
		users:         userRepo,
		notifications: notificationService,
		urls:          urls,
	}
}

// CreateReport files a report against an image. A reporter may have at
// most one pending report per image.
func (s *ReportService) CreateReport(reporterID, imageID uint, reason string) (*ReportView, error) {
	if _, err := s.users.GetUserByID(reporterID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, reporterID)
		}
		return nil, err
	}

	exists, err := s.images.ImageExists(imageID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: image %d", ErrNotFound, imageID)
	}

	pending, err := s.reports.HasPendingReport(reporterID, imageID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("%w: you already have a pending report for this image", ErrInvalidOperation)
	}

	report := &models.Report{
		ReporterID: reporterID,
		ImageID:    imageID,
		Reason:     reason,
		Status:     models.ReportPending,
	}
	if err := s.reports.CreateReport(report); err != nil {
		return nil, err
	}
	view := s.toView(report)
	return &view, nil
}

// ResolveReport closes a pending report as RESOLVED or REJECTED and
// records who resolved it and when. Resolving a report twice is a
// conflict. The reporter is notified unless they resolved their own
// report.
func (s *ReportService) ResolveReport(id, resolverID uint, status models.ReportStatus) (*ReportView, error) {
	report, err := s.reports.GetReportByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: report %d", ErrNotFound, id)
		}
		return nil, err
	}

	if report.Status != models.ReportPending {
		return nil, fmt.Errorf("%w: report has already been resolved", ErrInvalidOperation)
	}
	if status != models.ReportResolved && status != models.ReportRejected {
		return nil, fmt.Errorf("%w: invalid resolution status %q", ErrInvalidOperation, status)
	}

	now := time.Now().UTC()
	report.Status = status
	report.ResolvedByID = &resolverID
	report.ResolvedAt = &now
	if err := s.reports.UpdateReport(report); err != nil {
		return nil, err
	}

	if report.ReporterID != resolverID {
		content := fmt.Sprintf("Your report has been %s.", statusWord(status))
		if _, err := s.notifications.CreateNotification(report.ReporterID, models.NotificationReportResolution, report.ID, content); err != nil {
			log.Printf("Failed to create report resolution notification: %v", err)
		}
	}

	view := s.toView(report)
	return &view, nil
}

// GetReportByID returns a single report view.
func (s *ReportService) GetReportByID(id uint) (*ReportView, error) {
	report, err := s.reports.GetReportByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: report %d", ErrNotFound, id)
		}
		return nil, err
	}
	view := s.toView(report)
	return &view, nil
}

// GetReports lists reports newest first, pending only unless
// includeResolved is set.
func (s *ReportService) GetReports(includeResolved bool) ([]ReportView, error) {
	reports, err := s.reports.GetReports(includeResolved)
	if err != nil {
		return nil, err
	}
	return s.toViews(reports), nil
}

// GetReportsByImageID lists reports filed against an image.
func (s *ReportService) GetReportsByImageID(imageID uint) ([]ReportView, error) {
	exists, err := s.images.ImageExists(imageID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: image %d", ErrNotFound, imageID)
	}
	reports, err := s.reports.GetReportsByImageID(imageID)
	if err != nil {
		return nil, err
	}
	return s.toViews(reports), nil
}

// GetReportsByReporterID lists reports filed by a user.
func (s *ReportService) GetReportsByReporterID(reporterID uint) ([]ReportView, error) {
	reports, err := s.reports.GetReportsByReporterID(reporterID)
	if err != nil {
		return nil, err
	}
	return s.toViews(reports), nil
}

// CountPendingReports returns how many reports are still pending.
func (s *ReportService) CountPendingReports() (int64, error) {
	return s.reports.CountPendingReports()
}

func (s *ReportService) toView(report *models.Report) ReportView {
	view := ReportView{
		ID:           report.ID,
		ReporterID:   report.ReporterID,
		ImageID:      report.ImageID,
		Reason:       report.Reason,
		Status:       report.Status,
		ResolvedByID: report.ResolvedByID,
		CreatedAt:    report.CreatedAt,
		ResolvedAt:   report.ResolvedAt,
	}
	if reporter, err := s.users.GetUserByID(report.ReporterID); err == nil {
		view.ReporterUsername = reporter.Username
	}
	if report.ResolvedByID != nil {
		if resolver, err := s.users.GetUserByID(*report.ResolvedByID); err == nil {
			view.ResolvedByUsername = resolver.Username
		}
	}
	if image, err := s.images.GetImageByID(report.ImageID); err == nil {
		view.ImageURL = s.urls.Resolve(image.ImageURL)
	}
	return view
}

func (s *ReportService) toViews(reports []models.Report) []ReportView {
	views := make([]ReportView, 0, len(reports))
	for i := range reports {
		views = append(views, s.toView(&reports[i]))
	}
	return views
}

func statusWord(status models.ReportStatus) string {
	if status == models.ReportResolved {
		return "resolved"
	}
	return "rejected"
}
