package repositories

import (
	"github.com/socialpicture/backend/internal/models"
	"gorm.io/gorm"
)

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	CreateReport(report *models.Report) error
	GetReportByID(id uint) (*models.Report, error)
	GetReports(includeResolved bool) ([]models.Report, error)
	GetReportsByImageID(imageID uint) ([]models.Report, error)
	GetReportsByReporterID(reporterID uint) ([]models.Report, error)
	HasPendingReport(reporterID, imageID uint) (bool, error)
	UpdateReport(report *models.Report) error
	DeleteReportsByImageID(imageID uint) error
	CountPendingReports() (int64, error)
}

type postgresReportRepository struct {
	db *gorm.DB
}

// NewPostgresReportRepository creates a ReportRepository backed by PostgreSQL
func NewPostgresReportRepository(db *gorm.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) CreateReport(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *postgresReportRepository) GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *postgresReportRepository) GetReports(includeResolved bool) ([]models.Report, error) {
	var reports []models.Report
	q := r.db.Order("created_at DESC")
	if !includeResolved {
		q = q.Where("status = ?", models.ReportPending)
	}
	err := q.Find(&reports).Error
	return reports, err
}

func (r *postgresReportRepository) GetReportsByImageID(imageID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Where("image_id = ?", imageID).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *postgresReportRepository) GetReportsByReporterID(reporterID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Where("reporter_id = ?", reporterID).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *postgresReportRepository) HasPendingReport(reporterID, imageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("reporter_id = ? AND image_id = ? AND status = ?", reporterID, imageID, models.ReportPending).
		Count(&count).Error
	return count > 0, err
}

func (r *postgresReportRepository) UpdateReport(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *postgresReportRepository) DeleteReportsByImageID(imageID uint) error {
	return r.db.Where("image_id = ?", imageID).Delete(&models.Report{}).Error
}

func (r *postgresReportRepository) CountPendingReports() (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Where("status = ?", models.ReportPending).Count(&count).Error
	return count, err
}
