package repositories

import (
	"github.com/socialpicture/backend/internal/models"
	"gorm.io/gorm"
)

// ImageRepository defines the interface for image data operations
type ImageRepository interface {
	CreateImage(image *models.Image) error
	GetImageByID(id uint) (*models.Image, error)
	GetImages(publicOnly bool) ([]models.Image, error)
	GetImagesByUserID(userID uint) ([]models.Image, error)
	GetImagesByUserIDs(userIDs []uint) ([]models.Image, error)
	GetImagesByIDs(ids []uint) ([]models.Image, error)
	UpdateImage(image *models.Image) error
	DeleteImage(id uint) error
	CountImagesByUserID(userID uint) (int64, error)
	ImageExists(id uint) (bool, error)
	SearchImagesByCaption(query string, offset, limit int) ([]models.Image, error)
}

// PostgresImageRepository implements ImageRepository for PostgreSQL
type PostgresImageRepository struct {
	db *gorm.DB
}

// NewPostgresImageRepository creates a new PostgresImageRepository
func NewPostgresImageRepository(db *gorm.DB) *PostgresImageRepository {
	return &PostgresImageRepository{db: db}
}

func (r *PostgresImageRepository) CreateImage(image *models.Image) error {
	return r.db.Create(image).Error
}

func (r *PostgresImageRepository) GetImageByID(id uint) (*models.Image, error) {
	var image models.Image
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *PostgresImageRepository) GetImages(publicOnly bool) ([]models.Image, error) {
	var images []models.Image
	q := r.db.Order("created_at DESC")
	if publicOnly {
		q = q.Where("is_public = ?", true)
	}
	if err := q.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *PostgresImageRepository) GetImagesByUserID(userID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&images).Error
	return images, err
}

func (r *PostgresImageRepository) GetImagesByUserIDs(userIDs []uint) ([]models.Image, error) {
	var images []models.Image
	if len(userIDs) == 0 {
		return images, nil
	}
	err := r.db.Where("user_id IN ? AND is_public = ?", userIDs, true).
		Order("created_at DESC").
		Find(&images).Error
	return images, err
}

func (r *PostgresImageRepository) GetImagesByIDs(ids []uint) ([]models.Image, error) {
	var images []models.Image
	if len(ids) == 0 {
		return images, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&images).Error
	return images, err
}

func (r *PostgresImageRepository) UpdateImage(image *models.Image) error {
	return r.db.Save(image).Error
}

func (r *PostgresImageRepository) DeleteImage(id uint) error {
	return r.db.Delete(&models.Image{}, id).Error
}

func (r *PostgresImageRepository) CountImagesByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Image{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresImageRepository) ImageExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Image{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// SearchImagesByCaption searches public images by caption (case-insensitive)
func (r *PostgresImageRepository) SearchImagesByCaption(query string, offset, limit int) ([]models.Image, error) {
	var images []models.Image
	err := r.db.Where("is_public = ? AND LOWER(caption) LIKE LOWER(?)", true, "%"+query+"%").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&images).Error
	return images, err
}
