package repositories

import (
	"fmt"

	"github.com/socialpicture/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for image like operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(imageID, userID uint) error
	DeleteLikesByImageID(imageID uint) error
	HasUserLikedImage(imageID, userID uint) (bool, error)
	GetLikesByImageID(imageID uint) ([]models.Like, error)
	GetLikesCountByImageID(imageID uint) (int64, error)
	GetLatestLike(imageID uint) (*models.Like, error)
	GetLikedImageIDsByUserID(userID uint) ([]uint, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *PostgresLikeRepository) DeleteLike(imageID, userID uint) error {
	res := r.db.Where("image_id = ? AND user_id = ?", imageID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

func (r *PostgresLikeRepository) DeleteLikesByImageID(imageID uint) error {
	return r.db.Where("image_id = ?", imageID).Delete(&models.Like{}).Error
}

func (r *PostgresLikeRepository) HasUserLikedImage(imageID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("image_id = ? AND user_id = ?", imageID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresLikeRepository) GetLikesByImageID(imageID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.Where("image_id = ?", imageID).Order("created_at DESC").Find(&likes).Error
	return likes, err
}

func (r *PostgresLikeRepository) GetLikesCountByImageID(imageID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("image_id = ?", imageID).Count(&count).Error
	return count, err
}

// GetLatestLike returns the most recent like on an image.
func (r *PostgresLikeRepository) GetLatestLike(imageID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.Where("image_id = ?", imageID).Order("created_at DESC").First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// GetLikedImageIDsByUserID returns ids of images the user liked, most
// recently liked first.
func (r *PostgresLikeRepository) GetLikedImageIDsByUserID(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Like{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("image_id", &ids).Error
	return ids, err
}
