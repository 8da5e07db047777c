package repositories

import (
	"fmt"

	"github.com/socialpicture/backend/internal/models"
	"gorm.io/gorm"
)

// SavedImageRepository defines the interface for saved image operations
type SavedImageRepository interface {
	SaveImage(saved *models.SavedImage) error
	UnsaveImage(userID, imageID uint) error
	DeleteSavedByImageID(imageID uint) error
	HasUserSavedImage(userID, imageID uint) (bool, error)
	GetSavedImageIDsByUserID(userID uint) ([]uint, error)
}

type postgresSavedImageRepository struct {
	db *gorm.DB
}

// NewPostgresSavedImageRepository creates a SavedImageRepository backed by PostgreSQL
func NewPostgresSavedImageRepository(db *gorm.DB) SavedImageRepository {
	return &postgresSavedImageRepository{db: db}
}

func (r *postgresSavedImageRepository) SaveImage(saved *models.SavedImage) error {
	return r.db.Create(saved).Error
}

func (r *postgresSavedImageRepository) UnsaveImage(userID, imageID uint) error {
	res := r.db.Where("user_id = ? AND image_id = ?", userID, imageID).Delete(&models.SavedImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("saved image not found")
	}
	return nil
}

func (r *postgresSavedImageRepository) DeleteSavedByImageID(imageID uint) error {
	return r.db.Where("image_id = ?", imageID).Delete(&models.SavedImage{}).Error
}

func (r *postgresSavedImageRepository) HasUserSavedImage(userID, imageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedImage{}).Where("user_id = ? AND image_id = ?", userID, imageID).Count(&count).Error
	return count > 0, err
}

// GetSavedImageIDsByUserID returns ids of images saved by the user, most
// recently saved first.
func (r *postgresSavedImageRepository) GetSavedImageIDsByUserID(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.SavedImage{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("image_id", &ids).Error
	return ids, err
}
