package repositories

import (
	"fmt"

	"github.com/socialpicture/backend/internal/models"
	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	CreateTag(tag *models.Tag) error
	GetTagByID(id uint) (*models.Tag, error)
	GetTagByName(name string) (*models.Tag, error)
	GetTags() ([]models.Tag, error)
	DeleteTag(id uint) error
	AttachTagToImage(imageTag *models.ImageTag) error
	DetachTagFromImage(imageID, tagID uint) error
	DeleteImageTagsByImageID(imageID uint) error
	HasImageTag(imageID, tagID uint) (bool, error)
	GetTagsByImageID(imageID uint) ([]models.Tag, error)
	GetImageIDsByTagID(tagID uint) ([]uint, error)
	GetPopularTags(limit int) ([]models.Tag, error)
}

type postgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a TagRepository backed by PostgreSQL
func NewPostgresTagRepository(db *gorm.DB) TagRepository {
	return &postgresTagRepository{db: db}
}

func (r *postgresTagRepository) CreateTag(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *postgresTagRepository) GetTagByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *postgresTagRepository) GetTagByName(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *postgresTagRepository) GetTags() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *postgresTagRepository) DeleteTag(id uint) error {
	if err := r.db.Where("tag_id = ?", id).Delete(&models.ImageTag{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Tag{}, id).Error
}

func (r *postgresTagRepository) AttachTagToImage(imageTag *models.ImageTag) error {
	return r.db.Create(imageTag).Error
}

func (r *postgresTagRepository) DetachTagFromImage(imageID, tagID uint) error {
	res := r.db.Where("image_id = ? AND tag_id = ?", imageID, tagID).Delete(&models.ImageTag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("image tag not found")
	}
	return nil
}

func (r *postgresTagRepository) DeleteImageTagsByImageID(imageID uint) error {
	return r.db.Where("image_id = ?", imageID).Delete(&models.ImageTag{}).Error
}

func (r *postgresTagRepository) HasImageTag(imageID, tagID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ImageTag{}).Where("image_id = ? AND tag_id = ?", imageID, tagID).Count(&count).Error
	return count > 0, err
}

func (r *postgresTagRepository) GetTagsByImageID(imageID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.ImageTag{}).Select("tag_id").Where("image_id = ?", imageID),
	).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *postgresTagRepository) GetImageIDsByTagID(tagID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ImageTag{}).Where("tag_id = ?", tagID).Pluck("image_id", &ids).Error
	return ids, err
}

// GetPopularTags returns tags ordered by how many images carry them.
func (r *postgresTagRepository) GetPopularTags(limit int) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Model(&models.Tag{}).
		Joins("JOIN image_tags ON image_tags.tag_id = tags.id").
		Group("tags.id").
		Order("COUNT(image_tags.id) DESC").
		Limit(limit).
		Find(&tags).Error
	return tags, err
}
