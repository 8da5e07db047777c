package repositories

import (
	"github.com/socialpicture/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetRootCommentsByImageID(imageID uint) ([]models.Comment, error)
	GetCommentsByParentID(parentID uint) ([]models.Comment, error)
	GetChildCommentIDs(parentID uint) ([]uint, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
	DeleteCommentsByImageID(imageID uint) error
	CountCommentsByImageID(imageID uint) (int64, error)
	CountCommentsByParentID(parentID uint) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetRootCommentsByImageID returns comments with no parent for an image,
// newest first.
func (r *PostgresCommentRepository) GetRootCommentsByImageID(imageID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("image_id = ? AND parent_comment_id IS NULL", imageID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// GetCommentsByParentID returns direct replies to a comment, oldest first.
func (r *PostgresCommentRepository) GetCommentsByParentID(parentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("parent_comment_id = ?", parentID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) GetChildCommentIDs(parentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Comment{}).Where("parent_comment_id = ?", parentID).Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

func (r *PostgresCommentRepository) DeleteCommentsByImageID(imageID uint) error {
	return r.db.Where("image_id = ?", imageID).Delete(&models.Comment{}).Error
}

func (r *PostgresCommentRepository) CountCommentsByImageID(imageID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("image_id = ?", imageID).Count(&count).Error
	return count, err
}

func (r *PostgresCommentRepository) CountCommentsByParentID(parentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("parent_comment_id = ?", parentID).Count(&count).Error
	return count, err
}
