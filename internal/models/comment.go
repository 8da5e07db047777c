package models

import "time"

// Comment represents a comment on an image. A nil ParentCommentID marks a
// root comment; replies reference their parent through it, forming a
// per-image forest.
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"index"`
	ImageID         uint      `json:"image_id" gorm:"index"`
	Content         string    `json:"content" gorm:"size:500"`
	ParentCommentID *uint     `json:"parent_comment_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a comment
type CreateCommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=500"`
	ParentCommentID *uint  `json:"parent_comment_id,omitempty"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
