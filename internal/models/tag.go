package models

import "time"

// Tag represents a label that can be attached to images
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageTag links an image to a tag
type ImageTag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ImageID   uint      `json:"image_id" gorm:"index;uniqueIndex:idx_image_tag"`
	TagID     uint      `json:"tag_id" gorm:"index;uniqueIndex:idx_image_tag"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTagRequest defines the request body for creating a tag
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}
