package models

import "time"

// Image represents a posted picture
type Image struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ImageURL  string    `json:"image_url"` // relative storage path or absolute URL
	Caption   string    `json:"caption" gorm:"size:500"`
	// no gorm default here: a default would swallow an explicit false on insert
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateImageRequest defines the request body for posting an image
type CreateImageRequest struct {
	ImageURL string `json:"image_url" validate:"required"`
	Caption  string `json:"caption" validate:"omitempty,max=500"`
	IsPublic *bool  `json:"is_public,omitempty"`
}

// UpdateImageRequest defines the request body for editing an image
type UpdateImageRequest struct {
	Caption  *string `json:"caption,omitempty" validate:"omitempty,max=500"`
	IsPublic *bool   `json:"is_public,omitempty"`
}
