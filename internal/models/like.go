package models

import "time"

// Like represents a like on an image
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ImageID   uint      `json:"image_id" gorm:"index;uniqueIndex:idx_image_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_image_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
