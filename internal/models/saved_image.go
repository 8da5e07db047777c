package models

import "time"

// SavedImage represents a bookmarked image
type SavedImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_image_save"`
	ImageID   uint      `json:"image_id" gorm:"index;uniqueIndex:idx_user_image_save"`
	CreatedAt time.Time `json:"created_at"`
}
