package models

import "time"

// NotificationType tags a notification with the action that produced it.
// The meaning of ReferenceID depends on the type: an image id for likes,
// a comment id for comments and comment likes, the follower's user id for
// follows and a report id for report resolutions.
type NotificationType string

const (
	NotificationLike             NotificationType = "like"
	NotificationCommentLike      NotificationType = "comment_like"
	NotificationComment          NotificationType = "comment"
	NotificationFollow           NotificationType = "follow"
	NotificationReportResolution NotificationType = "report_resolution"
	// NotificationImageDeletion is reserved; nothing creates it yet.
	NotificationImageDeletion NotificationType = "image_deletion"
)

// Notification represents a stored notification for a user
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	UserID      uint             `json:"user_id" gorm:"index"`
	Type        NotificationType `json:"type" gorm:"size:30;index"`
	ReferenceID uint             `json:"reference_id"`
	Content     string           `json:"content" gorm:"size:500"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}
