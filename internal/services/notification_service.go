package services

import (
	"fmt"
	"time"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
)

// NotificationView is the read shape returned for a notification. The
// sender profile picture is resolved per item and may be absent.
type NotificationView struct {
	ID                   uint                    `json:"id"`
	UserID               uint                    `json:"user_id"`
	Type                 models.NotificationType `json:"type"`
	ReferenceID          uint                    `json:"reference_id"`
	Content              string                  `json:"content"`
	IsRead               bool                    `json:"is_read"`
	CreatedAt            time.Time               `json:"created_at"`
	SenderProfilePicture *string                 `json:"sender_profile_picture,omitempty"`
}

// NotificationSummary bundles the unread count with the most recent
// notifications.
type NotificationSummary struct {
	UnreadCount         int64              `json:"unread_count"`
	RecentNotifications []NotificationView `json:"recent_notifications"`
}

// recentNotificationLimit is how many entries a summary carries.
const recentNotificationLimit = 5

// NotificationService records notifications as side effects of other
// actions and materializes read views. Callers must not invoke
// CreateNotification when the actor and the recipient are the same user;
// the trigger sites suppress self-actions.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	likes         repositories.LikeRepository
	commentLikes  repositories.CommentLikeRepository
	comments      repositories.CommentRepository
	reports       repositories.ReportRepository
	urls          *URLResolver
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentLikeRepo repositories.CommentLikeRepository,
	commentRepo repositories.CommentRepository,
	reportRepo repositories.ReportRepository,
	urls *URLResolver,
) *NotificationService {
	return &NotificationService{
		notifications: notificationRepo,
		users:         userRepo,
		likes:         likeRepo,
		commentLikes:  commentLikeRepo,
		comments:      commentRepo,
		reports:       reportRepo,
		urls:          urls,
	}
}

// CreateNotification persists a new unread notification for the recipient.
func (s *NotificationService) CreateNotification(userID uint, notificationType models.NotificationType, referenceID uint, content string) (*models.Notification, error) {
	if _, err := s.users.GetUserByID(userID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	notification := &models.Notification{
		UserID:      userID,
		Type:        notificationType,
		ReferenceID: referenceID,
		Content:     content,
		IsRead:      false,
	}
	if err := s.notifications.CreateNotification(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// GetNotificationsByUserID returns the user's notifications newest first,
// optionally filtered to unread ones.
func (s *NotificationService) GetNotificationsByUserID(userID uint, unreadOnly bool) ([]NotificationView, error) {
	notifications, err := s.notifications.GetNotificationsByUserID(userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	views := make([]NotificationView, 0, len(notifications))
	for i := range notifications {
		views = append(views, s.toView(&notifications[i]))
	}
	return views, nil
}

// GetNotificationByID returns a single notification with its sender
// attribute resolved.
func (s *NotificationService) GetNotificationByID(id uint) (*NotificationView, error) {
	notification, err := s.notifications.GetNotificationByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: notification %d", ErrNotFound, id)
		}
		return nil, err
	}
	view := s.toView(notification)
	return &view, nil
}

// MarkAsRead flips a notification to read. Marking an already-read
// notification is a no-op success.
func (s *NotificationService) MarkAsRead(id uint) error {
	if _, err := s.notifications.GetNotificationByID(id); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: notification %d", ErrNotFound, id)
		}
		return err
	}
	return s.notifications.MarkAsRead(id)
}

// MarkAllAsRead marks every unread notification for the user as read.
// Calling it with zero unread notifications is a no-op success.
func (s *NotificationService) MarkAllAsRead(userID uint) error {
	return s.notifications.MarkAllAsRead(userID)
}

// GetUnreadCount returns the number of unread notifications for the user.
func (s *NotificationService) GetUnreadCount(userID uint) (int64, error) {
	return s.notifications.GetUnreadCount(userID)
}

// GetSummary returns the unread count plus the most recent notifications,
// newest first.
func (s *NotificationService) GetSummary(userID uint) (*NotificationSummary, error) {
	unread, err := s.notifications.GetUnreadCount(userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.notifications.GetRecentNotifications(userID, recentNotificationLimit)
	if err != nil {
		return nil, err
	}

	views := make([]NotificationView, 0, len(recent))
	for i := range recent {
		views = append(views, s.toView(&recent[i]))
	}

	return &NotificationSummary{
		UnreadCount:         unread,
		RecentNotifications: views,
	}, nil
}

// DeleteNotification removes a notification. Not part of the primary
// flows but exposed for cleanup.
func (s *NotificationService) DeleteNotification(id uint) error {
	if _, err := s.notifications.GetNotificationByID(id); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: notification %d", ErrNotFound, id)
		}
		return err
	}
	return s.notifications.DeleteNotification(id)
}

func (s *NotificationService) toView(n *models.Notification) NotificationView {
	return NotificationView{
		ID:                   n.ID,
		UserID:               n.UserID,
		Type:                 n.Type,
		ReferenceID:          n.ReferenceID,
		Content:              n.Content,
		IsRead:               n.IsRead,
		CreatedAt:            n.CreatedAt,
		SenderProfilePicture: s.resolveSenderPicture(n.Type, n.ReferenceID),
	}
}

// resolveSenderPicture resolves the profile picture of the user behind a
// notification. The lookup strategy depends on the type; the reference id
// is not a foreign key to a single table. Resolution is best-effort: a
// stale reference (e.g. a like that was since removed) yields nil, never
// an error, so notification reads cannot fail on cosmetic data.
func (s *NotificationService) resolveSenderPicture(notificationType models.NotificationType, referenceID uint) *string {
	switch notificationType {
	case models.NotificationLike:
		// reference is an image id; the sender is whoever liked it last
		like, err := s.likes.GetLatestLike(referenceID)
		if err != nil {
			return nil
		}
		return s.userPicture(like.UserID)

	case models.NotificationCommentLike:
		// reference is a comment id; the sender is its most recent liker
		like, err := s.commentLikes.GetLatestCommentLike(referenceID)
		if err != nil {
			return nil
		}
		return s.userPicture(like.UserID)

	case models.NotificationComment:
		// reference is a comment id; the sender is its author
		comment, err := s.comments.GetCommentByID(referenceID)
		if err != nil {
			return nil
		}
		return s.userPicture(comment.UserID)

	case models.NotificationFollow:
		// reference is the follower's user id
		return s.userPicture(referenceID)

	case models.NotificationReportResolution:
		// reference is a report id; the sender is the resolving moderator
		report, err := s.reports.GetReportByID(referenceID)
		if err != nil || report.ResolvedByID == nil {
			return nil
		}
		return s.userPicture(*report.ResolvedByID)

	default:
		// image_deletion is reserved and has no resolution rule
		return nil
	}
}

func (s *NotificationService) userPicture(userID uint) *string {
	user, err := s.users.GetUserByID(userID)
	if err != nil || user.ProfilePicture == "" {
		return nil
	}
	picture := s.urls.Resolve(user.ProfilePicture)
	return &picture
}
