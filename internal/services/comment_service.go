package services

import (
	"fmt"
	"log"
	"time"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
)

// CommentView is the read shape returned for a comment, including its
// full reply subtree and like-derived fields.
type CommentView struct {
	ID                   uint          `json:"id"`
	UserID               uint          `json:"user_id"`
	Username             string        `json:"username"`
	UserProfilePicture   string        `json:"user_profile_picture,omitempty"`
	ImageID              uint          `json:"image_id"`
	Content              string        `json:"content"`
	ParentCommentID      *uint         `json:"parent_comment_id"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
	LikesCount           int64         `json:"likes_count"`
	IsLikedByCurrentUser bool          `json:"is_liked_by_current_user"`
	RepliesCount         int64         `json:"replies_count"`
	Replies              []CommentView `json:"replies"`
}

// CommentService maintains the per-image comment forest: root comments
// ordered newest first, each carrying its reply subtree expanded
// recursively oldest first. Expansion costs one fetch per tree level.
type CommentService struct {
	comments      repositories.CommentRepository
	commentLikes  repositories.CommentLikeRepository
	images        repositories.ImageRepository
	users         repositories.UserRepository
	notifications *NotificationService
	urls          *URLResolver
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repositories.CommentRepository,
	commentLikeRepo repositories.CommentLikeRepository,
	imageRepo repositories.ImageRepository,
	userRepo repositories.UserRepository,
	notificationService *NotificationService,
	urls *URLResolver,
) *CommentService {
	return &CommentService{
		comments:      commentRepo,
		commentLikes:  commentLikeRepo,
		images:        imageRepo,
		users:         userRepo,
		notifications: notificationService,
		urls:          urls,
	}
}

// GetCommentsByImageID returns the root comments of an image, newest
// first, each with its full reply subtree attached.
func (s *CommentService) GetCommentsByImageID(imageID uint, currentUserID *uint) ([]CommentView, error) {
	exists, err := s.images.ImageExists(imageID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: image %d", ErrNotFound, imageID)
	}

	roots, err := s.comments.GetRootCommentsByImageID(imageID)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(roots))
	for i := range roots {
		view, err := s.toView(&roots[i], currentUserID)
		if err != nil {
			return nil, err
		}
		view.Replies, err = s.expandReplies(roots[i].ID, currentUserID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetCommentByID returns a single comment. Root comments get their full
// reply subtree; a reply keeps an empty slice so it stays addressable
// without repeating the expansion its root already produced.
func (s *CommentService) GetCommentByID(id uint, currentUserID *uint) (*CommentView, error) {
	comment, err := s.comments.GetCommentByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, id)
		}
		return nil, err
	}

	view, err := s.toView(comment, currentUserID)
	if err != nil {
		return nil, err
	}
	if comment.ParentCommentID == nil {
		view.Replies, err = s.expandReplies(comment.ID, currentUserID)
		if err != nil {
			return nil, err
		}
	}
	return view, nil
}

// CreateComment persists a new comment or reply. A reply's parent must
// exist and belong to the same image. The image owner is notified unless
// they wrote the comment themselves.
func (s *CommentService) CreateComment(userID, imageID uint, content string, parentCommentID *uint) (*CommentView, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	image, err := s.images.GetImageByID(imageID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: image %d", ErrNotFound, imageID)
		}
		return nil, err
	}

	if parentCommentID != nil {
		parent, err := s.comments.GetCommentByID(*parentCommentID)
		if err != nil {
			if isRecordNotFound(err) {
				return nil, fmt.Errorf("%w: parent comment %d", ErrNotFound, *parentCommentID)
			}
			return nil, err
		}
		if parent.ImageID != imageID {
			return nil, fmt.Errorf("%w: parent comment does not belong to the specified image", ErrInvalidOperation)
		}
	}

	comment := &models.Comment{
		UserID:          userID,
		ImageID:         imageID,
		Content:         content,
		ParentCommentID: parentCommentID,
	}
	if err := s.comments.CreateComment(comment); err != nil {
		return nil, err
	}

	if image.UserID != userID {
		content := fmt.Sprintf("%s commented on your image.", user.Username)
		if _, err := s.notifications.CreateNotification(image.UserID, models.NotificationComment, comment.ID, content); err != nil {
			log.Printf("Failed to create comment notification: %v", err)
		}
	}

	view, err := s.toView(comment, &userID)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateComment changes a comment's content. Only the author may edit;
// there is no admin override for edits.
func (s *CommentService) UpdateComment(id, userID uint, content string) (*CommentView, error) {
	comment, err := s.comments.GetCommentByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, id)
		}
		return nil, err
	}

	if comment.UserID != userID {
		return nil, fmt.Errorf("%w: you don't have permission to update this comment", ErrUnauthorized)
	}

	comment.Content = content
	comment.UpdatedAt = time.Now().UTC()
	if err := s.comments.UpdateComment(comment); err != nil {
		return nil, err
	}

	view, err := s.toView(comment, &userID)
	if err != nil {
		return nil, err
	}
	if comment.ParentCommentID == nil {
		view.Replies, err = s.expandReplies(comment.ID, &userID)
		if err != nil {
			return nil, err
		}
	}
	return view, nil
}

// DeleteComment removes a comment and its entire reply subtree. Allowed
// for the author or an administrator.
func (s *CommentService) DeleteComment(id, userID uint) error {
	comment, err := s.comments.GetCommentByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: comment %d", ErrNotFound, id)
		}
		return err
	}

	if comment.UserID != userID {
		user, err := s.users.GetUserByID(userID)
		if err != nil || user.Role != models.RoleAdmin {
			return fmt.Errorf("%w: you don't have permission to delete this comment", ErrUnauthorized)
		}
	}

	return s.deleteSubtree(id)
}

// deleteSubtree removes a comment and its descendants depth-first, leaves
// before parents, so no orphaned rows remain without store-level cascade.
func (s *CommentService) deleteSubtree(id uint) error {
	childIDs, err := s.comments.GetChildCommentIDs(id)
	if err != nil {
		return err
	}
	for _, childID := range childIDs {
		if err := s.deleteSubtree(childID); err != nil {
			return err
		}
	}
	if err := s.commentLikes.DeleteCommentLikesByCommentID(id); err != nil {
		return err
	}
	return s.comments.DeleteComment(id)
}

// GetRepliesByCommentID returns the reply subtree of a comment.
func (s *CommentService) GetRepliesByCommentID(commentID uint, currentUserID *uint) ([]CommentView, error) {
	if _, err := s.comments.GetCommentByID(commentID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return nil, err
	}
	return s.expandReplies(commentID, currentUserID)
}

// expandReplies fetches the direct replies of a comment, oldest first,
// and recursively expands each of them the same way. Depth is bounded
// only by the data.
func (s *CommentService) expandReplies(parentID uint, currentUserID *uint) ([]CommentView, error) {
	replies, err := s.comments.GetCommentsByParentID(parentID)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(replies))
	for i := range replies {
		view, err := s.toView(&replies[i], currentUserID)
		if err != nil {
			return nil, err
		}
		view.Replies, err = s.expandReplies(replies[i].ID, currentUserID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// toView maps a comment row to its read shape with derived fields. The
// replies slice starts empty; callers attach subtrees where appropriate.
func (s *CommentService) toView(comment *models.Comment, currentUserID *uint) (*CommentView, error) {
	likesCount, err := s.commentLikes.GetLikesCount(comment.ID)
	if err != nil {
		return nil, err
	}

	repliesCount, err := s.comments.CountCommentsByParentID(comment.ID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	if currentUserID != nil {
		isLiked, err = s.commentLikes.HasUserLikedComment(comment.ID, *currentUserID)
		if err != nil {
			return nil, err
		}
	}

	view := &CommentView{
		ID:                   comment.ID,
		UserID:               comment.UserID,
		ImageID:              comment.ImageID,
		Content:              comment.Content,
		ParentCommentID:      comment.ParentCommentID,
		CreatedAt:            comment.CreatedAt,
		UpdatedAt:            comment.UpdatedAt,
		LikesCount:           likesCount,
		IsLikedByCurrentUser: isLiked,
		RepliesCount:         repliesCount,
		Replies:              []CommentView{},
	}

	// the author may have been deleted; the view keeps an empty username
	if author, err := s.users.GetUserByID(comment.UserID); err == nil {
		view.Username = author.Username
		view.UserProfilePicture = s.urls.Resolve(author.ProfilePicture)
	}

	return view, nil
}
