package services

import (
	"fmt"
	"log"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
)

// CommentLikeService manages likes on comments and their notification
// side effects.
type CommentLikeService struct {
	commentLikes  repositories.CommentLikeRepository
	comments      repositories.CommentRepository
	users         repositories.UserRepository
	notifications *NotificationService
	urls          *URLResolver
}

// NewCommentLikeService creates a new CommentLikeService
func NewCommentLikeService(
	commentLikeRepo repositories.CommentLikeRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	notificationService *NotificationService,
	urls *URLResolver,
) *CommentLikeService {
	return &CommentLikeService{
		commentLikes:  commentLikeRepo,
		comments:      commentRepo,
		users:         userRepo,
		notifications: notificationService,
		urls:          urls,
	}
}

// LikeComment records a like from the user on the comment. Liking the
// same comment twice is a conflict. The comment author is notified
// unless they liked their own comment.
func (s *CommentLikeService) LikeComment(commentID, userID uint) error {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}

	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return err
	}

	liked, err := s.commentLikes.HasUserLikedComment(commentID, userID)
	if err != nil {
		return err
	}
	if liked {
		return fmt.Errorf("%w: you have already liked this comment", ErrInvalidOperation)
	}

	if err := s.commentLikes.CreateCommentLike(&models.CommentLike{CommentID: commentID, UserID: userID}); err != nil {
		return err
	}

	if comment.UserID != userID {
		content := fmt.Sprintf("%s liked your comment.", user.Username)
		if _, err := s.notifications.CreateNotification(comment.UserID, models.NotificationCommentLike, commentID, content); err != nil {
			log.Printf("Failed to create comment like notification: %v", err)
		}
	}
	return nil
}

// UnlikeComment removes the user's like from the comment. Removing a
// like that does not exist is a conflict.
func (s *CommentLikeService) UnlikeComment(commentID, userID uint) error {
	if _, err := s.comments.GetCommentByID(commentID); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return err
	}

	liked, err := s.commentLikes.HasUserLikedComment(commentID, userID)
	if err != nil {
		return err
	}
	if !liked {
		return fmt.Errorf("%w: you have not liked this comment", ErrInvalidOperation)
	}

	return s.commentLikes.DeleteCommentLike(commentID, userID)
}

// GetLikesByCommentID lists who liked a comment, most recent first.
func (s *CommentLikeService) GetLikesByCommentID(commentID uint) ([]LikeView, error) {
	if _, err := s.comments.GetCommentByID(commentID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return nil, err
	}

	likes, err := s.commentLikes.GetCommentLikesByCommentID(commentID)
	if err != nil {
		return nil, err
	}

	views := make([]LikeView, 0, len(likes))
	for i := range likes {
		view := LikeView{UserID: likes[i].UserID}
		if user, err := s.users.GetUserByID(likes[i].UserID); err == nil {
			view.Username = user.Username
			view.UserProfilePicture = s.urls.Resolve(user.ProfilePicture)
		}
		views = append(views, view)
	}
	return views, nil
}

// GetLikesCount returns how many likes a comment has.
func (s *CommentLikeService) GetLikesCount(commentID uint) (int64, error) {
	if _, err := s.comments.GetCommentByID(commentID); err != nil {
		if isRecordNotFound(err) {
			return 0, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return 0, err
	}
	return s.commentLikes.GetLikesCount(commentID)
}

// HasUserLikedComment reports whether the user liked the comment.
func (s *CommentLikeService) HasUserLikedComment(commentID, userID uint) (bool, error) {
	return s.commentLikes.HasUserLikedComment(commentID, userID)
}
