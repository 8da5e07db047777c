package services

import (
	"fmt"
	"log"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
)

// LikeView is the read shape returned for a like row.
type LikeView struct {
	UserID             uint   `json:"user_id"`
	Username           string `json:"username"`
	UserProfilePicture string `json:"user_profile_picture,omitempty"`
	ImageID            uint   `json:"image_id"`
}

// LikeService manages image likes and their notification side effects.
type LikeService struct {
	likes         repositories.LikeRepository
	images        repositories.ImageRepository
	users         repositories.UserRepository
	notifications *NotificationService
	urls          *URLResolver
}

// NewLikeService creates a new LikeService
func NewLikeService(
	likeRepo repositories.LikeRepository,
	imageRepo repositories.ImageRepository,
	userRepo repositories.UserRepository,
	notificationService *NotificationService,
	urls *URLResolver,
) *LikeService {
	return &LikeService{
		likes:         likeRepo,
		images:        imageRepo,
		users:         userRepo,
		notifications: notificationService,
		urls:          urls,
	}
}

// LikeImage records a like from the user on the image. Liking the same
// image twice is a conflict. The image owner is notified unless they
// liked their own image.
func (s *LikeService) LikeImage(imageID, userID uint) error {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}

	image, err := s.images.GetImageByID(imageID)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: image %d", ErrNotFound, imageID)
		}
		return err
	}

	liked, err := s.likes.HasUserLikedImage(imageID, userID)
	if err != nil {
		return err
	}
	if liked {
		return fmt.Errorf("%w: you have already liked this image", ErrInvalidOperation)
	}

	if err := s.likes.CreateLike(&models.Like{ImageID: imageID, UserID: userID}); err != nil {
		return err
	}

	if image.UserID != userID {
		content := fmt.Sprintf("%s liked your image.", user.Username)
		if _, err := s.notifications.CreateNotification(image.UserID, models.NotificationLike, imageID, content); err != nil {
			log.Printf("Failed to create like notification: %v", err)
		}
	}
	return nil
}

// UnlikeImage removes the user's like from the image. Removing a like
// that does not exist is a conflict.
func (s *LikeService) UnlikeImage(imageID, userID uint) error {
	exists, err := s.images.ImageExists(imageID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: image %d", ErrNotFound, imageID)
	}

	liked, err := s.likes.HasUserLikedImage(imageID, userID)
	if err != nil {
		return err
	}
	if !liked {
		return fmt.Errorf("%w: you have not liked this image", ErrInvalidOperation)
	}

	return s.likes.DeleteLike(imageID, userID)
}

// GetLikesByImageID lists who liked an image, most recent first.
func (s *LikeService) GetLikesByImageID(imageID uint) ([]LikeView, error) {
	exists, err := s.images.ImageExists(imageID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: image %d", ErrNotFound, imageID)
	}

	likes, err := s.likes.GetLikesByImageID(imageID)
	if err != nil {
		return nil, err
	}

	views := make([]LikeView, 0, len(likes))
	for i := range likes {
		view := LikeView{UserID: likes[i].UserID, ImageID: likes[i].ImageID}
		if user, err := s.users.GetUserByID(likes[i].UserID); err == nil {
			view.Username = user.Username
			view.UserProfilePicture = s.urls.Resolve(user.ProfilePicture)
		}
		views = append(views, view)
	}
	return views, nil
}

// GetLikesCount returns how many likes an image has.
func (s *LikeService) GetLikesCount(imageID uint) (int64, error) {
	exists, err := s.images.ImageExists(imageID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: image %d", ErrNotFound, imageID)
	}
	return s.likes.GetLikesCountByImageID(imageID)
}

// HasUserLikedImage reports whether the user liked the image.
func (s *LikeService) HasUserLikedImage(imageID, userID uint) (bool, error) {
	return s.likes.HasUserLikedImage(imageID, userID)
}

// GetLikedImageIDs lists ids of images the user liked, most recent first.
func (s *LikeService) GetLikedImageIDs(userID uint) ([]uint, error) {
	return s.likes.GetLikedImageIDsByUserID(userID)
}
