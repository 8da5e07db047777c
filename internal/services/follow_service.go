package services

import (
	"fmt"
	"log"
	"time"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
)

// FollowUserView is the read shape returned for one side of a follow
// relationship.
type FollowUserView struct {
	UserID                  uint      `json:"user_id"`
	Username                string    `json:"username"`
	Fullname                string    `json:"fullname,omitempty"`
	ProfilePicture          string    `json:"profile_picture,omitempty"`
	IsFollowedByCurrentUser bool      `json:"is_followed_by_current_user"`
	FollowingSince          time.Time `json:"following_since"`
}

// FollowService manages follow relationships and their notification
// side effects.
type FollowService struct {
	follows       repositories.FollowRepository
	users         repositories.UserRepository
	notifications *NotificationService
	urls          *URLResolver
}

// NewFollowService creates a new FollowService
func NewFollowService(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notificationService *NotificationService,
	urls *URLResolver,
) *FollowService {
	return &FollowService{
		follows:       followRepo,
		users:         userRepo,
		notifications: notificationService,
		urls:          urls,
	}
}

// FollowUser records that followerID follows followingID. Following
// yourself or following the same user twice is a conflict. The followed
// user is notified; the reference carries the follower's user id.
func (s *FollowService) FollowUser(followerID, followingID uint) error {
	if followerID == followingID {
		return fmt.Errorf("%w: you cannot follow yourself", ErrInvalidOperation)
	}

	follower, err := s.users.GetUserByID(followerID)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: user %d", ErrNotFound, followerID)
		}
		return err
	}
	if _, err := s.users.GetUserByID(followingID); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: user %d", ErrNotFound, followingID)
		}
		return err
	}

	following, err := s.follows.IsFollowing(followerID, followingID)
	if err != nil {
		return err
	}
	if following {
		return fmt.Errorf("%w: you are already following this user", ErrInvalidOperation)
	}

	if err := s.follows.CreateFollow(&models.Follow{FollowerID: followerID, FollowingID: followingID}); err != nil {
		return err
	}

	content := fmt.Sprintf("%s started following you.", follower.Username)
	if _, err := s.notifications.CreateNotification(followingID, models.NotificationFollow, followerID, content); err != nil {
		log.Printf("Failed to create follow notification: %v", err)
	}
	return nil
}

// UnfollowUser removes a follow relationship. Removing one that does
// not exist is a conflict.
func (s *FollowService) UnfollowUser(followerID, followingID uint) error {
	if _, err := s.users.GetUserByID(followingID); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: user %d", ErrNotFound, followingID)
		}
		return err
	}

	following, err := s.follows.IsFollowing(followerID, followingID)
	if err != nil {
		return err
	}
	if !following {
		return fmt.Errorf("%w: you are not following this user", ErrInvalidOperation)
	}

	return s.follows.DeleteFollow(followerID, followingID)
}

// GetFollowers lists users following userID, most recent first.
func (s *FollowService) GetFollowers(userID uint, currentUserID *uint) ([]FollowUserView, error) {
	if _, err := s.users.GetUserByID(userID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	follows, err := s.follows.GetFollowsByFollowingID(userID)
	if err != nil {
		return nil, err
	}

	views := make([]FollowUserView, 0, len(follows))
	for i := range follows {
		view, err := s.toUserView(follows[i].FollowerID, follows[i].CreatedAt, currentUserID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetFollowing lists users that userID follows, most recent first.
func (s *FollowService) GetFollowing(userID uint, currentUserID *uint) ([]FollowUserView, error) {
	if _, err := s.users.GetUserByID(userID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	follows, err := s.follows.GetFollowsByFollowerID(userID)
	if err != nil {
		return nil, err
	}

	views := make([]FollowUserView, 0, len(follows))
	for i := range follows {
		view, err := s.toUserView(follows[i].FollowingID, follows[i].CreatedAt, currentUserID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// IsFollowing reports whether followerID follows followingID.
func (s *FollowService) IsFollowing(followerID, followingID uint) (bool, error) {
	return s.follows.IsFollowing(followerID, followingID)
}

// GetFollowersCount returns how many users follow userID.
func (s *FollowService) GetFollowersCount(userID uint) (int64, error) {
	return s.follows.GetFollowersCount(userID)
}

// GetFollowingCount returns how many users userID follows.
func (s *FollowService) GetFollowingCount(userID uint) (int64, error) {
	return s.follows.GetFollowingCount(userID)
}

func (s *FollowService) toUserView(userID uint, since time.Time, currentUserID *uint) (*FollowUserView, error) {
	view := &FollowUserView{UserID: userID, FollowingSince: since}

	if user, err := s.users.GetUserByID(userID); err == nil {
		view.Username = user.Username
		view.Fullname = user.Fullname
		view.ProfilePicture = s.urls.Resolve(user.ProfilePicture)
	}

	if currentUserID != nil && *currentUserID != userID {
		followed, err := s.follows.IsFollowing(*currentUserID, userID)
		if err != nil {
			return nil, err
		}
		view.IsFollowedByCurrentUser = followed
	}
	return view, nil
}
