package services

import (
	"fmt"
	"time"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// UserProfileView is the read shape returned for a user profile, with
// counts derived from the join tables on demand.
type UserProfileView struct {
	ID                      uint            `json:"id"`
	Username                string          `json:"username"`
	Email                   string          `json:"email,omitempty"`
	Fullname                string          `json:"fullname,omitempty"`
	Bio                     string          `json:"bio,omitempty"`
	Role                    models.UserRole `json:"role"`
	ProfilePicture          string          `json:"profile_picture,omitempty"`
	CreatedAt               time.Time       `json:"created_at"`
	ImagesCount             int64           `json:"images_count"`
	FollowersCount          int64           `json:"followers_count"`
	FollowingCount          int64           `json:"following_count"`
	IsFollowedByCurrentUser bool            `json:"is_followed_by_current_user"`
}

// UserService manages account profiles and role administration.
type UserService struct {
	users   repositories.UserRepository
	images  repositories.ImageRepository
	follows repositories.FollowRepository
	urls    *URLResolver
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.UserRepository,
	imageRepo repositories.ImageRepository,
	followRepo repositories.FollowRepository,
	urls *URLResolver,
) *UserService {
	return &UserService{
		users:   userRepo,
		images:  imageRepo,
		follows: followRepo,
		urls:    urls,
	}
}

// GetProfile returns a user's profile with derived counts. The email is
// only included when the viewer is the profile owner.
func (s *UserService) GetProfile(userID uint, currentUserID *uint) (*UserProfileView, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return s.toProfile(user, currentUserID)
}

// GetProfileByUsername returns a user's profile looked up by username.
func (s *UserService) GetProfileByUsername(username string, currentUserID *uint) (*UserProfileView, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
		}
		return nil, err
	}
	return s.toProfile(user, currentUserID)
}

// UpdateProfile changes the user's own profile fields. Taking an email
// already used by another account is a conflict.
func (s *UserService) UpdateProfile(userID uint, req models.UpdateUserRequest) (*UserProfileView, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		if existing, err := s.users.GetUserByEmail(req.Email); err == nil && existing.ID != userID {
			return nil, fmt.Errorf("%w: email is already in use", ErrInvalidOperation)
		} else if err != nil && !isRecordNotFound(err) {
			return nil, err
		}
		user.Email = req.Email
	}
	if req.Fullname != "" {
		user.Fullname = req.Fullname
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.UpdateUser(user); err != nil {
		return nil, err
	}
	return s.toProfile(user, &userID)
}

// ChangePassword replaces the user's password after verifying the
// current one.
func (s *UserService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return s.users.UpdateUser(user)
}

// ChangeRole sets a user's role. Admin only; admins cannot change their
// own role, so the last admin cannot lock everyone out.
func (s *UserService) ChangeRole(targetID, actorID uint, role models.UserRole) error {
	actor, err := s.users.GetUserByID(actorID)
	if err != nil || actor.Role != models.RoleAdmin {
		return fmt.Errorf("%w: you don't have permission to change roles", ErrUnauthorized)
	}
	if targetID == actorID {
		return fmt.Errorf("%w: you cannot change your own role", ErrInvalidOperation)
	}

	target, err := s.users.GetUserByID(targetID)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: user %d", ErrNotFound, targetID)
		}
		return err
	}

	target.Role = role
	target.UpdatedAt = time.Now().UTC()
	return s.users.UpdateUser(target)
}

// DeleteUser removes an account. Allowed for the account owner or an
// administrator. Content left behind (images, comments) stays; read
// views tolerate a missing author.
func (s *UserService) DeleteUser(targetID, actorID uint) error {
	if targetID != actorID {
		actor, err := s.users.GetUserByID(actorID)
		if err != nil || actor.Role != models.RoleAdmin {
			return fmt.Errorf("%w: you don't have permission to delete this user", ErrUnauthorized)
		}
	}

	if _, err := s.users.GetUserByID(targetID); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: user %d", ErrNotFound, targetID)
		}
		return err
	}
	return s.users.DeleteUser(targetID)
}

// GetUsers lists all users. Admin only.
func (s *UserService) GetUsers(actorID uint) ([]models.User, error) {
	actor, err := s.users.GetUserByID(actorID)
	if err != nil || actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: you don't have permission to list users", ErrUnauthorized)
	}
	return s.users.GetUsers()
}

func (s *UserService) toProfile(user *models.User, currentUserID *uint) (*UserProfileView, error) {
	imagesCount, err := s.images.CountImagesByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	followersCount, err := s.follows.GetFollowersCount(user.ID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.follows.GetFollowingCount(user.ID)
	if err != nil {
		return nil, err
	}

	view := &UserProfileView{
		ID:             user.ID,
		Username:       user.Username,
		Fullname:       user.Fullname,
		Bio:            user.Bio,
		Role:           user.Role,
		ProfilePicture: s.urls.Resolve(user.ProfilePicture),
		CreatedAt:      user.CreatedAt,
		ImagesCount:    imagesCount,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
	}

	if currentUserID != nil {
		if *currentUserID == user.ID {
			view.Email = user.Email
		} else {
			followed, err := s.follows.IsFollowing(*currentUserID, user.ID)
			if err != nil {
				return nil, err
			}
			view.IsFollowedByCurrentUser = followed
		}
	}
	return view, nil
}
