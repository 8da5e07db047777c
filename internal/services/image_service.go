package services

import (
	"fmt"
	"time"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
)

// ImageView is the read shape returned for an image.
type ImageView struct {
	ID                   uint      `json:"id"`
	UserID               uint      `json:"user_id"`
	Username             string    `json:"username"`
	UserProfilePicture   string    `json:"user_profile_picture,omitempty"`
	ImageURL             string    `json:"image_url"`
	Caption              string    `json:"caption"`
	IsPublic             bool      `json:"is_public"`
	CreatedAt            time.Time `json:"created_at"`
	LikesCount           int64     `json:"likes_count"`
	CommentsCount        int64     `json:"comments_count"`
	IsLikedByCurrentUser bool      `json:"is_liked_by_current_user"`
	IsSavedByCurrentUser bool      `json:"is_saved_by_current_user"`
}

// ImageService manages image records. File transport and storage are out
// of scope; image URLs are stored as opaque paths and resolved against
// the public base URL on read.
type ImageService struct {
	images      repositories.ImageRepository
	users       repositories.UserRepository
	likes       repositories.LikeRepository
	comments    repositories.CommentRepository
	commentLikes repositories.CommentLikeRepository
	saved       repositories.SavedImageRepository
	tags        repositories.TagRepository
	reports     repositories.ReportRepository
	follows     repositories.FollowRepository
	urls        *URLResolver
}

// NewImageService creates a new ImageService
func NewImageService(
	imageRepo repositories.ImageRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	commentLikeRepo repositories.CommentLikeRepository,
	savedRepo repositories.SavedImageRepository,
	tagRepo repositories.TagRepository,
	reportRepo repositories.ReportRepository,
	followRepo repositories.FollowRepository,
	urls *URLResolver,
) *ImageService {
	return &ImageService{
		images:      imageRepo,
		users:       userRepo,
		likes:       likeRepo,
		comments:    commentRepo,
		commentLikes: commentLikeRepo,
		saved:       savedRepo,
		tags:        tagRepo,
		reports:     reportRepo,
		follows:     followRepo,
		urls:        urls,
	}
}

// GetImages lists images newest first. When publicOnly is set, private
// images are excluded.
func (s *ImageService) GetImages(publicOnly bool, currentUserID *uint) ([]ImageView, error) {
	images, err := s.images.GetImages(publicOnly)
	if err != nil {
		return nil, err
	}
	return s.MapImages(images, currentUserID)
}

// GetImagesByUserID lists a user's images newest first.
func (s *ImageService) GetImagesByUserID(userID uint, currentUserID *uint) ([]ImageView, error) {
	if _, err := s.users.GetUserByID(userID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	images, err := s.images.GetImagesByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.MapImages(images, currentUserID)
}

// GetFeed lists public images posted by users the viewer follows, newest
// first.
func (s *ImageService) GetFeed(currentUserID uint) ([]ImageView, error) {
	followingIDs, err := s.follows.GetFollowingIDs(currentUserID)
	if err != nil {
		return nil, err
	}
	images, err := s.images.GetImagesByUserIDs(followingIDs)
	if err != nil {
		return nil, err
	}
	return s.MapImages(images, &currentUserID)
}

// GetImageByID returns a single image view.
func (s *ImageService) GetImageByID(id uint, currentUserID *uint) (*ImageView, error) {
	image, err := s.images.GetImageByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: image %d", ErrNotFound, id)
		}
		return nil, err
	}
	return s.MapImage(image, currentUserID)
}

// CreateImage persists a new image record for the user.
func (s *ImageService) CreateImage(userID uint, req models.CreateImageRequest) (*ImageView, error) {
	if _, err := s.users.GetUserByID(userID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	image := &models.Image{
		UserID:   userID,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
		IsPublic: isPublic,
	}
	if err := s.images.CreateImage(image); err != nil {
		return nil, err
	}
	return s.MapImage(image, &userID)
}

// UpdateImage changes an image's caption or visibility. Owner only.
func (s *ImageService) UpdateImage(id, userID uint, req models.UpdateImageRequest) (*ImageView, error) {
	image, err := s.images.GetImageByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: image %d", ErrNotFound, id)
		}
		return nil, err
	}

	if image.UserID != userID {
		return nil, fmt.Errorf("%w: you don't have permission to update this image", ErrUnauthorized)
	}

	if req.Caption != nil {
		image.Caption = *req.Caption
	}
	if req.IsPublic != nil {
		image.IsPublic = *req.IsPublic
	}
	image.UpdatedAt = time.Now().UTC()
	if err := s.images.UpdateImage(image); err != nil {
		return nil, err
	}
	return s.MapImage(image, &userID)
}

// DeleteImage removes an image and all rows referencing it: likes,
// comments (with their likes), saves, tags and reports. Allowed for the
// owner or an administrator.
func (s *ImageService) DeleteImage(id, userID uint) error {
	image, err := s.images.GetImageByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: image %d", ErrNotFound, id)
		}
		return err
	}

	if image.UserID != userID {
		user, err := s.users.GetUserByID(userID)
		if err != nil || user.Role != models.RoleAdmin {
			return fmt.Errorf("%w: you don't have permission to delete this image", ErrUnauthorized)
		}
	}

	roots, err := s.comments.GetRootCommentsByImageID(id)
	if err != nil {
		return err
	}
	for i := range roots {
		if err := s.deleteCommentSubtree(roots[i].ID); err != nil {
			return err
		}
	}
	// catch any stray rows not reachable from a root
	if err := s.comments.DeleteCommentsByImageID(id); err != nil {
		return err
	}
	if err := s.likes.DeleteLikesByImageID(id); err != nil {
		return err
	}
	if err := s.saved.DeleteSavedByImageID(id); err != nil {
		return err
	}
	if err := s.tags.DeleteImageTagsByImageID(id); err != nil {
		return err
	}
	if err := s.reports.DeleteReportsByImageID(id); err != nil {
		return err
	}
	return s.images.DeleteImage(id)
}

func (s *ImageService) deleteCommentSubtree(commentID uint) error {
	childIDs, err := s.comments.GetChildCommentIDs(commentID)
	if err != nil {
		return err
	}
	for _, childID := range childIDs {
		if err := s.deleteCommentSubtree(childID); err != nil {
			return err
		}
	}
	if err := s.commentLikes.DeleteCommentLikesByCommentID(commentID); err != nil {
		return err
	}
	return s.comments.DeleteComment(commentID)
}

// MapImage builds the read view for an image with derived counts and
// viewer flags. Viewer flags are false for anonymous viewers.
func (s *ImageService) MapImage(image *models.Image, currentUserID *uint) (*ImageView, error) {
	likesCount, err := s.likes.GetLikesCountByImageID(image.ID)
	if err != nil {
		return nil, err
	}
	commentsCount, err := s.comments.CountCommentsByImageID(image.ID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	isSaved := false
	if currentUserID != nil {
		isLiked, err = s.likes.HasUserLikedImage(image.ID, *currentUserID)
		if err != nil {
			return nil, err
		}
		isSaved, err = s.saved.HasUserSavedImage(*currentUserID, image.ID)
		if err != nil {
			return nil, err
		}
	}

	view := &ImageView{
		ID:                   image.ID,
		UserID:               image.UserID,
		ImageURL:             s.urls.Resolve(image.ImageURL),
		Caption:              image.Caption,
		IsPublic:             image.IsPublic,
		CreatedAt:            image.CreatedAt,
		LikesCount:           likesCount,
		CommentsCount:        commentsCount,
		IsLikedByCurrentUser: isLiked,
		IsSavedByCurrentUser: isSaved,
	}

	if owner, err := s.users.GetUserByID(image.UserID); err == nil {
		view.Username = owner.Username
		view.UserProfilePicture = s.urls.Resolve(owner.ProfilePicture)
	}

	return view, nil
}

// MapImages maps a slice of image rows preserving order.
func (s *ImageService) MapImages(images []models.Image, currentUserID *uint) ([]ImageView, error) {
	views := make([]ImageView, 0, len(images))
	for i := range images {
		view, err := s.MapImage(&images[i], currentUserID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
