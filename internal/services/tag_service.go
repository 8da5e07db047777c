package services

import (
	"fmt"
	"strings"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
)

// TagService manages the tag vocabulary and the tag-image associations.
type TagService struct {
	tags   repositories.TagRepository
	images repositories.ImageRepository
	users  repositories.UserRepository
	views  *ImageService
}

// NewTagService creates a new TagService
func NewTagService(
	tagRepo repositories.TagRepository,
	imageRepo repositories.ImageRepository,
	userRepo repositories.UserRepository,
	imageService *ImageService,
) *TagService {
	return &TagService{
		tags:   tagRepo,
		images: imageRepo,
		users:  userRepo,
		views:  imageService,
	}
}

// CreateTag adds a tag to the vocabulary. Names are stored trimmed;
// matching is case-insensitive, so "Sunset" and "sunset" collide.
func (s *TagService) CreateTag(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name cannot be empty", ErrInvalidOperation)
	}

	if existing, err := s.tags.GetTagByName(name); err == nil {
		return nil, fmt.Errorf("%w: tag %q already exists", ErrInvalidOperation, existing.Name)
	} else if !isRecordNotFound(err) {
		return nil, err
	}

	tag := &models.Tag{Name: name}
	if err := s.tags.CreateTag(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// GetTags lists the tag vocabulary alphabetically.
func (s *TagService) GetTags() ([]models.Tag, error) {
	return s.tags.GetTags()
}

// GetPopularTags lists tags ordered by usage.
func (s *TagService) GetPopularTags(limit int) ([]models.Tag, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.tags.GetPopularTags(limit)
}

// DeleteTag removes a tag and all its image associations. Admin only.
func (s *TagService) DeleteTag(id, userID uint) error {
	user, err := s.users.GetUserByID(userID)
	if err != nil || user.Role != models.RoleAdmin {
		return fmt.Errorf("%w: you don't have permission to delete tags", ErrUnauthorized)
	}

	if _, err := s.tags.GetTagByID(id); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: tag %d", ErrNotFound, id)
		}
		return err
	}
	return s.tags.DeleteTag(id)
}

// TagImage attaches a tag to an image. Only the image owner may tag it;
// attaching the same tag twice is a conflict.
func (s *TagService) TagImage(imageID, tagID, userID uint) error {
	image, err := s.images.GetImageByID(imageID)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: image %d", ErrNotFound, imageID)
		}
		return err
	}
	if image.UserID != userID {
		return fmt.Errorf("%w: you don't have permission to tag this image", ErrUnauthorized)
	}

	if _, err := s.tags.GetTagByID(tagID); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: tag %d", ErrNotFound, tagID)
		}
		return err
	}

	tagged, err := s.tags.HasImageTag(imageID, tagID)
	if err != nil {
		return err
	}
	if tagged {
		return fmt.Errorf("%w: image already carries this tag", ErrInvalidOperation)
	}

	return s.tags.AttachTagToImage(&models.ImageTag{ImageID: imageID, TagID: tagID})
}

// UntagImage detaches a tag from an image. Only the image owner may
// untag it.
func (s *TagService) UntagImage(imageID, tagID, userID uint) error {
	image, err := s.images.GetImageByID(imageID)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("%w: image %d", ErrNotFound, imageID)
		}
		return err
	}
	if image.UserID != userID {
		return fmt.Errorf("%w: you don't have permission to untag this image", ErrUnauthorized)
	}

	tagged, err := s.tags.HasImageTag(imageID, tagID)
	if err != nil {
		return err
	}
	if !tagged {
		return fmt.Errorf("%w: image does not carry this tag", ErrInvalidOperation)
	}

	return s.tags.DetachTagFromImage(imageID, tagID)
}

// GetTagsByImageID lists the tags attached to an image.
func (s *TagService) GetTagsByImageID(imageID uint) ([]models.Tag, error) {
	exists, err := s.images.ImageExists(imageID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: image %d", ErrNotFound, imageID)
	}
	return s.tags.GetTagsByImageID(imageID)
}

// GetImagesByTagName lists public images carrying the named tag.
func (s *TagService) GetImagesByTagName(name string, currentUserID *uint) ([]ImageView, error) {
	tag, err := s.tags.GetTagByName(name)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: tag %q", ErrNotFound, name)
		}
		return nil, err
	}
	return s.GetImagesByTag(tag.ID, currentUserID)
}

// GetImagesByTag lists public images carrying the tag.
func (s *TagService) GetImagesByTag(tagID uint, currentUserID *uint) ([]ImageView, error) {
	if _, err := s.tags.GetTagByID(tagID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: tag %d", ErrNotFound, tagID)
		}
		return nil, err
	}

	ids, err := s.tags.GetImageIDsByTagID(tagID)
	if err != nil {
		return nil, err
	}
	images, err := s.images.GetImagesByIDs(ids)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Image, 0, len(images))
	for i := range images {
		if images[i].IsPublic {
			visible = append(visible, images[i])
		}
	}
	return s.views.MapImages(visible, currentUserID)
}
