package services

import (
	"fmt"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
)

// SavedImageService manages a user's private collection of saved
// images. Saves are not visible to other users and produce no
// notifications.
type SavedImageService struct {
	saved  repositories.SavedImageRepository
	images repositories.ImageRepository
	views  *ImageService
}

// NewSavedImageService creates a new SavedImageService
func NewSavedImageService(
	savedRepo repositories.SavedImageRepository,
	imageRepo repositories.ImageRepository,
	imageService *ImageService,
) *SavedImageService {
	return &SavedImageService{
		saved:  savedRepo,
		images: imageRepo,
		views:  imageService,
	}
}

// SaveImage adds an image to the user's collection. Saving the same
// image twice is a conflict.
func (s *SavedImageService) SaveImage(userID, imageID uint) error {
	exists, err := s.images.ImageExists(imageID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: image %d", ErrNotFound, imageID)
	}

	saved, err := s.saved.HasUserSavedImage(userID, imageID)
	if err != nil {
		return err
	}
	if saved {
		return fmt.Errorf("%w: you have already saved this image", ErrInvalidOperation)
	}

	return s.saved.SaveImage(&models.SavedImage{UserID: userID, ImageID: imageID})
}

// UnsaveImage removes an image from the user's collection. Removing a
// save that does not exist is a conflict.
func (s *SavedImageService) UnsaveImage(userID, imageID uint) error {
	saved, err := s.saved.HasUserSavedImage(userID, imageID)
	if err != nil {
		return err
	}
	if !saved {
		return fmt.Errorf("%w: you have not saved this image", ErrInvalidOperation)
	}
	return s.saved.UnsaveImage(userID, imageID)
}

// GetSavedImages lists the user's saved images, most recently saved
// first. Saved images that were since deleted silently drop out.
func (s *SavedImageService) GetSavedImages(userID uint) ([]ImageView, error) {
	ids, err := s.saved.GetSavedImageIDsByUserID(userID)
	if err != nil {
		return nil, err
	}

	images, err := s.images.GetImagesByIDs(ids)
	if err != nil {
		return nil, err
	}

	// re-sort to saved order; the IN query does not preserve it
	byID := make(map[uint]*models.Image, len(images))
	for i := range images {
		byID[images[i].ID] = &images[i]
	}
	ordered := make([]models.Image, 0, len(images))
	for _, id := range ids {
		if image, ok := byID[id]; ok {
			ordered = append(ordered, *image)
		}
	}

	return s.views.MapImages(ordered, &userID)
}

// HasUserSavedImage reports whether the user saved the image.
func (s *SavedImageService) HasUserSavedImage(userID, imageID uint) (bool, error) {
	return s.saved.HasUserSavedImage(userID, imageID)
}
