package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialpicture/backend/internal/services"
)

// SavedImageHandler handles saved image HTTP requests
type SavedImageHandler struct {
	savedImageService *services.SavedImageService
}

// NewSavedImageHandler creates a new SavedImageHandler
func NewSavedImageHandler(savedImageService *services.SavedImageService) *SavedImageHandler {
	return &SavedImageHandler{savedImageService: savedImageService}
}

// RegisterSavedImageRoutes registers saved image routes
func (h *SavedImageHandler) RegisterSavedImageRoutes(g *echo.Group) {
	g.POST("/images/:image_id/save", h.SaveImage)
	g.DELETE("/images/:image_id/save", h.UnsaveImage)
	g.GET("/users/me/saved", h.GetSavedImages)
}

// SaveImage adds an image to the user's saved collection
func (h *SavedImageHandler) SaveImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}

	if err := h.savedImageService.SaveImage(userID, imageID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Image saved"})
}

// UnsaveImage removes an image from the user's saved collection
func (h *SavedImageHandler) UnsaveImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}

	if err := h.savedImageService.UnsaveImage(userID, imageID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSavedImages lists the user's saved images
func (h *SavedImageHandler) GetSavedImages(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	views, err := h.savedImageService.GetSavedImages(userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}
