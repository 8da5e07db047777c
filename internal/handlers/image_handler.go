package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/services"
)

// ImageHandler handles image-related HTTP requests
type ImageHandler struct {
	imageService *services.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// RegisterImageRoutes registers image-related routes
func (h *ImageHandler) RegisterImageRoutes(g *echo.Group) {
	g.POST("/images", h.CreateImage)
	g.GET("/images", h.GetImages)
	g.GET("/images/:id", h.GetImage)
	g.PUT("/images/:id", h.UpdateImage)
	g.DELETE("/images/:id", h.DeleteImage)
	g.GET("/users/:id/images", h.GetImagesByUser)
	g.GET("/feed", h.GetFeed)
}

// CreateImage records a new image post
func (h *ImageHandler) CreateImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.imageService.CreateImage(userID, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, view)
}

// GetImages lists public images
func (h *ImageHandler) GetImages(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	views, err := h.imageService.GetImages(true, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// GetImage returns a single image
func (h *ImageHandler) GetImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	view, err := h.imageService.GetImageByID(id, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetImagesByUser lists a user's images
func (h *ImageHandler) GetImagesByUser(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	views, err := h.imageService.GetImagesByUserID(targetID, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// GetFeed lists public images from followed users
func (h *ImageHandler) GetFeed(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	views, err := h.imageService.GetFeed(userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// UpdateImage changes an image's caption or visibility
func (h *ImageHandler) UpdateImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.imageService.UpdateImage(id, userID, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// DeleteImage removes an image and everything attached to it
func (h *ImageHandler) DeleteImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.imageService.DeleteImage(id, userID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
