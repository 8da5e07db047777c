package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialpicture/backend/internal/services"
)

// LikeHandler handles image like HTTP requests
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/images/:image_id/like", h.LikeImage)
	g.DELETE("/images/:image_id/like", h.UnlikeImage)
	g.GET("/images/:image_id/likes", h.GetLikes)
	g.GET("/users/me/likes", h.GetLikedImages)
}

// LikeImage records a like on an image
func (h *LikeHandler) LikeImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}

	if err := h.likeService.LikeImage(imageID, userID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Image liked"})
}

// UnlikeImage removes a like from an image
func (h *LikeHandler) UnlikeImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}

	if err := h.likeService.UnlikeImage(imageID, userID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLikes lists who liked an image
func (h *LikeHandler) GetLikes(c echo.Context) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return err
	}
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}

	views, err := h.likeService.GetLikesByImageID(imageID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// GetLikedImages lists ids of images the authenticated user liked
func (h *LikeHandler) GetLikedImages(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	ids, err := h.likeService.GetLikedImageIDs(userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string][]uint{"image_ids": ids})
}
