package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialpicture/backend/internal/services"
)

// FollowHandler handles follow-related HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:user_id/follow", h.FollowUser)
	g.DELETE("/users/:user_id/follow", h.UnfollowUser)
	g.GET("/users/:user_id/followers", h.GetFollowers)
	g.GET("/users/:user_id/following", h.GetFollowing)
}

// FollowUser records a follow relationship
func (h *FollowHandler) FollowUser(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.followService.FollowUser(userID, targetID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "User followed"})
}

// UnfollowUser removes a follow relationship
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.followService.UnfollowUser(userID, targetID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFollowers lists a user's followers
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	views, err := h.followService.GetFollowers(targetID, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// GetFollowing lists who a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	views, err := h.followService.GetFollowing(targetID, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}
