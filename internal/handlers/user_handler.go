package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/services"
)

// UserHandler handles profile-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetOwnProfile)
	g.PUT("/users/me", h.UpdateProfile)
	g.PUT("/users/me/password", h.ChangePassword)
	g.GET("/users/:id", h.GetProfile)
	g.GET("/users/by-username/:username", h.GetProfileByUsername)
	g.GET("/users", h.GetUsers)
	g.PUT("/users/:id/role", h.ChangeRole)
	g.DELETE("/users/:id", h.DeleteUser)
}

// GetOwnProfile returns the authenticated user's profile
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(userID, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetProfile returns another user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(id, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetProfileByUsername returns a profile looked up by username
func (h *UserHandler) GetProfileByUsername(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfileByUsername(c.Param("username"), &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates the authenticated user's profile fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.userService.UpdateProfile(userID, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// ChangePassword replaces the authenticated user's password
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed"})
}

// ChangeRole sets another user's role (admin only)
func (h *UserHandler) ChangeRole(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.ChangeUserRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangeRole(targetID, userID, req.Role); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Role updated"})
}

// DeleteUser removes an account (the owner or an admin)
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(targetID, userID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetUsers lists all accounts (admin only)
func (h *UserHandler) GetUsers(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	users, err := h.userService.GetUsers(userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, users)
}
