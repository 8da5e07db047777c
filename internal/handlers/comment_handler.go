package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/services"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/images/:image_id/comments", h.CreateComment)
	g.GET("/images/:image_id/comments", h.GetCommentsByImage)
	g.GET("/comments/:id", h.GetComment)
	g.GET("/comments/:id/replies", h.GetReplies)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment or reply on an image
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.commentService.CreateComment(userID, imageID, req.Content, req.ParentCommentID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, view)
}

// GetCommentsByImage returns an image's comment tree
func (h *CommentHandler) GetCommentsByImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}

	views, err := h.commentService.GetCommentsByImageID(imageID, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// GetComment returns a single comment
func (h *CommentHandler) GetComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	view, err := h.commentService.GetCommentByID(id, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetReplies returns a comment's reply subtree
func (h *CommentHandler) GetReplies(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	views, err := h.commentService.GetRepliesByCommentID(id, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// UpdateComment updates an existing comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.commentService.UpdateComment(id, userID, req.Content)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// DeleteComment removes a comment and its replies
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteComment(id, userID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
