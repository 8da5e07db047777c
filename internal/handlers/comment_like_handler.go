package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialpicture/backend/internal/services"
)

// CommentLikeHandler handles comment like HTTP requests
type CommentLikeHandler struct {
	commentLikeService *services.CommentLikeService
}

// NewCommentLikeHandler creates a new CommentLikeHandler
func NewCommentLikeHandler(commentLikeService *services.CommentLikeService) *CommentLikeHandler {
	return &CommentLikeHandler{commentLikeService: commentLikeService}
}

// RegisterCommentLikeRoutes registers comment like routes
func (h *CommentLikeHandler) RegisterCommentLikeRoutes(g *echo.Group) {
	g.POST("/comments/:comment_id/like", h.LikeComment)
	g.DELETE("/comments/:comment_id/like", h.UnlikeComment)
	g.GET("/comments/:comment_id/likes", h.GetLikes)
}

// LikeComment records a like on a comment
func (h *CommentLikeHandler) LikeComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return err
	}

	if err := h.commentLikeService.LikeComment(commentID, userID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Comment liked"})
}

// UnlikeComment removes a like from a comment
func (h *CommentLikeHandler) UnlikeComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return err
	}

	if err := h.commentLikeService.UnlikeComment(commentID, userID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLikes lists who liked a comment
func (h *CommentLikeHandler) GetLikes(c echo.Context) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return err
	}

	views, err := h.commentLikeService.GetLikesByCommentID(commentID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}
