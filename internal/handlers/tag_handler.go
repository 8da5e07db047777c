package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/services"
)

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	tagService *services.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// RegisterTagRoutes registers tag-related routes
func (h *TagHandler) RegisterTagRoutes(g *echo.Group) {
	g.POST("/tags", h.CreateTag)
	g.GET("/tags", h.GetTags)
	g.GET("/tags/popular", h.GetPopularTags)
	g.DELETE("/tags/:id", h.DeleteTag)
	g.GET("/tags/:id/images", h.GetImagesByTag)
	g.GET("/tags/by-name/:name/images", h.GetImagesByTagName)
	g.POST("/images/:image_id/tags/:tag_id", h.TagImage)
	g.DELETE("/images/:image_id/tags/:tag_id", h.UntagImage)
	g.GET("/images/:image_id/tags", h.GetTagsByImage)
}

// CreateTag adds a tag to the vocabulary
func (h *TagHandler) CreateTag(c echo.Context) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return err
	}

	var req models.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.CreateTag(req.Name)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, tag)
}

// GetTags lists the tag vocabulary
func (h *TagHandler) GetTags(c echo.Context) error {
	tags, err := h.tagService.GetTags()
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, tags)
}

// GetPopularTags lists tags ordered by usage
func (h *TagHandler) GetPopularTags(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	tags, err := h.tagService.GetPopularTags(limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, tags)
}

// DeleteTag removes a tag from the vocabulary (admin only)
func (h *TagHandler) DeleteTag(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.tagService.DeleteTag(id, userID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetImagesByTag lists public images carrying a tag
func (h *TagHandler) GetImagesByTag(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	views, err := h.tagService.GetImagesByTag(id, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// GetImagesByTagName lists public images carrying the named tag
func (h *TagHandler) GetImagesByTagName(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	views, err := h.tagService.GetImagesByTagName(c.Param("name"), &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// TagImage attaches a tag to an image
func (h *TagHandler) TagImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}
	tagID, err := parseIDParam(c, "tag_id")
	if err != nil {
		return err
	}

	if err := h.tagService.TagImage(imageID, tagID, userID); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Tag attached"})
}

// UntagImage detaches a tag from an image
func (h *TagHandler) UntagImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}
	tagID, err := parseIDParam(c, "tag_id")
	if err != nil {
		return err
	}

	if err := h.tagService.UntagImage(imageID, tagID, userID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTagsByImage lists the tags attached to an image
func (h *TagHandler) GetTagsByImage(c echo.Context) error {
	imageID, err := parseIDParam(c, "image_id")
	if err != nil {
		return err
	}

	tags, err := h.tagService.GetTagsByImageID(imageID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, tags)
}
