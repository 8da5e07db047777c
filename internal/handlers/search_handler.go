package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socialpicture/backend/internal/services"
)

// SearchHandler handles search HTTP requests
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// RegisterSearchRoutes registers search-related routes
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
	g.GET("/search/users", h.SearchUsers)
	g.GET("/search/images", h.SearchImages)
}

// Search runs a combined user and image search
func (h *SearchHandler) Search(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	query := c.QueryParam("q")
	page, limit := pagination(c)
	results, err := h.searchService.Search(query, page, limit, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, results)
}

// SearchUsers finds users by username or fullname
func (h *SearchHandler) SearchUsers(c echo.Context) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return err
	}

	query := c.QueryParam("q")
	page, limit := pagination(c)
	results, err := h.searchService.SearchUsers(query, page, limit)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, results)
}

// SearchImages finds public images by caption
func (h *SearchHandler) SearchImages(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	query := c.QueryParam("q")
	page, limit := pagination(c)
	results, err := h.searchService.SearchImages(query, page, limit, &userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, results)
}

func pagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
