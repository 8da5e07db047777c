package services

import (
	"strings"

	"github.com/socialpicture/backend/internal/repositories"
)

// UserSearchResult is the compact shape returned for user search hits.
type UserSearchResult struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Fullname       string `json:"fullname,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// SearchResults bundles user and image hits for a combined search.
type SearchResults struct {
	Users  []UserSearchResult `json:"users"`
	Images []ImageView        `json:"images"`
}

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// SearchService answers paged substring searches over usernames,
// fullnames and public image captions.
type SearchService struct {
	users  repositories.UserRepository
	images repositories.ImageRepository
	views  *ImageService
	urls   *URLResolver
}

// NewSearchService creates a new SearchService
func NewSearchService(
	userRepo repositories.UserRepository,
	imageRepo repositories.ImageRepository,
	imageService *ImageService,
	urls *URLResolver,
) *SearchService {
	return &SearchService{
		users:  userRepo,
		images: imageRepo,
		views:  imageService,
		urls:   urls,
	}
}

// SearchUsers finds users whose username or fullname contains the query,
// case-insensitively. A blank query yields no results.
func (s *SearchService) SearchUsers(query string, page, limit int) ([]UserSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []UserSearchResult{}, nil
	}
	offset, limit := pageBounds(page, limit)

	users, err := s.users.SearchUsers(query, offset, limit)
	if err != nil {
		return nil, err
	}

	results := make([]UserSearchResult, 0, len(users))
	for i := range users {
		results = append(results, UserSearchResult{
			ID:             users[i].ID,
			Username:       users[i].Username,
			Fullname:       users[i].Fullname,
			ProfilePicture: s.urls.Resolve(users[i].ProfilePicture),
		})
	}
	return results, nil
}

// SearchImages finds public images whose caption contains the query,
// case-insensitively, newest first.
func (s *SearchService) SearchImages(query string, page, limit int, currentUserID *uint) ([]ImageView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []ImageView{}, nil
	}
	offset, limit := pageBounds(page, limit)

	images, err := s.images.SearchImagesByCaption(query, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.views.MapImages(images, currentUserID)
}

// Search runs both user and image search for the same query.
func (s *SearchService) Search(query string, page, limit int, currentUserID *uint) (*SearchResults, error) {
	users, err := s.SearchUsers(query, page, limit)
	if err != nil {
		return nil, err
	}
	images, err := s.SearchImages(query, page, limit, currentUserID)
	if err != nil {
		return nil, err
	}
	return &SearchResults{Users: users, Images: images}, nil
}

func pageBounds(page, limit int) (offset, bounded int) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit, limit
}
