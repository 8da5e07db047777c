package services

import "strings"

// URLResolver turns relative storage paths into absolute URLs by
// prefixing the configured public base URL. Already-absolute URLs pass
// through untouched. Purely presentational.
type URLResolver struct {
	baseURL string
}

// NewURLResolver creates a URLResolver. baseURL may be empty, in which
// case relative paths are returned as-is.
func NewURLResolver(baseURL string) *URLResolver {
	return &URLResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

func (u *URLResolver) Resolve(relativeURL string) string {
	if relativeURL == "" {
		return ""
	}
	if strings.HasPrefix(relativeURL, "http://") || strings.HasPrefix(relativeURL, "https://") {
		return relativeURL
	}
	if u.baseURL == "" {
		return relativeURL
	}
	return u.baseURL + "/" + strings.TrimPrefix(relativeURL, "/")
}
