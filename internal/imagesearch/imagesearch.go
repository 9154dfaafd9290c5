// Package imagesearch defines the contract for finding an illustrative image
// URL for a text query via a remote image-search service.
package imagesearch

import (
	"context"
	"fmt"
	"net/url"
)

// Client looks up the first usable image URL for a query. A (nil, nil)
// return means the search worked but found nothing — a valid, expected
// outcome distinct from a transport or API failure.
type Client interface {
	FindImage(ctx context.Context, query string) (*url.URL, error)
}

// APIError is a non-success status from the image-search service, carrying
// the response body as diagnostic text.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("image search returned status %d: %s", e.StatusCode, e.Body)
}
