// Package segmentation defines the contract for identifying the ingredients
// visible in a captured food photo via a remote segmentation service.
package segmentation

import (
	"context"
	"errors"
)

// Client identifies ingredients in an image. Implementations return the
// deduplicated ingredient names in first-seen order; an empty slice is a
// valid result meaning nothing recognizable was found.
type Client interface {
	Segment(ctx context.Context, image []byte) ([]string, error)
}

var (
	// ErrNoResponse means the service could not be reached or returned an
	// empty body.
	ErrNoResponse = errors.New("no response from segmentation service")

	// ErrInvalidResponse means the response body was present but its
	// top-level shape was not the expected segmentation envelope. Malformed
	// inner entries do not trigger this; only the top level is validated
	// strictly.
	ErrInvalidResponse = errors.New("invalid segmentation response")
)
