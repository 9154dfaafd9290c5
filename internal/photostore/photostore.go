// Package photostore abstracts where captured scan photos are kept.
package photostore

import (
	"context"
	"io"
)

type PhotoStore interface {
	// Save stores the image and returns its storage key.
	Save(ctx context.Context, mimeType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
}
