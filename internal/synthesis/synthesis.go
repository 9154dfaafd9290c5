// Package synthesis defines the contract for generating candidate recipes
// from a list of ingredients via a remote generative-text service, plus the
// shared prompt and response-parsing helpers used by its backends.
package synthesis

import (
	"context"
	"errors"

	"github.com/snapchef/snapchef/internal/domain"
)

// Client generates recipes constrained to the given ingredients. An empty
// ingredient list yields an empty batch without touching the network.
type Client interface {
	Synthesize(ctx context.Context, ingredients []string) ([]domain.Recipe, error)
}

// ErrParseFailure means the service responded but no valid recipe array
// could be extracted. Callers treat this exactly like a transport failure:
// the batch is all-or-nothing and no partial list is ever returned.
var ErrParseFailure = errors.New("unparseable synthesis response")
