// Package enrich attaches an illustrative image to each recipe in a batch by
// fanning out one concurrent image lookup per recipe.
package enrich

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/snapchef/snapchef/internal/domain"
	"github.com/snapchef/snapchef/internal/imagesearch"
)

// PlaceholderAsset replaces the image of any recipe whose lookup found
// nothing or failed, overwriting whatever token synthesis produced.
const PlaceholderAsset = "placeholder"

type Enricher struct {
	images imagesearch.Client
	logger *slog.Logger
}

func New(images imagesearch.Client, logger *slog.Logger) *Enricher {
	return &Enricher{images: images, logger: logger}
}

// Enrich looks up an image for every recipe concurrently and returns a batch
// of the same length and order, with only the Image field rewritten: the
// found remote URL, or the placeholder asset. One recipe's lookup failure
// never affects another recipe or the batch; Enrich never fails as a whole.
//
// Each task writes only its own index of the pre-sized output, so completion
// order cannot reorder results. Concurrency is unbounded: batch size is
// pinned by the synthesis prompt. The group is used for the structured join
// only; task closures swallow lookup errors and always return nil.
func (e *Enricher) Enrich(ctx context.Context, recipes []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, len(recipes))
	copy(out, recipes)

	var g errgroup.Group
	for i := range out {
		g.Go(func() error {
			u, err := e.images.FindImage(ctx, out[i].Name)
			if err != nil {
				e.logger.Warn("image lookup failed", "recipe", out[i].Name, "error", err)
				u = nil
			}
			if u != nil {
				out[i].Image = domain.RemoteImage(u)
			} else {
				out[i].Image = domain.AssetImage(PlaceholderAsset)
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}
