package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapchef/snapchef/internal/domain"
	"github.com/snapchef/snapchef/internal/imagesearch"
)

// fakeSearcher resolves queries from a fixed table, optionally after a
// per-query delay so completion order differs from submission order.
type fakeSearcher struct {
	urls   map[string]string
	errs   map[string]error
	delays map[string]time.Duration
}

func (f *fakeSearcher) FindImage(_ context.Context, query string) (*url.URL, error) {
	if d, ok := f.delays[query]; ok {
		time.Sleep(d)
	}
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	raw, ok := f.urls[query]
	if !ok {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func batch(n int) []domain.Recipe {
	recipes := make([]domain.Recipe, n)
	for i := range recipes {
		recipes[i] = domain.Recipe{
			ID:          i + 1,
			Name:        fmt.Sprintf("Recipe %d", i+1),
			Ingredients: []string{"something"},
			Time:        "20 min",
			Image:       domain.AssetImage("placeholder"),
			Tags:        []string{},
		}
	}
	return recipes
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestEnrichPreservesOrder(t *testing.T) {
	// Reverse the completion order: the first recipe finishes last.
	in := batch(5)
	f := &fakeSearcher{
		urls:   map[string]string{},
		delays: map[string]time.Duration{},
	}
	for i, r := range in {
		f.urls[r.Name] = fmt.Sprintf("https://img.test/%d.jpg", r.ID)
		f.delays[r.Name] = time.Duration(len(in)-i) * 20 * time.Millisecond
	}

	out := New(f, testLogger()).Enrich(context.Background(), in)

	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		require.True(t, out[i].Image.IsRemote())
		assert.Equal(t, fmt.Sprintf("https://img.test/%d.jpg", in[i].ID), out[i].Image.URL.String())
	}
}

func TestEnrichIsolatesFailures(t *testing.T) {
	in := batch(5)
	f := &fakeSearcher{
		urls: map[string]string{},
		errs: map[string]error{
			// Recipe at index 2 fails with an API error.
			in[2].Name: &imagesearch.APIError{StatusCode: 500, Body: "boom"},
		},
	}
	for _, r := range in {
		f.urls[r.Name] = "https://img.test/" + r.Name + ".jpg"
	}

	out := New(f, testLogger()).Enrich(context.Background(), in)

	require.Len(t, out, 5)
	for i, r := range out {
		assert.Equal(t, in[i].ID, r.ID)
		if i == 2 {
			assert.False(t, r.Image.IsRemote())
			assert.Equal(t, PlaceholderAsset, r.Image.Asset)
		} else {
			assert.True(t, r.Image.IsRemote())
		}
	}
}

func TestEnrichNoResultGetsPlaceholder(t *testing.T) {
	in := batch(1)
	in[0].Image = domain.AssetImage("some_model_token")

	out := New(&fakeSearcher{}, testLogger()).Enrich(context.Background(), in)

	require.Len(t, out, 1)
	// The synthesis-supplied token is overwritten, not kept.
	assert.Equal(t, PlaceholderAsset, out[0].Image.Asset)
}

func TestEnrichMutatesOnlyImage(t *testing.T) {
	in := batch(2)
	f := &fakeSearcher{urls: map[string]string{in[0].Name: "https://img.test/a.jpg"}}

	out := New(f, testLogger()).Enrich(context.Background(), in)

	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Name, out[i].Name)
		assert.Equal(t, in[i].Ingredients, out[i].Ingredients)
		assert.Equal(t, in[i].Time, out[i].Time)
		assert.Equal(t, in[i].Tags, out[i].Tags)
	}
}

func TestEnrichEmptyBatch(t *testing.T) {
	out := New(&fakeSearcher{}, testLogger()).Enrich(context.Background(), nil)
	assert.Empty(t, out)
}
