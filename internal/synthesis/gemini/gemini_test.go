package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapchef/snapchef/internal/synthesis"
)

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
}

func TestSynthesize(t *testing.T) {
	recipeArray := `[{"id": 1, "name": "Spinach Omelette", "ingredients": ["Eggs", "Spinach"], "time": "10 min", "image": "placeholder", "tags": ["Quick"]}]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gm-test", r.URL.Query().Get("key"))

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		require.Len(t, body.Contents[0].Parts, 1)
		assert.Contains(t, body.Contents[0].Parts[0].Text, "Eggs, Spinach")

		// Prose wrapping despite the prompt's instructions.
		err := json.NewEncoder(w).Encode(textResponse("Sure, here are your recipes:\n" + recipeArray + "\nBon appetit!"))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := New("gm-test")
	client.baseURL = server.URL

	recipes, err := client.Synthesize(context.Background(), []string{"Eggs", "Spinach"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Spinach Omelette", recipes[0].Name)
	assert.Equal(t, []string{"Quick"}, recipes[0].Tags)
}

func TestSynthesizeEmptyIngredientsSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := New("gm-test")
	client.baseURL = server.URL

	recipes, err := client.Synthesize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, recipes)
	assert.Zero(t, calls.Load())
}

func TestSynthesizeParseFailure(t *testing.T) {
	tests := []struct {
		name string
		resp map[string]any
	}{
		{"no candidates", map[string]any{"candidates": []any{}}},
		{"no array in text", textResponse("I am unable to help with that.")},
		{"invalid recipe objects", textResponse(`[{"name": "missing everything"}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewEncoder(w).Encode(tt.resp))
			}))
			defer server.Close()

			client := New("gm-test")
			client.baseURL = server.URL

			_, err := client.Synthesize(context.Background(), []string{"Eggs"})
			assert.ErrorIs(t, err, synthesis.ErrParseFailure)
		})
	}
}

func TestSynthesizeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New("gm-test")
	client.baseURL = server.URL

	_, err := client.Synthesize(context.Background(), []string{"Eggs"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
