// Package gemini implements synthesis.Client against the Gemini
// generateContent API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/snapchef/snapchef/internal/domain"
	"github.com/snapchef/snapchef/internal/synthesis"
)

const defaultAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// request types mirror the generateContent body structure.
type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type response struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type Client struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

type Option func(*Client)

// WithBaseURL points the client at a non-default endpoint, e.g. a local stub.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		client:  &http.Client{},
		baseURL: defaultAPIURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Synthesize prompts the model for a recipe batch constrained to the given
// ingredients. An empty ingredient list short-circuits to an empty batch
// without a network call.
func (c *Client) Synthesize(ctx context.Context, ingredients []string) ([]domain.Recipe, error) {
	if len(ingredients) == 0 {
		return []domain.Recipe{}, nil
	}

	body := request{
		Contents: []content{{
			Parts: []part{{Text: synthesis.BuildPrompt(ingredients)}},
		}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?key="+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call gemini: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close gemini response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, errBody)
	}

	var respBody response
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidate text", synthesis.ErrParseFailure)
	}

	return synthesis.ParseRecipes(respBody.Candidates[0].Content.Parts[0].Text)
}
