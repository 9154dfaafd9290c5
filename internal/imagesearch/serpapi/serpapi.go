// Package serpapi implements imagesearch.Client against the SerpAPI Google
// Images endpoint.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/snapchef/snapchef/internal/imagesearch"
)

const defaultAPIURL = "https://serpapi.com/search"

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

// FindImage searches Google Images for the query and returns the first
// result's original-size URL. The literal suffix " recipe" is appended to
// bias results toward food photography.
func (c *Client) FindImage(ctx context.Context, query string) (*url.URL, error) {
	params := url.Values{
		"engine":  {"google_images"},
		"q":       {query + " recipe"},
		"api_key": {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call image search: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close image search response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, &imagesearch.APIError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	var respBody struct {
		ImagesResults []struct {
			Original string `json:"original"`
		} `json:"images_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Absent or empty results, a missing original field, or an unparseable
	// URL all mean "no image found", not an error.
	if len(respBody.ImagesResults) == 0 || respBody.ImagesResults[0].Original == "" {
		return nil, nil
	}
	u, err := url.Parse(respBody.ImagesResults[0].Original)
	if err != nil {
		return nil, nil
	}
	return u, nil
}
