// Package logmeal implements segmentation.Client against the LogMeal
// image-segmentation API.
package logmeal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/snapchef/snapchef/internal/segmentation"
)

const defaultAPIURL = "https://api.logmeal.com/v2/image/segmentation/complete"

type Client struct {
	token   string
	client  *http.Client
	baseURL string
}

type Option func(*Client)

// WithBaseURL points the client at a non-default endpoint, e.g. a local stub.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func New(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		client:  &http.Client{},
		baseURL: defaultAPIURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Segment posts the image and extracts the deduplicated ingredient names
// from the segmentation envelope.
func (c *Client) Segment(ctx context.Context, image []byte) ([]string, error) {
	body, contentType, err := buildMultipartBody(image)
	if err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", segmentation.ErrNoResponse, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close logmeal response body", "error", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", segmentation.ErrNoResponse, err)
	}
	if len(respBody) == 0 {
		return nil, segmentation.ErrNoResponse
	}

	return parseSegmentation(respBody)
}

// buildMultipartBody wraps the image in a single-part multipart form, field
// "image", filename "photo.jpg", content type image/jpeg.
func buildMultipartBody(image []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo.jpg"`)
	header.Set("Content-Type", "image/jpeg")

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// parseSegmentation validates the top-level envelope strictly and the inner
// entries leniently: a missing or ill-typed segmentation_results key fails
// the whole parse, while malformed segments or recognition entries are
// skipped so one bad element cannot poison the rest.
func parseSegmentation(body []byte) ([]string, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", segmentation.ErrInvalidResponse, err)
	}

	rawResults, ok := envelope["segmentation_results"]
	if !ok {
		return nil, fmt.Errorf("%w: missing segmentation_results", segmentation.ErrInvalidResponse)
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(rawResults, &segments); err != nil {
		return nil, fmt.Errorf("%w: segmentation_results is not an array", segmentation.ErrInvalidResponse)
	}

	seen := make(map[string]struct{})
	ingredients := make([]string, 0)
	for _, rawSegment := range segments {
		var segment struct {
			RecognitionResults []json.RawMessage `json:"recognition_results"`
		}
		if err := json.Unmarshal(rawSegment, &segment); err != nil {
			continue
		}
		for _, rawRecognition := range segment.RecognitionResults {
			var recognition struct {
				FoodType struct {
					Name string `json:"name"`
				} `json:"foodType"`
				Name string `json:"name"`
			}
			if err := json.Unmarshal(rawRecognition, &recognition); err != nil {
				continue
			}
			if recognition.FoodType.Name != "ingredients" || recognition.Name == "" {
				continue
			}
			if _, dup := seen[recognition.Name]; dup {
				continue
			}
			seen[recognition.Name] = struct{}{}
			ingredients = append(ingredients, recognition.Name)
		}
	}
	return ingredients, nil
}
