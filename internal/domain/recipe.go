package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// ImageSource is a tagged variant: a recipe image is either a bundled asset
// token or a remote URL. Exactly one of Asset and URL is set.
type ImageSource struct {
	Asset string
	URL   *url.URL
}

func AssetImage(name string) ImageSource {
	return ImageSource{Asset: name}
}

func RemoteImage(u *url.URL) ImageSource {
	return ImageSource{URL: u}
}

func (s ImageSource) IsRemote() bool {
	return s.URL != nil
}

// String returns the single-string wire form: the URL for remote images,
// the asset token otherwise.
func (s ImageSource) String() string {
	if s.URL != nil {
		return s.URL.String()
	}
	return s.Asset
}

// ClassifyImageSource turns the ambiguous single-string image field into a
// tagged variant. A string that parses as an absolute URL with both a scheme
// and a host is remote; anything else is an asset token. Every decode path
// that sees an image string goes through this function.
func ClassifyImageSource(s string) ImageSource {
	u, err := url.Parse(s)
	if err == nil && u.Scheme != "" && u.Host != "" {
		return RemoteImage(u)
	}
	return AssetImage(s)
}

func (s ImageSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ImageSource) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("image must be a string: %w", err)
	}
	*s = ClassifyImageSource(raw)
	return nil
}

type NutritionalInfo struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// Recipe is one synthesized recipe. Instances decoded from a synthesis
// response start with whatever image token the model emitted; enrichment may
// later rewrite Image to a remote URL or the placeholder asset.
type Recipe struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	Ingredients     []string         `json:"ingredients"`
	Time            string           `json:"time"`
	Image           ImageSource      `json:"image"`
	Steps           []string         `json:"steps,omitempty"`
	Tags            []string         `json:"tags"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
}

// recipeWire mirrors the synthesis JSON schema. Pointer fields distinguish
// "absent" from zero values so required-field checks are explicit.
type recipeWire struct {
	ID              *int             `json:"id"`
	Name            *string          `json:"name"`
	Ingredients     *[]string        `json:"ingredients"`
	Time            *string          `json:"time"`
	Image           *string          `json:"image"`
	Steps           []string         `json:"steps"`
	Tags            []string         `json:"tags"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo"`
}

// UnmarshalJSON enforces the per-field decode policy: id, name, ingredients,
// time, and image are required; steps and nutritionalInfo are optional; tags
// defaults to an empty list when absent or null.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var w recipeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.ID == nil:
		return fmt.Errorf("recipe missing required field %q", "id")
	case w.Name == nil:
		return fmt.Errorf("recipe missing required field %q", "name")
	case w.Ingredients == nil:
		return fmt.Errorf("recipe missing required field %q", "ingredients")
	case w.Time == nil:
		return fmt.Errorf("recipe missing required field %q", "time")
	case w.Image == nil:
		return fmt.Errorf("recipe missing required field %q", "image")
	}

	tags := w.Tags
	if tags == nil {
		tags = []string{}
	}

	*r = Recipe{
		ID:              *w.ID,
		Name:            *w.Name,
		Ingredients:     *w.Ingredients,
		Time:            *w.Time,
		Image:           ClassifyImageSource(*w.Image),
		Steps:           w.Steps,
		Tags:            tags,
		NutritionalInfo: w.NutritionalInfo,
	}
	return nil
}

// DetectedDish is the segmentation result: the deduplicated ingredient names
// recognized in a captured photo. Name is empty when the service does not
// identify the dish as a whole.
type DetectedDish struct {
	Name        string   `json:"name,omitempty"`
	Ingredients []string `json:"ingredients"`
}
