package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyImageSource(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		remote bool
	}{
		{"https url", "https://x.test/a.jpg", true},
		{"http url", "http://images.example.com/pasta.png", true},
		{"asset token", "placeholder", false},
		{"asset with underscore", "spinach_tomato_pasta", false},
		{
			// A scheme without a host is not a usable remote image.
			name:   "scheme only",
			input:  "mailto:someone@example.com",
			remote: false,
		},
		{"relative path", "/images/a.jpg", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ClassifyImageSource(tt.input)
			assert.Equal(t, tt.remote, src.IsRemote())
			assert.Equal(t, tt.input, src.String())
		})
	}
}

func TestRecipeDecode(t *testing.T) {
	raw := `{
		"id": 3,
		"name": "Tomato Omelette",
		"ingredients": ["Eggs", "Tomatoes"],
		"time": "10 min",
		"image": "placeholder",
		"steps": ["Beat the eggs.", "Fry."],
		"tags": ["Quick"],
		"nutritionalInfo": {"calories": "200kcal", "protein": "12g", "carbs": "4g", "fat": "14g"}
	}`

	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Equal(t, 3, r.ID)
	assert.Equal(t, "Tomato Omelette", r.Name)
	assert.Equal(t, []string{"Eggs", "Tomatoes"}, r.Ingredients)
	assert.Equal(t, "10 min", r.Time)
	assert.False(t, r.Image.IsRemote())
	assert.Equal(t, "placeholder", r.Image.Asset)
	assert.Len(t, r.Steps, 2)
	assert.Equal(t, []string{"Quick"}, r.Tags)
	require.NotNil(t, r.NutritionalInfo)
	assert.Equal(t, "200kcal", r.NutritionalInfo.Calories)
}

func TestRecipeDecodeRemoteImage(t *testing.T) {
	raw := `{"id":1,"name":"A","ingredients":[],"time":"5 min","image":"https://x.test/a.jpg"}`

	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.True(t, r.Image.IsRemote())
	assert.Equal(t, "https://x.test/a.jpg", r.Image.URL.String())
}

func TestRecipeDecodeDefaults(t *testing.T) {
	raw := `{"id":1,"name":"A","ingredients":["x"],"time":"5 min","image":"placeholder"}`

	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.NotNil(t, r.Tags)
	assert.Empty(t, r.Tags)
	assert.Nil(t, r.Steps)
	assert.Nil(t, r.NutritionalInfo)
}

func TestRecipeDecodeNullTags(t *testing.T) {
	raw := `{"id":1,"name":"A","ingredients":["x"],"time":"5 min","image":"placeholder","tags":null}`

	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.NotNil(t, r.Tags)
	assert.Empty(t, r.Tags)
}

func TestRecipeDecodeMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing id", `{"name":"A","ingredients":[],"time":"5 min","image":"p"}`},
		{"missing name", `{"id":1,"ingredients":[],"time":"5 min","image":"p"}`},
		{"missing ingredients", `{"id":1,"name":"A","time":"5 min","image":"p"}`},
		{"missing time", `{"id":1,"name":"A","ingredients":[],"image":"p"}`},
		{"missing image", `{"id":1,"name":"A","ingredients":[],"time":"5 min"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Recipe
			assert.Error(t, json.Unmarshal([]byte(tt.raw), &r))
		})
	}
}

func TestRecipeMarshalImageAsString(t *testing.T) {
	r := Recipe{
		ID:          1,
		Name:        "A",
		Ingredients: []string{"x"},
		Time:        "5 min",
		Image:       AssetImage("placeholder"),
		Tags:        []string{},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"image":"placeholder"`)
}
