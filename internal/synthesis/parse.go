package synthesis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/snapchef/snapchef/internal/domain"
)

// BuildPrompt is the shared recipe-generation prompt used by all synthesis
// backends. It pins the batch size and the exact JSON schema the decoder
// expects, and tells the model to emit nothing but the array.
func BuildPrompt(ingredients []string) string {
	return fmt.Sprintf(`Create 5 detailed recipes using only the following ingredients: %s.
Each recipe should be a JSON object, and all 5 recipes should be contained within a single JSON array.
Each JSON recipe object must strictly adhere to the following structure:

{
    "id": 0,
    "name": "Recipe Name",
    "ingredients": ["ingredient1", "ingredient2", ...],
    "time": "e.g., 30 min",
    "image": "placeholder",
    "steps": ["step 1", "step 2", ...],
    "tags": ["tag1", "tag2", ...],
    "nutritionalInfo": {"calories": "200kcal", "protein": "10g", "carbs": "20g", "fat": "5g"}
}

Ensure the entire output is a valid JSON array of these recipe objects. Do not include any additional text, markdown formatting (like `+"```json"+`), or statements outside of the JSON array.`,
		strings.Join(ingredients, ", "))
}

// ParseRecipes extracts the recipe array from raw model output. Models
// sometimes wrap the array in prose despite the prompt, so the candidate
// JSON is the substring from the first '[' to the last ']' inclusive.
// Any failure is ErrParseFailure; there is no partial decode.
func ParseRecipes(text string) ([]domain.Recipe, error) {
	candidate, ok := extractArray(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON array found", ErrParseFailure)
	}

	var recipes []domain.Recipe
	if err := json.Unmarshal([]byte(candidate), &recipes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	return recipes, nil
}

// extractArray returns the substring spanning the first '[' through the last
// ']' of text, or false when no such pair exists.
func extractArray(text string) (string, bool) {
	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}
