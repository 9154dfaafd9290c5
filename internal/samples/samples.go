// Package samples provides the bundled starter recipes shown before the
// user's first scan.
package samples

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/snapchef/snapchef/internal/domain"
)

//go:embed recipes.yaml
var recipesYAML []byte

// recipeSeed mirrors recipes.yaml; the image field carries the same
// single-string form the synthesis schema uses.
type recipeSeed struct {
	ID              int      `yaml:"id"`
	Name            string   `yaml:"name"`
	Ingredients     []string `yaml:"ingredients"`
	Time            string   `yaml:"time"`
	Image           string   `yaml:"image"`
	Steps           []string `yaml:"steps"`
	Tags            []string `yaml:"tags"`
	NutritionalInfo *struct {
		Calories string `yaml:"calories"`
		Protein  string `yaml:"protein"`
		Carbs    string `yaml:"carbs"`
		Fat      string `yaml:"fat"`
	} `yaml:"nutritionalInfo"`
}

// Load parses the embedded starter recipes.
func Load() ([]domain.Recipe, error) {
	var seeds []recipeSeed
	if err := yaml.Unmarshal(recipesYAML, &seeds); err != nil {
		return nil, fmt.Errorf("failed to parse sample recipes: %w", err)
	}

	recipes := make([]domain.Recipe, 0, len(seeds))
	for _, seed := range seeds {
		tags := seed.Tags
		if tags == nil {
			tags = []string{}
		}
		recipe := domain.Recipe{
			ID:          seed.ID,
			Name:        seed.Name,
			Ingredients: seed.Ingredients,
			Time:        seed.Time,
			Image:       domain.ClassifyImageSource(seed.Image),
			Steps:       seed.Steps,
			Tags:        tags,
		}
		if seed.NutritionalInfo != nil {
			recipe.NutritionalInfo = &domain.NutritionalInfo{
				Calories: seed.NutritionalInfo.Calories,
				Protein:  seed.NutritionalInfo.Protein,
				Carbs:    seed.NutritionalInfo.Carbs,
				Fat:      seed.NutritionalInfo.Fat,
			}
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// Filter returns the recipes whose name or any ingredient contains query,
// case-insensitively. An empty query returns the input unchanged.
func Filter(recipes []domain.Recipe, query string) []domain.Recipe {
	if query == "" {
		return recipes
	}

	needle := strings.ToLower(query)
	matched := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if strings.Contains(strings.ToLower(recipe.Name), needle) {
			matched = append(matched, recipe)
			continue
		}
		for _, ingredient := range recipe.Ingredients {
			if strings.Contains(strings.ToLower(ingredient), needle) {
				matched = append(matched, recipe)
				break
			}
		}
	}
	return matched
}
