package samples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	recipes, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, recipes)

	first := recipes[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Spinach & Tomato Pasta", first.Name)
	assert.NotEmpty(t, first.Ingredients)
	assert.NotEmpty(t, first.Steps)
	assert.False(t, first.Image.IsRemote())
	require.NotNil(t, first.NutritionalInfo)
	assert.Equal(t, "350 kcal", first.NutritionalInfo.Calories)

	for _, r := range recipes {
		assert.NotNil(t, r.Tags, "recipe %q should have non-nil tags", r.Name)
	}
}

func TestFilterByName(t *testing.T) {
	recipes, err := Load()
	require.NoError(t, err)

	matched := Filter(recipes, "pasta")
	require.Len(t, matched, 1)
	assert.Equal(t, "Spinach & Tomato Pasta", matched[0].Name)
}

func TestFilterByIngredient(t *testing.T) {
	recipes, err := Load()
	require.NoError(t, err)

	matched := Filter(recipes, "bell pepper")
	require.Len(t, matched, 2)
}

func TestFilterEmptyQuery(t *testing.T) {
	recipes, err := Load()
	require.NoError(t, err)

	assert.Equal(t, recipes, Filter(recipes, ""))
}

func TestFilterNoMatch(t *testing.T) {
	recipes, err := Load()
	require.NoError(t, err)

	assert.Empty(t, Filter(recipes, "chocolate"))
}
