package domain

import "time"

// Scan is one capture record: the stored photo plus the terminal phase its
// pipeline run reached. Recipe results themselves are not persisted.
type Scan struct {
	ID              int64
	StorageKey      string
	MimeType        string
	Phase           string
	IngredientCount int
	CreatedAt       time.Time
}

// CookedRecipe is one entry in the cook tracker log.
type CookedRecipe struct {
	ID          int64
	RecipeName  string
	FoodSavedKg float64
	MoneySaved  float64
	CookedAt    time.Time
}

type Badge struct {
	Name     string `json:"name"`
	Achieved bool   `json:"achieved"`
}

// TrackerStats aggregates the cook log for the tracker screen.
type TrackerStats struct {
	CompletedRecipes int     `json:"completedRecipes"`
	FoodSavedWeekKg  float64 `json:"foodSavedWeekKg"`
	FoodSavedTotalKg float64 `json:"foodSavedTotalKg"`
	MoneySavedWeek   float64 `json:"moneySavedWeek"`
	MoneySavedTotal  float64 `json:"moneySavedTotal"`
	Badges           []Badge `json:"badges"`
}
