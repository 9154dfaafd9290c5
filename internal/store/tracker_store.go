package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/snapchef/snapchef/internal/domain"
)

// TrackerStore persists the cook log behind the tracker screen.
type TrackerStore struct {
	db *sql.DB
}

func NewTrackerStore(db *sql.DB) *TrackerStore {
	return &TrackerStore{db: db}
}

// Log records a completed recipe with its estimated savings.
func (s *TrackerStore) Log(ctx context.Context, recipeName string, foodSavedKg, moneySaved float64, cookedAt time.Time) (*domain.CookedRecipe, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO cooked_recipes (recipe_name, food_saved_kg, money_saved, cooked_at) VALUES (?, ?, ?, ?)
	`, recipeName, foodSavedKg, moneySaved, cookedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to log cooked recipe: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	entry := &domain.CookedRecipe{}
	err = s.db.QueryRowContext(ctx, `
		SELECT id, recipe_name, food_saved_kg, money_saved, cooked_at FROM cooked_recipes WHERE id = ?
	`, id).Scan(&entry.ID, &entry.RecipeName, &entry.FoodSavedKg, &entry.MoneySaved, &entry.CookedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get cooked recipe: %w", err)
	}

	return entry, nil
}

// Stats aggregates the cook log into the tracker summary. "This week" means
// the seven days ending at now.
func (s *TrackerStore) Stats(ctx context.Context, now time.Time) (*domain.TrackerStats, error) {
	stats := &domain.TrackerStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(food_saved_kg), 0), COALESCE(SUM(money_saved), 0)
		FROM cooked_recipes
	`).Scan(&stats.CompletedRecipes, &stats.FoodSavedTotalKg, &stats.MoneySavedTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}

	weekStart := now.UTC().AddDate(0, 0, -7)
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(food_saved_kg), 0), COALESCE(SUM(money_saved), 0)
		FROM cooked_recipes WHERE cooked_at >= ?
	`, weekStart).Scan(&stats.FoodSavedWeekKg, &stats.MoneySavedWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate week: %w", err)
	}

	stats.Badges = badgesFor(stats.CompletedRecipes)
	return stats, nil
}

// badgesFor derives achievement badges from the completed-recipe count.
func badgesFor(completed int) []domain.Badge {
	thresholds := []struct {
		name string
		min  int
	}{
		{"First Recipe Cooked", 1},
		{"Food Saver", 5},
		{"Cooking Streak: 7 Days", 7},
		{"Inventory Master", 10},
		{"Zero Waste Champion", 20},
	}

	badges := make([]domain.Badge, 0, len(thresholds))
	for _, t := range thresholds {
		badges = append(badges, domain.Badge{Name: t.name, Achieved: completed >= t.min})
	}
	return badges
}
