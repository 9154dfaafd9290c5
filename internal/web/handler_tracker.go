package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/snapchef/snapchef/internal/domain"
)

type logCookedRequest struct {
	RecipeName  string  `json:"recipeName"`
	FoodSavedKg float64 `json:"foodSavedKg"`
	MoneySaved  float64 `json:"moneySaved"`
}

type cookedRecipeResponse struct {
	ID          int64     `json:"id"`
	RecipeName  string    `json:"recipeName"`
	FoodSavedKg float64   `json:"foodSavedKg"`
	MoneySaved  float64   `json:"moneySaved"`
	CookedAt    time.Time `json:"cookedAt"`
}

func toCookedRecipeResponse(entry *domain.CookedRecipe) cookedRecipeResponse {
	return cookedRecipeResponse{
		ID:          entry.ID,
		RecipeName:  entry.RecipeName,
		FoodSavedKg: entry.FoodSavedKg,
		MoneySaved:  entry.MoneySaved,
		CookedAt:    entry.CookedAt,
	}
}

func (s *Server) handleLogCooked(w http.ResponseWriter, r *http.Request) {
	var req logCookedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RecipeName == "" {
		writeError(w, http.StatusBadRequest, "recipeName is required")
		return
	}
	if req.FoodSavedKg < 0 || req.MoneySaved < 0 {
		writeError(w, http.StatusBadRequest, "savings cannot be negative")
		return
	}

	entry, err := s.tracker.Log(r.Context(), req.RecipeName, req.FoodSavedKg, req.MoneySaved, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log cooked recipe")
		s.logger.Error("log cooked recipe failed", "recipe", req.RecipeName, "error", err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toCookedRecipeResponse(entry))
}

func (s *Server) handleTrackerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.Stats(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load tracker stats")
		s.logger.Error("tracker stats failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}
