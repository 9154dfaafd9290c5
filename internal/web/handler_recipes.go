package web

import (
	"net/http"

	"github.com/snapchef/snapchef/internal/samples"
)

// handleSampleRecipes serves the bundled starter recipes, optionally filtered
// by ?q= against recipe names and ingredients.
func (s *Server) handleSampleRecipes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	s.writeJSON(w, http.StatusOK, samples.Filter(s.samples, query))
}
