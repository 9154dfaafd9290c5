// Package pipeline sequences a captured photo through ingredient detection,
// recipe synthesis, and image enrichment, and owns the observable pipeline
// state published to the presentation layer.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/snapchef/snapchef/internal/domain"
	"github.com/snapchef/snapchef/internal/segmentation"
	"github.com/snapchef/snapchef/internal/synthesis"
)

type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseCapturing     Phase = "capturing"
	PhaseDetecting     Phase = "detecting"
	PhaseNoIngredients Phase = "no_ingredients"
	PhaseSynthesizing  Phase = "synthesizing"
	PhaseEnriching     Phase = "enriching"
	PhaseReady         Phase = "ready"
	PhaseErrored       Phase = "errored"
)

// State is the observable pipeline aggregate. Values handed to subscribers
// are snapshots; the slices they carry are never mutated after publication.
type State struct {
	Phase             Phase                `json:"phase"`
	RunID             string               `json:"runId,omitempty"`
	DetectedDish      *domain.DetectedDish `json:"detectedDish,omitempty"`
	FullRecipes       []domain.Recipe      `json:"fullRecipes,omitempty"`
	IsFetchingRecipes bool                 `json:"isFetchingRecipes"`
	Message           string               `json:"message,omitempty"`
}

// enricher is the slice of enrich.Enricher the orchestrator needs.
type enricher interface {
	Enrich(ctx context.Context, recipes []domain.Recipe) []domain.Recipe
}

// Orchestrator runs the detection-to-recipe pipeline and is the single
// writer of its published State. Each run is tagged with a generation id;
// results from a run superseded by a newer capture or a reset are discarded
// at publish time, so stale in-flight calls can never leak into newer state.
type Orchestrator struct {
	segmenter segmentation.Client
	synth     synthesis.Client
	enricher  enricher
	logger    *slog.Logger

	mu    sync.Mutex
	gen   uuid.UUID
	state State
	subs  map[chan State]struct{}
}

func New(segmenter segmentation.Client, synth synthesis.Client, enr enricher, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		segmenter: segmenter,
		synth:     synth,
		enricher:  enr,
		logger:    logger,
		state:     State{Phase: PhaseIdle},
		subs:      make(map[chan State]struct{}),
	}
}

// Snapshot returns the current published state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Subscribe registers a state observer. Every publish is sent on the
// returned channel; a subscriber that falls behind misses intermediate
// states rather than blocking the pipeline. The cancel func unregisters and
// closes the channel.
func (o *Orchestrator) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 8)

	o.mu.Lock()
	o.subs[ch] = struct{}{}
	ch <- o.state
	o.mu.Unlock()

	cancel := func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if _, ok := o.subs[ch]; ok {
			delete(o.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Reset clears all pipeline state, returns to Idle, and supersedes any run
// in progress.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen = uuid.Nil
	o.state = State{Phase: PhaseIdle}
	o.broadcastLocked()
}

// Run executes one full pipeline pass over the captured image and returns
// the run id. It blocks until the run reaches a terminal phase or is
// superseded; callers wanting fire-and-forget run it in a goroutine. A new
// Run supersedes any run still in flight.
func (o *Orchestrator) Run(ctx context.Context, image []byte) string {
	o.mu.Lock()
	gen := uuid.New()
	o.gen = gen
	o.state = State{Phase: PhaseCapturing, RunID: gen.String()}
	o.broadcastLocked()
	o.mu.Unlock()

	runID := gen.String()
	o.logger.Info("pipeline run started", "run_id", runID, "bytes", len(image))

	if !o.publish(gen, func(s *State) { s.Phase = PhaseDetecting }) {
		return runID
	}

	ingredients, err := o.segmenter.Segment(ctx, image)
	if err != nil {
		o.logger.Error("ingredient detection failed", "run_id", runID, "error", err)
		o.publish(gen, func(s *State) {
			s.Phase = PhaseErrored
			s.Message = detectionFailureMessage(err)
		})
		return runID
	}
	o.logger.Info("ingredients detected", "run_id", runID, "count", len(ingredients))

	dish := &domain.DetectedDish{Ingredients: ingredients}
	if len(ingredients) == 0 {
		o.publish(gen, func(s *State) {
			s.DetectedDish = dish
			s.Phase = PhaseNoIngredients
			s.Message = "No ingredients to suggest recipes."
		})
		return runID
	}

	// Observers must see a clean loading state before the synthesis call
	// resolves: recipes cleared, fetching flag up.
	if !o.publish(gen, func(s *State) {
		s.DetectedDish = dish
		s.Phase = PhaseSynthesizing
		s.IsFetchingRecipes = true
		s.FullRecipes = nil
	}) {
		return runID
	}

	recipes, err := o.synth.Synthesize(ctx, ingredients)
	if err != nil {
		o.logger.Error("recipe synthesis failed", "run_id", runID, "error", err)
		o.publish(gen, func(s *State) {
			s.Phase = PhaseErrored
			s.Message = "Could not generate recipes from the detected ingredients."
			s.FullRecipes = nil
			s.IsFetchingRecipes = false
		})
		return runID
	}
	o.logger.Info("recipes synthesized", "run_id", runID, "count", len(recipes))

	if !o.publish(gen, func(s *State) { s.Phase = PhaseEnriching }) {
		return runID
	}

	enriched := o.enricher.Enrich(ctx, recipes)

	o.publish(gen, func(s *State) {
		s.Phase = PhaseReady
		s.FullRecipes = enriched
		s.IsFetchingRecipes = false
		s.Message = ""
	})
	o.logger.Info("pipeline run complete", "run_id", runID, "recipes", len(enriched))
	return runID
}

// publish applies mutate to the state and broadcasts, unless gen has been
// superseded by a newer run or a reset; it reports whether the run is still
// current so stages after a stale publish can stop early.
func (o *Orchestrator) publish(gen uuid.UUID, mutate func(*State)) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.gen != gen {
		return false
	}
	mutate(&o.state)
	o.broadcastLocked()
	return true
}

func (o *Orchestrator) broadcastLocked() {
	for ch := range o.subs {
		select {
		case ch <- o.state:
		default:
		}
	}
}

func detectionFailureMessage(err error) string {
	switch {
	case errors.Is(err, segmentation.ErrNoResponse):
		return "No response from the ingredient detection service."
	case errors.Is(err, segmentation.ErrInvalidResponse):
		return "The ingredient detection service returned an unexpected response."
	default:
		return "Ingredient detection failed."
	}
}
