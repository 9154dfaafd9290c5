package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/snapchef/snapchef/internal/domain"
	"github.com/snapchef/snapchef/internal/photostore"
	"github.com/snapchef/snapchef/internal/pipeline"
)

// scanRepository is the subset of store.ScanStore that ScanService requires.
type scanRepository interface {
	Create(ctx context.Context, storageKey, mimeType string) (*domain.Scan, error)
	GetByID(ctx context.Context, id int64) (*domain.Scan, error)
	SetResult(ctx context.Context, id int64, phase string, ingredientCount int) error
	List(ctx context.Context, limit int) ([]*domain.Scan, error)
}

// pipelineRunner is the subset of pipeline.Orchestrator that ScanService requires.
type pipelineRunner interface {
	Run(ctx context.Context, image []byte) string
	Snapshot() pipeline.State
}

// ScanService accepts a captured photo, persists it, and drives the
// detection-to-recipe pipeline for it.
type ScanService struct {
	scans    scanRepository
	photoStg photostore.PhotoStore
	pipe     pipelineRunner
	logger   *slog.Logger
}

func NewScanService(scans scanRepository, photoStg photostore.PhotoStore, pipe pipelineRunner, logger *slog.Logger) *ScanService {
	return &ScanService{
		scans:    scans,
		photoStg: photoStg,
		pipe:     pipe,
		logger:   logger,
	}
}

// Capture stores the photo, records the scan, and starts a pipeline run for
// it in the background. A capture supersedes any run still in progress.
func (s *ScanService) Capture(ctx context.Context, imageData []byte, mimeType string) (*domain.Scan, error) {
	s.logger.Info("capture started", "mime_type", mimeType, "bytes", len(imageData))

	storageKey, err := s.photoStg.Save(ctx, mimeType, bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}
	s.logger.Debug("photo saved", "storage_key", storageKey)

	scan, err := s.scans.Create(ctx, storageKey, mimeType)
	if err != nil {
		_ = s.photoStg.Delete(ctx, storageKey)
		return nil, fmt.Errorf("failed to create scan record: %w", err)
	}

	// The run must outlive the upload request; the client observes progress
	// through the state endpoints.
	go s.runPipeline(context.WithoutCancel(ctx), scan.ID, imageData)

	return scan, nil
}

func (s *ScanService) runPipeline(ctx context.Context, scanID int64, imageData []byte) {
	runID := s.pipe.Run(ctx, imageData)

	snap := s.pipe.Snapshot()
	if snap.RunID != runID {
		// Superseded by a newer capture or a reset; the scan row keeps the
		// phase it last reached.
		s.logger.Info("scan run superseded", "scan_id", scanID, "run_id", runID)
		return
	}

	count := 0
	if snap.DetectedDish != nil {
		count = len(snap.DetectedDish.Ingredients)
	}
	if err := s.scans.SetResult(ctx, scanID, string(snap.Phase), count); err != nil {
		s.logger.Error("failed to record scan result", "scan_id", scanID, "error", err)
	}
}

func (s *ScanService) GetScan(ctx context.Context, scanID int64) (*domain.Scan, error) {
	return s.scans.GetByID(ctx, scanID)
}

func (s *ScanService) ListScans(ctx context.Context, limit int) ([]*domain.Scan, error) {
	return s.scans.List(ctx, limit)
}
