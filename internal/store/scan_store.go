package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/snapchef/snapchef/internal/domain"
)

// ScanStore persists capture records. Only the capture metadata and the
// terminal phase its pipeline run reached are kept; recipe results are not.
type ScanStore struct {
	db *sql.DB
}

func NewScanStore(db *sql.DB) *ScanStore {
	return &ScanStore{db: db}
}

func (s *ScanStore) Create(ctx context.Context, storageKey, mimeType string) (*domain.Scan, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO scans (storage_key, mime_type) VALUES (?, ?)
	`, storageKey, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ScanStore) GetByID(ctx context.Context, id int64) (*domain.Scan, error) {
	scan := &domain.Scan{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, storage_key, mime_type, phase, ingredient_count, created_at FROM scans WHERE id = ?
	`, id).Scan(&scan.ID, &scan.StorageKey, &scan.MimeType, &scan.Phase, &scan.IngredientCount, &scan.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}

	return scan, nil
}

// SetResult records the terminal phase and ingredient count once a scan's
// pipeline run finishes.
func (s *ScanStore) SetResult(ctx context.Context, id int64, phase string, ingredientCount int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE scans SET phase = ?, ingredient_count = ? WHERE id = ?
	`, phase, ingredientCount, id)
	if err != nil {
		return fmt.Errorf("failed to update scan: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("scan not found")
	}

	return nil
}

// List returns the most recent scans, newest first.
func (s *ScanStore) List(ctx context.Context, limit int) ([]*domain.Scan, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, storage_key, mime_type, phase, ingredient_count, created_at FROM scans
		ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var scans []*domain.Scan
	for rows.Next() {
		scan := &domain.Scan{}
		if err := rows.Scan(&scan.ID, &scan.StorageKey, &scan.MimeType, &scan.Phase, &scan.IngredientCount, &scan.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, scan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scans: %w", err)
	}

	return scans, nil
}
