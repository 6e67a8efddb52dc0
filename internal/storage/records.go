package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/biblio/internal/model"
)

// SavePrediction logs a prediction. Missing IDs and timestamps are filled in.
func (s *SQLiteStorage) SavePrediction(ctx context.Context, record *model.PredictionRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePrediction(record); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO predictions (id, text, category, confidence, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID, record.Text, string(record.Category), record.Confidence, record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// SaveCorrection logs the outcome of a confirmation loop.
func (s *SQLiteStorage) SaveCorrection(ctx context.Context, record *model.CorrectionRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCorrection(record); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO corrections (id, title, description, predicted, corrected, confirmed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Title, record.Description, string(record.Predicted),
		string(record.Corrected), record.Confirmed, record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save correction: %w", err)
	}
	return nil
}

// ListCorrections returns the most recent corrections first. A limit of zero
// or less returns everything.
func (s *SQLiteStorage) ListCorrections(ctx context.Context, limit int) ([]model.CorrectionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, predicted, corrected, confirmed, created_at
		FROM corrections
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.CorrectionRecord
	for rows.Next() {
		var r model.CorrectionRecord
		var predicted, corrected string
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &predicted, &corrected, &r.Confirmed, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		r.Predicted = model.Category(predicted)
		r.Corrected = model.Category(corrected)
		records = append(records, r)
	}

	return records, rows.Err()
}

// ListPredictions returns the most recent predictions first.
func (s *SQLiteStorage) ListPredictions(ctx context.Context, limit int) ([]model.PredictionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, category, confidence, created_at
		FROM predictions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.PredictionRecord
	for rows.Next() {
		var r model.PredictionRecord
		var category string
		if err := rows.Scan(&r.ID, &r.Text, &category, &r.Confidence, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		r.Category = model.Category(category)
		records = append(records, r)
	}

	return records, rows.Err()
}

// CorrectionRate reports how many logged loops ended in a correction.
func (s *SQLiteStorage) CorrectionRate(ctx context.Context) (corrected, total int, err error) {
	if err := validateContext(ctx); err != nil {
		return 0, 0, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN confirmed = 0 THEN 1 ELSE 0 END), 0), COUNT(*)
		FROM corrections
	`).Scan(&corrected, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute correction rate: %w", err)
	}
	return corrected, total, nil
}
