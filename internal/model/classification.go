// Package model defines the core domain models used throughout the application.
package model

import "time"

// ClassificationRequest is the user input for a prediction.
type ClassificationRequest struct {
	Title       string
	Description string
}

// ClassificationResult is the prediction returned by the remote service.
type ClassificationResult struct {
	Category        Category
	ConfidenceScore float64
}

// SuggestionResult is the answer of the remote suggestion endpoint.
type SuggestionResult struct {
	Category       Category
	SuggestedBooks []string
}

// PredictionRecord is a locally logged prediction.
type PredictionRecord struct {
	CreatedAt  time.Time
	ID         string
	Text       string
	Category   Category
	Confidence float64
}

// CorrectionRecord is a locally logged outcome of a confirmation loop.
type CorrectionRecord struct {
	CreatedAt   time.Time
	ID          string
	Title       string
	Description string
	Predicted   Category
	Corrected   Category
	Confirmed   bool
}
