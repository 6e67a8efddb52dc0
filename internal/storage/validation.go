// Package storage provides the data persistence layer for biblio.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/biblio/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrEmptySlice        = errors.New("slice cannot be empty")
	ErrInvalidBook       = errors.New("invalid book")
	ErrInvalidPrediction = errors.New("invalid prediction")
	ErrInvalidCorrection = errors.New("invalid correction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateBooks validates a slice of books.
func validateBooks(books []model.Book) error {
	if books == nil {
		return fmt.Errorf("%w: books", ErrNilParameter)
	}
	if len(books) == 0 {
		return fmt.Errorf("%w: books", ErrEmptySlice)
	}

	for i := range books {
		if err := validateBook(&books[i]); err != nil {
			return fmt.Errorf("book at index %d: %w", i, err)
		}
	}
	return nil
}

func validateBook(book *model.Book) error {
	if book == nil {
		return fmt.Errorf("%w: book", ErrNilParameter)
	}
	if strings.TrimSpace(book.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidBook)
	}
	if strings.TrimSpace(string(book.Category)) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidBook)
	}
	return nil
}

func validatePrediction(record *model.PredictionRecord) error {
	if record == nil {
		return fmt.Errorf("%w: prediction", ErrNilParameter)
	}
	if strings.TrimSpace(record.Text) == "" {
		return fmt.Errorf("%w: missing text", ErrInvalidPrediction)
	}
	if strings.TrimSpace(string(record.Category)) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidPrediction)
	}
	if math.IsNaN(record.Confidence) {
		return fmt.Errorf("%w: confidence is not a number", ErrInvalidPrediction)
	}
	return nil
}

func validateCorrection(record *model.CorrectionRecord) error {
	if record == nil {
		return fmt.Errorf("%w: correction", ErrNilParameter)
	}
	if strings.TrimSpace(string(record.Predicted)) == "" {
		return fmt.Errorf("%w: missing predicted category", ErrInvalidCorrection)
	}
	if strings.TrimSpace(string(record.Corrected)) == "" {
		return fmt.Errorf("%w: missing corrected category", ErrInvalidCorrection)
	}
	return nil
}
