package predictor

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/biblio/internal/common"
)

// CategoryField selects which response field carries the predicted category.
// Deployed backends disagree: some answer "category", others "cluster".
type CategoryField string

// Supported field mappings.
const (
	FieldAuto     CategoryField = "auto"
	FieldCategory CategoryField = "category"
	FieldCluster  CategoryField = "cluster"
)

// ParseCategoryField validates a configured field mapping.
func ParseCategoryField(s string) (CategoryField, error) {
	switch CategoryField(strings.ToLower(strings.TrimSpace(s))) {
	case "", FieldAuto:
		return FieldAuto, nil
	case FieldCategory:
		return FieldCategory, nil
	case FieldCluster:
		return FieldCluster, nil
	default:
		return "", fmt.Errorf("%w: category field %q (want auto, category or cluster)", common.ErrInvalidConfig, s)
	}
}

// Config holds the remote service settings.
type Config struct {
	BaseURL       string
	UserAgent     string
	CategoryField CategoryField
	Timeout       time.Duration
	// RequestsPerMinute caps the request rate. Zero means unlimited.
	RequestsPerMinute int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://localhost:8000",
		CategoryField: FieldAuto,
		Timeout:       10 * time.Second,
		UserAgent:     "biblio",
	}
}
