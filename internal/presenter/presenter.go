// Package presenter turns service results into display-ready values.
// Every function here is pure and total.
package presenter

import (
	"math"

	"github.com/Veraticus/biblio/internal/model"
)

// ConfidenceLabel is the qualitative rating of a confidence score.
type ConfidenceLabel string

// Confidence labels.
const (
	ConfidenceHigh   ConfidenceLabel = "High"
	ConfidenceMedium ConfidenceLabel = "Medium"
	ConfidenceLow    ConfidenceLabel = "Low"
)

// Label thresholds.
const (
	HighThreshold   = 0.8
	MediumThreshold = 0.5
)

// FallbackIcon is shown for categories outside the known set.
const FallbackIcon = "📚"

var categoryIcons = map[model.Category]string{
	model.CategoryScienceFiction: "🚀",
	model.CategoryRomance:        "💕",
	model.CategoryThriller:       "🔍",
	model.CategoryFantasy:        "🐉",
	model.CategoryHistoire:       "📜",
	model.CategoryLitterature:    "📖",
}

// French returns the label as the page displays it.
func (l ConfidenceLabel) French() string {
	switch l {
	case ConfidenceHigh:
		return "Élevée"
	case ConfidenceMedium:
		return "Moyenne"
	default:
		return "Faible"
	}
}

// Result is a classification ready for display.
type Result struct {
	Category   model.Category
	Icon       string
	Confidence ConfidenceLabel
	Score      float64
}

// Icon returns the icon for a category, or FallbackIcon. Labels are compared
// in normalised form, so "Littérature Générale " with decomposed accents
// still gets its icon.
func Icon(category model.Category) string {
	if icon, ok := categoryIcons[model.NormalizeCategory(string(category))]; ok {
		return icon
	}
	return FallbackIcon
}

// Confidence rates a score. NaN rates Low.
func Confidence(score float64) ConfidenceLabel {
	switch {
	case math.IsNaN(score):
		return ConfidenceLow
	case score >= HighThreshold:
		return ConfidenceHigh
	case score >= MediumThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Present maps a classification onto its icon and confidence label.
func Present(result model.ClassificationResult) Result {
	return Result{
		Category:   result.Category,
		Icon:       Icon(result.Category),
		Confidence: Confidence(result.ConfidenceScore),
		Score:      result.ConfidenceScore,
	}
}
