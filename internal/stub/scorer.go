package stub

import (
	"math"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
)

// Scores assigned by the keyword scorer.
const (
	noMatchScore  = 0.35
	baseScore     = 0.4
	perMatchScore = 0.2
	maxScore      = 0.95
)

// Score picks the category whose keywords occur most often in text. Ties go
// to the category listed first; text without any keyword falls back to
// general literature with a low score.
func Score(text string) (model.Category, float64) {
	matches := presenter.KeywordMatches(text)

	best := model.CategoryLitterature
	bestCount := 0
	for _, category := range model.KnownCategories() {
		if n := matches[category]; n > bestCount {
			best, bestCount = category, n
		}
	}

	if bestCount == 0 {
		return best, noMatchScore
	}

	score := math.Min(maxScore, baseScore+perMatchScore*float64(bestCount))
	return best, math.Round(score*100) / 100
}
