package presenter

import (
	"strings"

	"github.com/Veraticus/biblio/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

type keywordSet struct {
	category model.Category
	words    []string
}

// keywords drives the live hints shown while the user types.
var keywords = []keywordSet{
	{model.CategoryScienceFiction, []string{"espace", "futur", "robot", "technologie", "alien"}},
	{model.CategoryRomance, []string{"amour", "cœur", "passion", "relation"}},
	{model.CategoryThriller, []string{"mystère", "enquête", "meurtre", "suspense"}},
	{model.CategoryFantasy, []string{"magie", "dragon", "épée", "royaume"}},
	{model.CategoryHistoire, []string{"guerre", "siècle", "époque", "historique"}},
}

// Fold lower-cases text with French rules and composes accents, so that
// "ÉPÉE" and a decomposed "épée" both match "épée".
func Fold(text string) string {
	return cases.Lower(language.French).String(norm.NFC.String(strings.TrimSpace(text)))
}

// KeywordHints lists the categories whose keywords occur in text.
func KeywordHints(text string) []model.Category {
	folded := Fold(text)
	if folded == "" {
		return nil
	}

	var hints []model.Category
	for _, set := range keywords {
		for _, word := range set.words {
			if strings.Contains(folded, word) {
				hints = append(hints, set.category)
				break
			}
		}
	}
	return hints
}

// KeywordMatches counts keyword occurrences per category in text.
func KeywordMatches(text string) map[model.Category]int {
	folded := Fold(text)
	counts := make(map[model.Category]int)
	if folded == "" {
		return counts
	}

	for _, set := range keywords {
		for _, word := range set.words {
			if n := strings.Count(folded, word); n > 0 {
				counts[set.category] += n
			}
		}
	}
	return counts
}
