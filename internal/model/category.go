package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Category is a book genre label assigned by the remote classifier.
// Values outside the known set are valid and are displayed without a specialised icon.
type Category string

// Known categories.
const (
	CategoryScienceFiction Category = "Science-Fiction"
	CategoryRomance        Category = "Romance"
	CategoryThriller       Category = "Thriller"
	CategoryFantasy        Category = "Fantasy"
	CategoryHistoire       Category = "Histoire"
	CategoryLitterature    Category = "Littérature Générale"
)

var knownCategories = []Category{
	CategoryScienceFiction,
	CategoryRomance,
	CategoryThriller,
	CategoryFantasy,
	CategoryHistoire,
	CategoryLitterature,
}

// KnownCategories returns the closed set of categories in display order.
func KnownCategories() []Category {
	out := make([]Category, len(knownCategories))
	copy(out, knownCategories)
	return out
}

// NormalizeCategory trims the label and converts it to NFC so that
// decomposed accents ("Littérature") compare equal to the canonical form.
func NormalizeCategory(label string) Category {
	return Category(norm.NFC.String(strings.TrimSpace(label)))
}

// IsKnown reports whether c belongs to the closed category set.
func (c Category) IsKnown() bool {
	for _, k := range knownCategories {
		if k == c {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
