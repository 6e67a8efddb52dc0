package presenter

import "github.com/Veraticus/biblio/internal/model"

// MaxSuggestions is how many suggested titles are displayed.
const MaxSuggestions = 3

// Placeholders used when a suggested title is not in the catalog.
const (
	PlaceholderImage = "https://via.placeholder.com/150"
	PlaceholderLink  = "#"
)

// BookEntry is one displayed suggestion.
type BookEntry struct {
	Title    string
	ImageURL string
	URL      string
}

// Suggestions is a suggestion result ready for display.
type Suggestions struct {
	Category      model.Category
	Icon          string
	Books         []BookEntry
	MoreAvailable bool
}

// PresentSuggestions keeps the first MaxSuggestions titles and resolves them
// against catalog, the known books of the suggested category. MoreAvailable is
// set when catalog holds more books than were shown.
func PresentSuggestions(result model.SuggestionResult, catalog []model.Book) Suggestions {
	limit := min(MaxSuggestions, len(result.SuggestedBooks))

	byTitle := make(map[string]model.Book, len(catalog))
	for _, b := range catalog {
		if _, seen := byTitle[b.Title]; !seen {
			byTitle[b.Title] = b
		}
	}

	books := make([]BookEntry, 0, limit)
	for _, title := range result.SuggestedBooks[:limit] {
		entry := BookEntry{Title: title, ImageURL: PlaceholderImage, URL: PlaceholderLink}
		if b, ok := byTitle[title]; ok {
			if b.ImageURL != "" {
				entry.ImageURL = b.ImageURL
			}
			if b.URL != "" {
				entry.URL = b.URL
			}
		}
		books = append(books, entry)
	}

	return Suggestions{
		Category:      result.Category,
		Icon:          Icon(result.Category),
		Books:         books,
		MoreAvailable: limit < len(catalog),
	}
}
