package presenter

import (
	"testing"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentSuggestions(t *testing.T) {
	fantasy := FilterCatalog(DefaultCatalog(), model.CategoryFantasy)
	require.Len(t, fantasy, 3)

	t.Run("known titles resolve against the catalog", func(t *testing.T) {
		got := PresentSuggestions(model.SuggestionResult{
			Category:       model.CategoryFantasy,
			SuggestedBooks: []string{"Harry Potter", "Eragon"},
		}, fantasy)

		assert.Equal(t, model.CategoryFantasy, got.Category)
		assert.Equal(t, "🐉", got.Icon)
		require.Len(t, got.Books, 2)
		assert.Equal(t, BookEntry{Title: "Harry Potter", ImageURL: PlaceholderImage, URL: "https://example.com/harry"}, got.Books[0])
		assert.Equal(t, BookEntry{Title: "Eragon", ImageURL: PlaceholderImage, URL: PlaceholderLink}, got.Books[1])
		assert.True(t, got.MoreAvailable)
	})

	t.Run("only three titles are shown", func(t *testing.T) {
		got := PresentSuggestions(model.SuggestionResult{
			Category:       model.CategoryFantasy,
			SuggestedBooks: []string{"Le Seigneur des Anneaux", "Harry Potter", "Le Trône de Fer", "Eragon", "Dune"},
		}, fantasy)

		require.Len(t, got.Books, MaxSuggestions)
		assert.Equal(t, "Le Trône de Fer", got.Books[2].Title)
		assert.False(t, got.MoreAvailable)
	})

	t.Run("larger catalog flags more", func(t *testing.T) {
		catalog := append(fantasy, model.Book{Title: "Eragon", Category: model.CategoryFantasy})
		got := PresentSuggestions(model.SuggestionResult{
			Category:       model.CategoryFantasy,
			SuggestedBooks: []string{"Le Seigneur des Anneaux", "Harry Potter", "Le Trône de Fer"},
		}, catalog)

		assert.True(t, got.MoreAvailable)
	})

	t.Run("unknown category has no catalog", func(t *testing.T) {
		got := PresentSuggestions(model.SuggestionResult{
			Category:       "Poésie",
			SuggestedBooks: []string{"Les Fleurs du mal"},
		}, nil)

		assert.Equal(t, FallbackIcon, got.Icon)
		require.Len(t, got.Books, 1)
		assert.Equal(t, PlaceholderLink, got.Books[0].URL)
		assert.False(t, got.MoreAvailable)
	})

	t.Run("empty suggestions", func(t *testing.T) {
		got := PresentSuggestions(model.SuggestionResult{Category: model.CategoryRomance, SuggestedBooks: []string{}}, nil)
		assert.Empty(t, got.Books)
		assert.NotNil(t, got.Books)
	})
}

func TestDefaultCatalog_CoversKnownCategories(t *testing.T) {
	catalog := DefaultCatalog()
	for _, c := range model.KnownCategories() {
		assert.Len(t, FilterCatalog(catalog, c), 3, c)
	}
}
