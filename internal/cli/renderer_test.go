package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/Veraticus/biblio/internal/workflow"
)

func TestRenderer_ShowResult(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	r.ShowResult(workflow.ResultView{
		Result: presenter.Present(model.ClassificationResult{
			Category:        model.CategoryScienceFiction,
			ConfidenceScore: 0.87,
		}),
		Title:         "Dune",
		AnalyzedChars: 42,
	})

	got := out.String()
	for _, want := range []string{"Résultat de la classification", "Dune", "🚀", "Science-Fiction", "Élevée (87%)", "Caractères analysés : 42"} {
		assert.Contains(t, got, want)
	}
}

func TestFormatSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		view    presenter.Suggestions
		want    []string
		notWant []string
	}{
		{
			name: "catalog and placeholder entries",
			view: presenter.Suggestions{
				Category: model.CategoryFantasy,
				Icon:     "🐉",
				Books: []presenter.BookEntry{
					{Title: "Harry Potter", URL: "https://example.com/harry"},
					{Title: "Eragon", URL: presenter.PlaceholderLink},
				},
				MoreAvailable: true,
			},
			want:    []string{"🐉", "1. Harry Potter", "https://example.com/harry", "2. Eragon", "Voir plus"},
			notWant: []string{" #"},
		},
		{
			name:    "no books",
			view:    presenter.Suggestions{Category: model.CategoryRomance, Icon: "💕"},
			want:    []string{"Aucun livre suggéré."},
			notWant: []string{"Voir plus"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSuggestions(tt.view)
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, got, notWant)
			}
		})
	}
}

func TestRenderer_Prompts(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	r.AskConfirmation(model.CategoryRomance, false)
	r.ShowCorrectionSelector(model.KnownCategories())
	r.UpdateDisplayedCategory(model.CategoryHistoire)
	r.ShowHints(workflow.FieldDescription, []model.Category{model.CategoryFantasy})
	r.ShowError(workflow.KindPredict, "Oups")
	r.SetLoading(workflow.KindSuggest, true)
	r.SetLoading(workflow.KindSuggest, false)

	got := out.String()
	assert.Contains(t, got, `La catégorie "Romance" est-elle correcte ? (Oui/Non)`)
	assert.Contains(t, got, "[1] 🚀 Science-Fiction")
	assert.Contains(t, got, "[6] 📖 Littérature Générale")
	assert.Contains(t, got, "Catégorie : 📜 Histoire")
	assert.Contains(t, got, "Indices (description) : 🐉 Fantasy")
	assert.Contains(t, got, "✗ Oups")
	assert.Equal(t, 1, strings.Count(got, "Recherche de suggestions..."))
}
