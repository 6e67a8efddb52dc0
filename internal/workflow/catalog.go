package workflow

import (
	"context"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
)

// StaticCatalog serves books from memory.
type StaticCatalog []model.Book

// BooksByCategory returns the books filed under category.
func (s StaticCatalog) BooksByCategory(_ context.Context, category model.Category) ([]model.Book, error) {
	return presenter.FilterCatalog(s, category), nil
}
