package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/biblio/internal/model"
)

// ErrMissingColumn is returned when a catalog CSV lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// Header aliases accepted for each book field. The French names are the ones
// the scraped catalog exports use.
var columnAliases = map[string][]string{
	"title":       {"titre", "title"},
	"category":    {"category", "categorie", "catégorie"},
	"image_url":   {"image_url", "image"},
	"url":         {"url", "link", "lien"},
	"price":       {"prix", "price"},
	"description": {"description"},
}

// ReadBooksCSV parses a catalog export. The header row names the columns;
// title is required, and category is required unless defaultCategory is set.
func ReadBooksCSV(r io.Reader, defaultCategory model.Category) ([]model.Book, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int)
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		for field, aliases := range columnAliases {
			for _, alias := range aliases {
				if name == alias {
					if _, seen := index[field]; !seen {
						index[field] = i
					}
				}
			}
		}
	}

	if _, ok := index["title"]; !ok {
		return nil, fmt.Errorf("%w: title", ErrMissingColumn)
	}
	if _, ok := index["category"]; !ok && defaultCategory == "" {
		return nil, fmt.Errorf("%w: category", ErrMissingColumn)
	}

	get := func(record []string, field string) string {
		i, ok := index[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var books []model.Book
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		title := get(record, "title")
		if title == "" {
			continue
		}
		category := model.NormalizeCategory(get(record, "category"))
		if category == "" {
			category = defaultCategory
		}
		if category == "" {
			return nil, fmt.Errorf("line %d: %w for %q", line, ErrInvalidBook, title)
		}

		books = append(books, model.Book{
			Title:       title,
			Category:    category,
			ImageURL:    get(record, "image_url"),
			URL:         get(record, "url"),
			Price:       get(record, "price"),
			Description: get(record, "description"),
		})
	}

	return books, nil
}
