package storage

import (
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/biblio/internal/model"
)

func TestReadBooksCSV(t *testing.T) {
	input := "\ufefftitre,prix,description,image_url,catégorie,url\n" +
		"Le Hobbit,£12.50,\"Un hobbit, un dragon\",https://img/hobbit.jpg,Fantasy,https://example.com/hobbit\n" +
		",£1,untitled rows are skipped,,,\n" +
		"Emma,£8,,,  Romance ,\n"

	books, err := ReadBooksCSV(strings.NewReader(input), "")
	if err != nil {
		t.Fatalf("ReadBooksCSV() failed: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("ReadBooksCSV() returned %d books, want 2", len(books))
	}

	want := model.Book{
		Title:       "Le Hobbit",
		Category:    model.CategoryFantasy,
		ImageURL:    "https://img/hobbit.jpg",
		URL:         "https://example.com/hobbit",
		Price:       "£12.50",
		Description: "Un hobbit, un dragon",
	}
	if books[0] != want {
		t.Errorf("books[0] = %+v, want %+v", books[0], want)
	}
	if books[1].Category != model.CategoryRomance {
		t.Errorf("books[1].Category = %q", books[1].Category)
	}
}

func TestReadBooksCSV_DefaultCategory(t *testing.T) {
	input := "title,price\nDune,£9\n"

	books, err := ReadBooksCSV(strings.NewReader(input), model.CategoryScienceFiction)
	if err != nil {
		t.Fatalf("ReadBooksCSV() failed: %v", err)
	}
	if len(books) != 1 || books[0].Category != model.CategoryScienceFiction {
		t.Errorf("ReadBooksCSV() = %+v", books)
	}
}

func TestReadBooksCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"no title column", "prix,category\n£1,Romance\n", ErrMissingColumn},
		{"no category column", "title\nDune\n", ErrMissingColumn},
		{"blank category", "title,category\nDune,\n", ErrInvalidBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBooksCSV(strings.NewReader(tt.input), "")
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadBooksCSV() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ReadBooksCSV(strings.NewReader(""), ""); err == nil {
		t.Error("ReadBooksCSV(empty) expected an error")
	}
}
