package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	if !errors.Is(err, ErrEmptyString) {
		t.Errorf("NewSQLiteStorage() error = %v, want %v", err, ErrEmptyString)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() failed: %v", err)
	}

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("SchemaVersion() = %d, want %d", version, ExpectedSchemaVersion)
	}

	count, err := store.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks() failed: %v", err)
	}
	if want := len(presenter.DefaultCatalog()); count != want {
		t.Errorf("CountBooks() = %d, want %d (seed must not duplicate)", count, want)
	}
}

func TestMigrate_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}

	books, err := store.BooksByCategory(context.Background(), model.CategoryFantasy)
	if err != nil {
		t.Fatalf("BooksByCategory() failed: %v", err)
	}
	if len(books) != 3 {
		t.Errorf("BooksByCategory() returned %d books, want 3", len(books))
	}
}

func TestBooksByCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	books, err := store.BooksByCategory(ctx, model.CategoryHistoire)
	if err != nil {
		t.Fatalf("BooksByCategory() failed: %v", err)
	}

	want := presenter.FilterCatalog(presenter.DefaultCatalog(), model.CategoryHistoire)
	if len(books) != len(want) {
		t.Fatalf("got %d books, want %d", len(books), len(want))
	}
	for i := range want {
		if books[i].Title != want[i].Title || books[i].URL != want[i].URL {
			t.Errorf("book %d = %+v, want %+v", i, books[i], want[i])
		}
	}

	if _, err := store.BooksByCategory(ctx, ""); !errors.Is(err, ErrEmptyString) {
		t.Errorf("empty category error = %v, want %v", err, ErrEmptyString)
	}

	none, err := store.BooksByCategory(ctx, "Poésie")
	if err != nil {
		t.Fatalf("BooksByCategory(unknown) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown category returned %d books", len(none))
	}
}

func TestImportBooks(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Prime the cache so the import has to invalidate it.
	if _, err := store.BooksByCategory(ctx, model.CategoryFantasy); err != nil {
		t.Fatalf("BooksByCategory() failed: %v", err)
	}

	books := []model.Book{
		{Title: "Le Hobbit", Category: model.CategoryFantasy, Price: "£12.50"},
		{Title: "Harry Potter", Category: model.CategoryFantasy, URL: "https://example.com/hp2"},
	}
	written, err := store.ImportBooks(ctx, books)
	if err != nil {
		t.Fatalf("ImportBooks() failed: %v", err)
	}
	if written != 2 {
		t.Errorf("ImportBooks() wrote %d, want 2", written)
	}

	fantasy, err := store.BooksByCategory(ctx, model.CategoryFantasy)
	if err != nil {
		t.Fatalf("BooksByCategory() failed: %v", err)
	}
	if len(fantasy) != 4 {
		t.Fatalf("got %d fantasy books, want 4", len(fantasy))
	}
	for _, b := range fantasy {
		if b.Title == "Harry Potter" && b.URL != "https://example.com/hp2" {
			t.Errorf("existing book not updated: %+v", b)
		}
	}

	tests := []struct {
		name  string
		books []model.Book
		want  error
	}{
		{"nil", nil, ErrNilParameter},
		{"empty", []model.Book{}, ErrEmptySlice},
		{"no title", []model.Book{{Category: model.CategoryRomance}}, ErrInvalidBook},
		{"no category", []model.Book{{Title: "Emma"}}, ErrInvalidBook},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.ImportBooks(ctx, tt.books); !errors.Is(err, tt.want) {
				t.Errorf("ImportBooks() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListBooks(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	all, err := store.ListBooks(ctx, "")
	if err != nil {
		t.Fatalf("ListBooks() failed: %v", err)
	}
	if len(all) != len(presenter.DefaultCatalog()) {
		t.Errorf("ListBooks() returned %d, want %d", len(all), len(presenter.DefaultCatalog()))
	}
	if all[0].Title != "Dune" {
		t.Errorf("first book = %q, want insertion order", all[0].Title)
	}
}

func TestSaveAndListCorrections(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []*model.CorrectionRecord{
		{Title: "Emma", Predicted: model.CategoryRomance, Corrected: model.CategoryRomance, Confirmed: true, CreatedAt: base},
		{Title: "Sapiens", Predicted: model.CategoryThriller, Corrected: model.CategoryHistoire, CreatedAt: base.Add(time.Hour)},
		{Title: "Dune", Predicted: model.CategoryFantasy, Corrected: model.CategoryScienceFiction, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range records {
		if err := store.SaveCorrection(ctx, r); err != nil {
			t.Fatalf("SaveCorrection() failed: %v", err)
		}
		if r.ID == "" {
			t.Error("SaveCorrection() did not assign an ID")
		}
	}

	got, err := store.ListCorrections(ctx, 2)
	if err != nil {
		t.Fatalf("ListCorrections() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListCorrections(2) returned %d", len(got))
	}
	if got[0].Title != "Dune" || got[1].Title != "Sapiens" {
		t.Errorf("ListCorrections() order = %q, %q", got[0].Title, got[1].Title)
	}
	if got[1].Corrected != model.CategoryHistoire || got[1].Confirmed {
		t.Errorf("ListCorrections() record = %+v", got[1])
	}

	all, err := store.ListCorrections(ctx, 0)
	if err != nil {
		t.Fatalf("ListCorrections(0) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListCorrections(0) returned %d, want 3", len(all))
	}

	corrected, total, err := store.CorrectionRate(ctx)
	if err != nil {
		t.Fatalf("CorrectionRate() failed: %v", err)
	}
	if corrected != 2 || total != 3 {
		t.Errorf("CorrectionRate() = %d/%d, want 2/3", corrected, total)
	}

	if err := store.SaveCorrection(ctx, &model.CorrectionRecord{Predicted: model.CategoryRomance}); !errors.Is(err, ErrInvalidCorrection) {
		t.Errorf("SaveCorrection(no corrected) error = %v", err)
	}
	if err := store.SaveCorrection(ctx, nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("SaveCorrection(nil) error = %v", err)
	}
}

func TestSaveAndListPredictions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	record := &model.PredictionRecord{Text: "Dune Une épopée dans le désert.", Category: model.CategoryScienceFiction, Confidence: 0.87}
	if err := store.SavePrediction(ctx, record); err != nil {
		t.Fatalf("SavePrediction() failed: %v", err)
	}
	if record.ID == "" || record.CreatedAt.IsZero() {
		t.Errorf("SavePrediction() did not fill defaults: %+v", record)
	}

	got, err := store.ListPredictions(ctx, 10)
	if err != nil {
		t.Fatalf("ListPredictions() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListPredictions() returned %d", len(got))
	}
	if got[0].ID != record.ID || got[0].Category != model.CategoryScienceFiction || got[0].Confidence != 0.87 {
		t.Errorf("ListPredictions()[0] = %+v", got[0])
	}

	if err := store.SavePrediction(ctx, &model.PredictionRecord{Category: model.CategoryRomance}); !errors.Is(err, ErrInvalidPrediction) {
		t.Errorf("SavePrediction(no text) error = %v", err)
	}
}
