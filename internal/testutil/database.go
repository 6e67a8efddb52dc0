// Package testutil provides shared helpers for biblio tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/storage"
)

// SetupTestDB creates a migrated database in a temporary directory, seeded
// with the default catalog plus any extra books, and closes it on cleanup.
func SetupTestDB(t *testing.T, extra ...model.Book) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "biblio.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(extra) > 0 {
		if _, err := store.ImportBooks(ctx, extra); err != nil {
			t.Fatalf("failed to seed books: %v", err)
		}
	}

	return store
}
