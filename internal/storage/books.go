package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/biblio/internal/model"
)

// BooksByCategory returns the catalog entries of one category.
func (s *SQLiteStorage) BooksByCategory(ctx context.Context, category model.Category) ([]model.Book, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(string(category), "category"); err != nil {
		return nil, err
	}

	if books, ok := s.getCachedBooks(category); ok {
		return books, nil
	}

	books, err := s.listBooksTx(ctx, s.db, category)
	if err != nil {
		return nil, err
	}

	s.cacheBooks(category, books)
	return books, nil
}

// ListBooks returns the catalog, optionally restricted to one category.
func (s *SQLiteStorage) ListBooks(ctx context.Context, category model.Category) ([]model.Book, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listBooksTx(ctx, s.db, category)
}

func (s *SQLiteStorage) listBooksTx(ctx context.Context, q queryable, category model.Category) ([]model.Book, error) {
	query := `
		SELECT title, category, image_url, url, price, description
		FROM books
	`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		var cat string
		if err := rows.Scan(&b.Title, &cat, &b.ImageURL, &b.URL, &b.Price, &b.Description); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		b.Category = model.Category(cat)
		books = append(books, b)
	}

	return books, rows.Err()
}

// ImportBooks inserts books, updating entries that already exist with the
// same title and category. It returns the number of rows written.
func (s *SQLiteStorage) ImportBooks(ctx context.Context, books []model.Book) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateBooks(books); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO books (title, category, image_url, url, price, description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(title, category) DO UPDATE SET
			image_url = excluded.image_url,
			url = excluded.url,
			price = excluded.price,
			description = excluded.description
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	written := 0
	for _, b := range books {
		category := model.NormalizeCategory(string(b.Category))
		if _, err := stmt.ExecContext(ctx, b.Title, string(category), b.ImageURL, b.URL, b.Price, b.Description); err != nil {
			return written, fmt.Errorf("failed to import %q: %w", b.Title, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	s.clearBookCache()
	return written, nil
}

// CountBooks returns the number of catalog entries.
func (s *SQLiteStorage) CountBooks(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) getCachedBooks(category model.Category) ([]model.Book, bool) {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()

	if time.Now().After(s.cacheExpiry) {
		return nil, false
	}
	books, ok := s.catalogCache[category]
	return books, ok
}

func (s *SQLiteStorage) cacheBooks(category model.Category, books []model.Book) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	if time.Now().After(s.cacheExpiry) {
		s.catalogCache = make(map[model.Category][]model.Book)
		s.cacheExpiry = time.Now().Add(catalogCacheTTL)
	}
	s.catalogCache[category] = books
}

func (s *SQLiteStorage) clearBookCache() {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	s.catalogCache = make(map[model.Category][]model.Book)
	s.cacheExpiry = time.Time{}
}
