package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/biblio/internal/config"
	"github.com/Veraticus/biblio/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has the catalog and history
tables, and seeds the catalog with the built-in books.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	dbPath, err := config.DatabasePath(viper.GetViper())
	if err != nil {
		return err
	}

	slog.Info("Starting database migration",
		"database", dbPath,
		"status_only", status)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()

	if status {
		current, versionErr := store.SchemaVersion(ctx)
		if versionErr != nil {
			return fmt.Errorf("failed to read schema version: %w", versionErr)
		}
		slog.Info("📊 Database Migration Status",
			"path", dbPath,
			"current", current,
			"latest", storage.ExpectedSchemaVersion,
			"up_to_date", current >= storage.ExpectedSchemaVersion)
		return nil
	}

	slog.Info("🗄️  Running database migrations...")
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	books, err := store.CountBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	slog.Info("✅ Database migrations completed successfully!", "books", books)

	return nil
}
