package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/biblio/internal/common"
	"github.com/Veraticus/biblio/internal/config"
	"github.com/Veraticus/biblio/internal/predictor"
	"github.com/Veraticus/biblio/internal/storage"
	"github.com/spf13/viper"
)

// envKeyReplacer maps "service.base_url" to BIBLIO_SERVICE_BASE_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

func setupLogging(w io.Writer) error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(w, level, viper.GetString("logging.format"))
}

// initStorage opens the local database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath, err := config.DatabasePath(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newClient builds the classification service client from config.
func newClient() (*predictor.Client, error) {
	cfg, err := config.LoadServiceConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid service configuration: %w", err)
	}
	return predictor.NewClient(cfg)
}
