package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/biblio/internal/config"
	"github.com/Veraticus/biblio/internal/tui"
	"github.com/Veraticus/biblio/internal/tui/themes"
	"github.com/Veraticus/biblio/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive classification page",
		Long: `Open a full screen page with two forms: category prediction (title and
description, with live keyword hints) and book suggestions.

Logs go to logging.file while the page is open, or nowhere if it is unset.`,
		RunE: runUI,
	}

	cmd.Flags().String("theme", "default", "Color theme (default, catppuccin-mocha)")
	cmd.Flags().String("log-file", "", "Write logs to this file while the page is open")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("logging.file", cmd.Flags().Lookup("log-file"))

	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	closeLog, err := redirectLogs(viper.GetString("logging.file"))
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	opts, err := config.LoadWorkflowOptions(viper.GetViper())
	if err != nil {
		return err
	}

	var (
		catalog  workflow.Catalog
		recorder workflow.Recorder
	)
	store, err := initStorage(ctx)
	if err != nil {
		slog.Warn("Local history disabled", "error", err)
	} else {
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Error("Failed to close database", "error", closeErr)
			}
		}()
		catalog = store
		recorder = store
	}

	return tui.RunSession(ctx, tui.SessionConfig{
		Classifier: client,
		Suggester:  client,
		Catalog:    catalog,
		Recorder:   recorder,
		Workflow:   opts,
		Options: []tui.Option{
			tui.WithTheme(themes.GetTheme(viper.GetString("ui.theme"))),
		},
	})
}

// redirectLogs points the logger at path, or discards logs when path is empty,
// so that nothing is written over the page.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		if err := setupLogging(io.Discard); err != nil {
			return nil, err
		}
		return func() {}, nil
	}

	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304 -- user-configured log path
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := setupLogging(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() {
		_ = setupLogging(os.Stderr)
		_ = f.Close()
	}, nil
}
