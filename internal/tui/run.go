package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/biblio/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

// SessionConfig holds the collaborators of an interactive session.
type SessionConfig struct {
	Classifier workflow.Classifier
	Suggester  workflow.Suggester
	Catalog    workflow.Catalog
	Recorder   workflow.Recorder
	Workflow   workflow.Options
	Options    []Option
}

// RunSession runs the classification page until the user quits.
func RunSession(ctx context.Context, cfg SessionConfig) error {
	if cfg.Classifier == nil {
		return fmt.Errorf("classifier is required")
	}
	if cfg.Suggester == nil {
		return fmt.Errorf("suggester is required")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	renderer := NewRenderer()
	defer renderer.Stop()

	opts := cfg.Workflow
	opts.Classifier = cfg.Classifier
	opts.Suggester = cfg.Suggester
	opts.Catalog = cfg.Catalog
	opts.Recorder = cfg.Recorder
	opts.Renderer = renderer

	controller, err := workflow.NewController(opts)
	if err != nil {
		return fmt.Errorf("failed to create workflow: %w", err)
	}
	defer controller.Close()

	m := New(ctx, controller, cfg.Options...)
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if m.config.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	program := tea.NewProgram(m, programOpts...)
	renderer.Start(program.Send)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
