package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/biblio/internal/cli"
	"github.com/Veraticus/biblio/internal/config"
	"github.com/Veraticus/biblio/internal/storage"
	"github.com/Veraticus/biblio/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the category of a book",
		Long: `Send a title and description to the classification service, show the
predicted category and its confidence, then ask whether it is correct.
Answer "Oui" or "Non"; on "Non" pick the right category from the list.

At least a 5 character title or a 10 character description is required.`,
		RunE: runPredict,
	}

	cmd.Flags().StringP("title", "t", "", "Book title")
	cmd.Flags().StringP("description", "d", "", "Book description or summary")
	cmd.Flags().Bool("no-history", false, "Do not record the prediction and correction locally")

	return cmd
}

func runPredict(cmd *cobra.Command, _ []string) error {
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	out := cmd.OutOrStdout()
	interrupts := cli.NewInterruptHandler(out)
	ctx := interrupts.HandleInterrupts(cmd.Context(), "")

	controller, cleanup, err := newLineController(ctx, out, noHistory)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := controller.Predict(ctx, title, description); err != nil {
		return err
	}

	session := cli.NewSession(cli.NewNonBlockingReader(cmd.InOrStdin()), out)
	if err := session.Run(ctx, controller); err != nil {
		if interrupts.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("correction aborted: %w", err)
	}
	return nil
}

// newLineController wires a controller that renders as plain lines. Unless
// noHistory is set, the local database serves as catalog and recorder.
func newLineController(ctx context.Context, out io.Writer, noHistory bool) (*workflow.Controller, func(), error) {
	client, err := newClient()
	if err != nil {
		return nil, nil, err
	}

	opts, err := config.LoadWorkflowOptions(viper.GetViper())
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	opts.Classifier = client
	opts.Suggester = client
	opts.Renderer = cli.NewRenderer(out)

	var store *storage.SQLiteStorage
	if !noHistory {
		store, err = initStorage(ctx)
		if err != nil {
			slog.Warn("Local history disabled", "error", err)
			store = nil
		}
	}
	if store != nil {
		opts.Catalog = store
		opts.Recorder = store
	}

	controller, err := workflow.NewController(opts)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		client.Close()
		return nil, nil, err
	}

	cleanup := func() {
		controller.Close()
		client.Close()
		if store != nil {
			if closeErr := store.Close(); closeErr != nil {
				slog.Error("Failed to close database", "error", closeErr)
			}
		}
	}
	return controller, cleanup, nil
}
