package main

import (
	"github.com/Veraticus/biblio/internal/cli"
	"github.com/spf13/cobra"
)

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest books from a description",
		Long: `Send a description to the suggestion service and list up to three
suggested books, with links from the local catalog when known.

The description must be at least 10 characters long.`,
		RunE: runSuggest,
	}

	cmd.Flags().StringP("description", "d", "", "What the book should be about")
	cmd.Flags().Bool("no-history", false, "Use the built-in catalog instead of the local database")

	return cmd
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	description, _ := cmd.Flags().GetString("description")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	out := cmd.OutOrStdout()
	ctx := cli.NewInterruptHandler(out).HandleInterrupts(cmd.Context(), "")

	controller, cleanup, err := newLineController(ctx, out, noHistory)
	if err != nil {
		return err
	}
	defer cleanup()

	return controller.Suggest(ctx, description)
}
