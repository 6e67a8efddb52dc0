package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/biblio/internal/cli"
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent corrections",
		Long: `Show the most recent answers to "is this category correct?", with the
predicted and final category of each book, and the overall correction rate.`,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 for all)")
	cmd.Flags().Bool("predictions", false, "List raw predictions instead of corrections")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	predictions, _ := cmd.Flags().GetBool("predictions")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()

	if predictions {
		records, listErr := store.ListPredictions(ctx, limit)
		if listErr != nil {
			return fmt.Errorf("failed to list predictions: %w", listErr)
		}
		if len(records) == 0 {
			_, _ = fmt.Fprintln(out, "No predictions recorded.")
			return nil
		}

		_, _ = fmt.Fprintln(out, cli.FormatTitle("Prédictions récentes"))
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Date", "Catégorie", "Confiance", "Texte"})
		table.SetBorder(true)
		for _, r := range records {
			table.Append([]string{
				r.CreatedAt.Local().Format(time.DateTime),
				presenter.Icon(r.Category) + " " + string(r.Category),
				fmt.Sprintf("%.0f%% (%s)", r.Confidence*100, presenter.Confidence(r.Confidence).French()),
				truncate(r.Text, 40),
			})
		}
		table.Render()
		return nil
	}

	records, err := store.ListCorrections(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list corrections: %w", err)
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, "No corrections recorded.")
		return nil
	}

	_, _ = fmt.Fprintln(out, cli.FormatTitle("Corrections récentes"))
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Date", "Titre", "Prédite", "Retenue", "Confirmée"})
	table.SetBorder(true)
	table.SetRowLine(true)
	for _, r := range records {
		table.Append([]string{
			r.CreatedAt.Local().Format(time.DateTime),
			truncate(r.Title, 30),
			string(r.Predicted),
			string(r.Corrected),
			strconv.FormatBool(r.Confirmed),
		})
	}
	table.Render()

	corrected, total, err := store.CorrectionRate(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute correction rate: %w", err)
	}
	if total > 0 {
		_, _ = fmt.Fprintf(out, "%d/%d prédictions corrigées (%.0f%%)\n",
			corrected, total, float64(corrected)/float64(total)*100)
	}
	return nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
