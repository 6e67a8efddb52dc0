package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/biblio/internal/cli"
	"github.com/Veraticus/biblio/internal/common"
	"github.com/Veraticus/biblio/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify every book of a CSV file",
		Long: `Read title,description rows from a CSV file, classify each one and write
title,category,confidence,label,error rows to stdout or --out.

Rows that fail validation are reported without calling the service.
With --retries above 1, network failures are retried with backoff.`,
		RunE: runBatch,
	}

	cmd.Flags().StringP("file", "f", "", "CSV file to classify (required)")
	cmd.Flags().StringP("out", "o", "", "Output CSV file (default: stdout)")
	cmd.Flags().Int("retries", 1, "Attempts per row on network failure")
	cmd.Flags().Int("rate-limit", 0, "Maximum requests per minute (default: service.rate_limit, 0 for unlimited)")
	_ = viper.BindPFlag(config.KeyServiceRateLimit, cmd.Flags().Lookup("rate-limit"))
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runBatch(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	outPath, _ := cmd.Flags().GetString("out")
	retries, _ := cmd.Flags().GetInt("retries")

	if retries < 1 {
		return fmt.Errorf("%w: --retries must be at least 1", common.ErrInvalidConfig)
	}

	in, err := os.Open(filepath.Clean(file))
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	rows, err := cli.ReadBatchCSV(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cli.NewInterruptHandler(cmd.ErrOrStderr()).HandleInterrupts(cmd.Context(), "")

	slog.Info("Starting batch classification", "rows", len(rows), "retries", retries)
	results, runErr := cli.RunBatch(ctx, client, rows, cli.BatchOptions{
		Progress: cmd.ErrOrStderr(),
		Retry: common.RetryOptions{
			MaxAttempts:  retries,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2,
		},
	})
	if runErr != nil {
		slog.Warn("Batch stopped early, writing partial results", "done", len(results), "error", runErr)
	}

	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, createErr := os.Create(filepath.Clean(outPath))
		if createErr != nil {
			return fmt.Errorf("failed to create output: %w", createErr)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := cli.WriteBatchCSV(out, results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	classified, failed := cli.BatchSummary(results)
	slog.Info("Batch classification complete", "classified", classified, "failed", failed)
	if runErr != nil {
		return fmt.Errorf("batch classification interrupted: %w", runErr)
	}
	return nil
}
