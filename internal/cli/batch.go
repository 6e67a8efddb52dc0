package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/biblio/internal/common"
	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/Veraticus/biblio/internal/validation"
	"github.com/Veraticus/biblio/internal/workflow"
)

// BatchRow is one book to classify.
type BatchRow struct {
	Title       string
	Description string
	Line        int
}

// BatchResult is the outcome for one row. Err is set instead of Result when
// the row was rejected or the service failed.
type BatchResult struct {
	Err    error
	Result presenter.Result
	Row    BatchRow
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// Progress receives the progress bar; nil disables it.
	Progress io.Writer
	Retry    common.RetryOptions
}

// ReadBatchCSV reads title,description rows. A header row naming the columns
// (title/titre, description) is optional; without one the first two columns
// are used.
func ReadBatchCSV(r io.Reader) ([]BatchRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	titleCol, descCol := columnIndex(records[0])
	start := 1
	if titleCol < 0 && descCol < 0 {
		titleCol, descCol, start = 0, 1, 0
	}

	rows := make([]BatchRow, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		record := records[i]
		row := BatchRow{Line: i + 1}
		row.Title = field(record, titleCol)
		row.Description = field(record, descCol)
		if strings.TrimSpace(row.Title) == "" && strings.TrimSpace(row.Description) == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnIndex locates the title and description columns of a header row.
// A column the header does not name is -1.
func columnIndex(header []string) (titleCol, descCol int) {
	titleCol, descCol = -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "title", "titre":
			titleCol = i
		case "description":
			descCol = i
		}
	}
	return titleCol, descCol
}

func field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return record[col]
}

// RunBatch classifies rows one after another. Rows failing validation are
// reported without calling the service. A cancelled context stops the run
// and returns the results gathered so far with the context error.
func RunBatch(ctx context.Context, classifier workflow.Classifier, rows []BatchRow, opts BatchOptions) ([]BatchResult, error) {
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry.MaxAttempts = 1
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(rows),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Classification des livres...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				_, _ = fmt.Fprintln(opts.Progress)
			}),
		)
	}

	results := make([]BatchResult, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := BatchResult{Row: row}
		if err := validation.Validate(row.Title, row.Description); err != nil {
			result.Err = err
		} else {
			var classified model.ClassificationResult
			err := common.WithRetry(ctx, func() error {
				var classifyErr error
				classified, classifyErr = classifier.Classify(ctx, row.Title, row.Description)
				return classifyErr
			}, opts.Retry)
			if err != nil {
				result.Err = err
			} else {
				result.Result = presenter.Present(classified)
			}
		}

		if result.Err != nil {
			slog.Debug("Row not classified", "line", row.Line, "error", result.Err)
		}
		results = append(results, result)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	return results, nil
}

// WriteBatchCSV writes title,category,confidence,label,error rows.
func WriteBatchCSV(w io.Writer, results []BatchResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"title", "category", "confidence", "label", "error"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range results {
		record := []string{strings.TrimSpace(r.Row.Title), "", "", "", ""}
		if r.Err != nil {
			record[4] = batchErrorText(r.Err)
		} else {
			record[1] = string(r.Result.Category)
			record[2] = strconv.FormatFloat(r.Result.Score, 'f', 2, 64)
			record[3] = string(r.Result.Confidence)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.Row.Line, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// BatchSummary counts classified and failed rows.
func BatchSummary(results []BatchResult) (classified, failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			classified++
		}
	}
	return classified, failed
}

func batchErrorText(err error) string {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return common.UserMessage(err, err.Error())
}
