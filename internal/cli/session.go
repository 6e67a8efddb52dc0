package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/biblio/internal/correction"
	"github.com/Veraticus/biblio/internal/model"
)

// ErrInputTerminated is returned when input ends before the loop resolves.
var ErrInputTerminated = errors.New("input terminated")

// CorrectionDriver is the part of the workflow controller a session drives.
type CorrectionDriver interface {
	Confirm(answer string) error
	SubmitCorrection(selection string) error
	Correction() (correction.Snapshot, bool)
}

// Session feeds typed lines to the open correction loop until it resolves.
type Session struct {
	reader  *NonBlockingReader
	writer  io.Writer
	options []model.Category
}

// NewSession reads answers from reader and writes prompts to writer.
func NewSession(reader *NonBlockingReader, writer io.Writer) *Session {
	return &Session{
		reader:  reader,
		writer:  writer,
		options: model.KnownCategories(),
	}
}

// Run loops until the driver has no open correction. Invalid answers and
// empty selections are re-asked without limit.
func (s *Session) Run(ctx context.Context, driver CorrectionDriver) error {
	for {
		snap, open := driver.Correction()
		if !open {
			return nil
		}

		if _, err := fmt.Fprint(s.writer, FormatPrompt(promptFor(snap.State))); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := s.reader.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return ErrInputTerminated
		}
		if err != nil {
			return err
		}

		switch snap.State {
		case correction.StateAwaitingConfirmation:
			err = driver.Confirm(line)
			if errors.Is(err, correction.ErrInvalidAnswer) {
				continue
			}
		case correction.StateAwaitingCorrection:
			err = driver.SubmitCorrection(s.resolveSelection(line))
			if errors.Is(err, correction.ErrEmptySelection) {
				continue
			}
		default:
			return fmt.Errorf("unexpected correction state %s", snap.State)
		}
		if err != nil {
			return err
		}
	}
}

// resolveSelection maps a selector number to its category; anything else is
// taken as a category name.
func (s *Session) resolveSelection(line string) string {
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(s.options) {
		return string(s.options[n-1])
	}
	return line
}

func promptFor(state correction.State) string {
	if state == correction.StateAwaitingCorrection {
		return "Catégorie"
	}
	return "Oui/Non"
}
