// Package workflow sequences validation, the remote classification service,
// presentation and the correction loop behind a single Controller.
package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Veraticus/biblio/internal/common"
	"github.com/Veraticus/biblio/internal/correction"
	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/Veraticus/biblio/internal/validation"
)

// Default timings.
const (
	DefaultDebounceDelay    = 300 * time.Millisecond
	DefaultErrorRevertDelay = 5 * time.Second
)

// ErrNoCorrection is returned when an answer or selection arrives with no
// correction loop open.
var ErrNoCorrection = errors.New("no prediction awaiting confirmation")

// Options configures a Controller. Start from DefaultOptions: the zero value
// of DiscardStale keeps the last-resolved-wins behavior.
type Options struct {
	Classifier       Classifier
	Suggester        Suggester
	Renderer         Renderer
	Catalog          Catalog
	Recorder         Recorder
	Clock            Clock
	DebounceDelay    time.Duration
	ErrorRevertDelay time.Duration
	DiscardStale     bool
}

// DefaultOptions returns options with the default timings and stale
// responses discarded.
func DefaultOptions() Options {
	return Options{
		Clock:            RealClock(),
		DebounceDelay:    DefaultDebounceDelay,
		ErrorRevertDelay: DefaultErrorRevertDelay,
		DiscardStale:     true,
	}
}

// Controller drives one classification page.
type Controller struct {
	classifier Classifier
	suggester  Suggester
	renderer   Renderer
	catalog    Catalog
	recorder   Recorder
	clock      Clock

	loop     *correction.Loop
	tokens   map[RequestKind]uint64
	debounce map[Field]Timer
	hintGen  map[Field]uint64
	pending  model.ClassificationRequest

	debounceDelay    time.Duration
	errorRevertDelay time.Duration

	mu           sync.Mutex
	discardStale bool
	closed       bool
}

// NewController validates the options and builds a Controller.
func NewController(opts Options) (*Controller, error) {
	if opts.Classifier == nil {
		return nil, errors.New("workflow: classifier is required")
	}
	if opts.Suggester == nil {
		return nil, errors.New("workflow: suggester is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("workflow: renderer is required")
	}
	if opts.Catalog == nil {
		opts.Catalog = StaticCatalog(presenter.DefaultCatalog())
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = DefaultDebounceDelay
	}
	if opts.ErrorRevertDelay <= 0 {
		opts.ErrorRevertDelay = DefaultErrorRevertDelay
	}

	return &Controller{
		classifier:       opts.Classifier,
		suggester:        opts.Suggester,
		renderer:         opts.Renderer,
		catalog:          opts.Catalog,
		recorder:         opts.Recorder,
		clock:            opts.Clock,
		tokens:           make(map[RequestKind]uint64),
		debounce:         make(map[Field]Timer),
		hintGen:          make(map[Field]uint64),
		debounceDelay:    opts.DebounceDelay,
		errorRevertDelay: opts.ErrorRevertDelay,
		discardStale:     opts.DiscardStale,
	}, nil
}

// Predict validates the input, asks the service for a category and opens a
// correction loop on success. A response superseded by a newer Predict is
// dropped and reported as common.ErrStaleResponse when stale responses are
// discarded.
func (c *Controller) Predict(ctx context.Context, title, description string) error {
	if err := validation.Validate(title, description); err != nil {
		c.mu.Lock()
		c.showErrorLocked(KindPredict, err.Error())
		c.renderer.FocusInput()
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	token := c.beginLocked(KindPredict)
	c.renderer.HideResult(KindPredict)
	c.mu.Unlock()

	slog.Debug("Requesting prediction", "token", token, "title", title)
	result, err := c.classifier.Classify(ctx, title, description)

	c.mu.Lock()
	if c.staleLocked(KindPredict, token) {
		c.mu.Unlock()
		slog.Debug("Dropping superseded prediction", "token", token)
		return common.ErrStaleResponse
	}
	err = c.finishPredictLocked(title, description, result, err)
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.recordPrediction(ctx, title, description, result)
	return nil
}

// finishPredictLocked renders the outcome of a current prediction and opens
// its correction loop.
func (c *Controller) finishPredictLocked(title, description string, result model.ClassificationResult, err error) error {
	defer c.renderer.SetLoading(KindPredict, false)

	if err != nil {
		common.LogError(err, "prediction failed", common.Fields{"title": title})
		c.showErrorLocked(KindPredict, msgServiceFailure)
		return common.NewUserError(msgServiceFailure, err)
	}

	c.renderer.ShowResult(ResultView{
		Result:        presenter.Present(result),
		Title:         strings.TrimSpace(title),
		AnalyzedChars: utf8.RuneCountInString(strings.TrimSpace(description)),
	})

	c.loop = correction.New(result.Category)
	if err := c.loop.Prompt(); err != nil {
		return err
	}
	c.pending = model.ClassificationRequest{Title: title, Description: description}
	c.renderer.AskConfirmation(result.Category, false)
	return nil
}

// Suggest validates the description and renders the suggested books.
func (c *Controller) Suggest(ctx context.Context, description string) error {
	if err := validation.ValidateDescription(description); err != nil {
		c.mu.Lock()
		c.showErrorLocked(KindSuggest, err.Error())
		c.renderer.FocusInput()
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	token := c.beginLocked(KindSuggest)
	c.renderer.HideResult(KindSuggest)
	c.mu.Unlock()

	slog.Debug("Requesting suggestions", "token", token)
	result, err := c.suggester.Suggest(ctx, description)
	var books []model.Book
	if err == nil {
		var catErr error
		books, catErr = c.catalog.BooksByCategory(ctx, model.NormalizeCategory(string(result.Category)))
		if catErr != nil {
			slog.Warn("Catalog lookup failed, using placeholders",
				"category", result.Category, "error", catErr)
			books = nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.staleLocked(KindSuggest, token) {
		slog.Debug("Dropping superseded suggestions", "token", token)
		return common.ErrStaleResponse
	}
	defer c.renderer.SetLoading(KindSuggest, false)

	if err != nil {
		common.LogError(err, "suggestion failed", nil)
		c.showErrorLocked(KindSuggest, msgServiceFailure)
		return common.NewUserError(msgServiceFailure, err)
	}

	c.renderer.ShowSuggestions(presenter.PresentSuggestions(result, books))
	return nil
}

// Confirm feeds a yes/no answer to the open correction loop.
func (c *Controller) Confirm(answer string) error {
	c.mu.Lock()
	if c.loop == nil {
		c.mu.Unlock()
		return ErrNoCorrection
	}

	state, err := c.loop.Answer(answer)
	if errors.Is(err, correction.ErrInvalidAnswer) {
		c.renderer.Notify(msgAnswerYesNo)
		c.renderer.AskConfirmation(c.loop.Predicted(), true)
		c.mu.Unlock()
		return err
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}

	if state != correction.StateResolved {
		c.renderer.ShowCorrectionSelector(model.KnownCategories())
		c.mu.Unlock()
		return nil
	}

	c.renderer.HideCorrection()
	record := c.finishLocked()
	c.mu.Unlock()

	c.recordCorrection(record)
	return nil
}

// SubmitCorrection applies the category picked in the selector.
func (c *Controller) SubmitCorrection(selection string) error {
	c.mu.Lock()
	if c.loop == nil {
		c.mu.Unlock()
		return ErrNoCorrection
	}

	displayed, err := c.loop.Submit(selection)
	if errors.Is(err, correction.ErrEmptySelection) {
		c.renderer.Notify(msgChooseCategory)
		c.mu.Unlock()
		return err
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}

	c.renderer.UpdateDisplayedCategory(displayed)
	c.renderer.Notify(correctionThanks(displayed))
	c.renderer.HideCorrection()
	record := c.finishLocked()
	c.mu.Unlock()

	c.recordCorrection(record)
	return nil
}

// InputChanged schedules a hint refresh for field. A later call for the same
// field replaces the pending refresh.
func (c *Controller) InputChanged(field Field, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if t := c.debounce[field]; t != nil {
		t.Stop()
	}
	c.hintGen[field]++
	gen := c.hintGen[field]
	c.debounce[field] = c.clock.AfterFunc(c.debounceDelay, func() {
		c.refreshHints(field, gen, text)
	})
}

func (c *Controller) refreshHints(field Field, gen uint64, text string) {
	hints := presenter.KeywordHints(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.hintGen[field] != gen {
		return
	}
	delete(c.debounce, field)
	if len(hints) == 0 {
		c.renderer.HideHints(field)
		return
	}
	c.renderer.ShowHints(field, hints)
}

// Correction returns the open loop's state.
func (c *Controller) Correction() (correction.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loop == nil {
		return correction.Snapshot{}, false
	}
	return c.loop.Snapshot(), true
}

// Close stops pending hint refreshes. Error-revert timers still fire.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for field, t := range c.debounce {
		t.Stop()
		delete(c.debounce, field)
	}
}

func (c *Controller) beginLocked(kind RequestKind) uint64 {
	c.tokens[kind]++
	c.renderer.SetLoading(kind, true)
	return c.tokens[kind]
}

func (c *Controller) staleLocked(kind RequestKind, token uint64) bool {
	return c.discardStale && c.tokens[kind] != token
}

func (c *Controller) showErrorLocked(kind RequestKind, message string) {
	c.renderer.ShowError(kind, message)
	c.clock.AfterFunc(c.errorRevertDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.renderer.RevertErrorStyle(kind)
	})
}

func (c *Controller) finishLocked() *model.CorrectionRecord {
	snap := c.loop.Snapshot()
	c.loop = nil

	return &model.CorrectionRecord{
		Title:       c.pending.Title,
		Description: c.pending.Description,
		Predicted:   snap.Predicted,
		Corrected:   snap.Displayed,
		Confirmed:   snap.Confirmation == correction.ConfirmationYes,
		CreatedAt:   time.Now(),
	}
}

func (c *Controller) recordPrediction(ctx context.Context, title, description string, result model.ClassificationResult) {
	if c.recorder == nil {
		return
	}
	record := &model.PredictionRecord{
		Text:       strings.TrimSpace(title + " " + description),
		Category:   result.Category,
		Confidence: result.ConfidenceScore,
		CreatedAt:  time.Now(),
	}
	if err := c.recorder.SavePrediction(ctx, record); err != nil {
		slog.Warn("Failed to record prediction", "error", err)
	}
}

func (c *Controller) recordCorrection(record *model.CorrectionRecord) {
	if c.recorder == nil || record == nil {
		return
	}
	if err := c.recorder.SaveCorrection(context.Background(), record); err != nil {
		slog.Warn("Failed to record correction", "error", err)
	}
}
