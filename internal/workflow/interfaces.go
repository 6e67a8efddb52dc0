package workflow

import (
	"context"
	"time"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
)

// Classifier predicts a book category.
type Classifier interface {
	Classify(ctx context.Context, title, description string) (model.ClassificationResult, error)
}

// Suggester suggests books from a description.
type Suggester interface {
	Suggest(ctx context.Context, description string) (model.SuggestionResult, error)
}

// Catalog resolves suggested titles to display entries.
type Catalog interface {
	BooksByCategory(ctx context.Context, category model.Category) ([]model.Book, error)
}

// Recorder keeps a local log of predictions and corrections.
type Recorder interface {
	SavePrediction(ctx context.Context, record *model.PredictionRecord) error
	SaveCorrection(ctx context.Context, record *model.CorrectionRecord) error
}

// RequestKind distinguishes the two remote calls.
type RequestKind int

// Request kinds.
const (
	KindPredict RequestKind = iota
	KindSuggest
)

func (k RequestKind) String() string {
	if k == KindSuggest {
		return "suggest"
	}
	return "predict"
}

// Field identifies a text input that produces live hints.
type Field int

// Input fields.
const (
	FieldTitle Field = iota
	FieldDescription
)

func (f Field) String() string {
	if f == FieldDescription {
		return "description"
	}
	return "title"
}

// ResultView is a prediction ready for display.
type ResultView struct {
	presenter.Result
	Title         string
	AnalyzedChars int
}

// Renderer draws the workflow. The controller calls it while holding its
// lock, so implementations must not call back into the Controller.
type Renderer interface {
	SetLoading(kind RequestKind, loading bool)
	HideResult(kind RequestKind)
	ShowResult(view ResultView)
	ShowSuggestions(view presenter.Suggestions)
	ShowError(kind RequestKind, message string)
	RevertErrorStyle(kind RequestKind)
	FocusInput()
	ShowHints(field Field, hints []model.Category)
	HideHints(field Field)
	AskConfirmation(category model.Category, reprompt bool)
	ShowCorrectionSelector(options []model.Category)
	HideCorrection()
	UpdateDisplayedCategory(category model.Category)
	Notify(message string)
}

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock {
	return realClock{}
}
