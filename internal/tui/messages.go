package tui

import (
	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/Veraticus/biblio/internal/workflow"
)

// Renderer messages, one per workflow.Renderer call.
type loadingMsg struct {
	kind    workflow.RequestKind
	loading bool
}

type hideResultMsg struct {
	kind workflow.RequestKind
}

type resultMsg struct {
	view workflow.ResultView
}

type suggestionsMsg struct {
	view presenter.Suggestions
}

type errorMsg struct {
	message string
	kind    workflow.RequestKind
}

type revertErrorMsg struct {
	kind workflow.RequestKind
}

type focusInputMsg struct{}

type hintsMsg struct {
	hints []model.Category
	field workflow.Field
}

type hideHintsMsg struct {
	field workflow.Field
}

type askConfirmationMsg struct {
	category model.Category
	reprompt bool
}

type selectorMsg struct {
	options []model.Category
}

type hideCorrectionMsg struct{}

type displayedCategoryMsg struct {
	category model.Category
}

type noticeMsg struct {
	message string
}

// Async operation messages.
type requestDoneMsg struct {
	err  error
	kind workflow.RequestKind
}

type answerDoneMsg struct {
	err error
}
