package tui

import (
	"sync"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/Veraticus/biblio/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

// Renderer forwards workflow rendering calls to a Bubble Tea program as
// messages. Calls never block: messages are queued in order and delivered
// by a single goroutine once Start is called.
type Renderer struct {
	send    func(tea.Msg)
	wake    chan struct{}
	done    chan struct{}
	pending []tea.Msg
	mu      sync.Mutex
	once    sync.Once
}

// NewRenderer creates a renderer. Messages queue until Start.
func NewRenderer() *Renderer {
	return &Renderer{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Start begins delivering queued messages to send, usually tea.Program.Send.
func (r *Renderer) Start(send func(tea.Msg)) {
	r.mu.Lock()
	if r.send != nil {
		r.mu.Unlock()
		return
	}
	r.send = send
	r.mu.Unlock()

	go r.pump()
	r.signal()
}

// Stop ends delivery. Messages posted afterwards are dropped.
func (r *Renderer) Stop() {
	r.once.Do(func() { close(r.done) })
}

func (r *Renderer) post(msg tea.Msg) {
	select {
	case <-r.done:
		return
	default:
	}

	r.mu.Lock()
	r.pending = append(r.pending, msg)
	r.mu.Unlock()
	r.signal()
}

func (r *Renderer) signal() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Renderer) pump() {
	for {
		select {
		case <-r.done:
			return
		case <-r.wake:
		}

		r.mu.Lock()
		batch := r.pending
		r.pending = nil
		send := r.send
		r.mu.Unlock()

		for _, msg := range batch {
			select {
			case <-r.done:
				return
			default:
			}
			send(msg)
		}
	}
}

// SetLoading toggles the spinner of a request kind.
func (r *Renderer) SetLoading(kind workflow.RequestKind, loading bool) {
	r.post(loadingMsg{kind: kind, loading: loading})
}

// HideResult clears the result panel of a request kind.
func (r *Renderer) HideResult(kind workflow.RequestKind) {
	r.post(hideResultMsg{kind: kind})
}

// ShowResult displays a prediction.
func (r *Renderer) ShowResult(view workflow.ResultView) {
	r.post(resultMsg{view: view})
}

// ShowSuggestions displays suggested books.
func (r *Renderer) ShowSuggestions(view presenter.Suggestions) {
	r.post(suggestionsMsg{view: view})
}

// ShowError displays an error in the panel of a request kind.
func (r *Renderer) ShowError(kind workflow.RequestKind, message string) {
	r.post(errorMsg{kind: kind, message: message})
}

// RevertErrorStyle drops the error highlight of a request kind.
func (r *Renderer) RevertErrorStyle(kind workflow.RequestKind) {
	r.post(revertErrorMsg{kind: kind})
}

// FocusInput moves focus back to the first input.
func (r *Renderer) FocusInput() {
	r.post(focusInputMsg{})
}

// ShowHints displays keyword hints under a field.
func (r *Renderer) ShowHints(field workflow.Field, hints []model.Category) {
	r.post(hintsMsg{field: field, hints: append([]model.Category(nil), hints...)})
}

// HideHints clears the hints of a field.
func (r *Renderer) HideHints(field workflow.Field) {
	r.post(hideHintsMsg{field: field})
}

// AskConfirmation opens the yes/no dialog.
func (r *Renderer) AskConfirmation(category model.Category, reprompt bool) {
	r.post(askConfirmationMsg{category: category, reprompt: reprompt})
}

// ShowCorrectionSelector opens the category selector.
func (r *Renderer) ShowCorrectionSelector(options []model.Category) {
	r.post(selectorMsg{options: append([]model.Category(nil), options...)})
}

// HideCorrection closes any open correction dialog.
func (r *Renderer) HideCorrection() {
	r.post(hideCorrectionMsg{})
}

// UpdateDisplayedCategory replaces the category shown in the result panel.
func (r *Renderer) UpdateDisplayedCategory(category model.Category) {
	r.post(displayedCategoryMsg{category: category})
}

// Notify shows a transient notice.
func (r *Renderer) Notify(message string) {
	r.post(noticeMsg{message: message})
}

var _ workflow.Renderer = (*Renderer)(nil)
