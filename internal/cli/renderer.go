package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/Veraticus/biblio/internal/workflow"
)

// Renderer draws the classification workflow as line output.
type Renderer struct {
	writer io.Writer
}

// NewRenderer creates a renderer writing to writer (stdout if nil).
func NewRenderer(writer io.Writer) *Renderer {
	if writer == nil {
		writer = os.Stdout
	}
	return &Renderer{writer: writer}
}

func (r *Renderer) println(s string) {
	if _, err := fmt.Fprintln(r.writer, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

// SetLoading announces the start of a request.
func (r *Renderer) SetLoading(kind workflow.RequestKind, loading bool) {
	if !loading {
		return
	}
	if kind == workflow.KindSuggest {
		r.println(SubtleStyle.Render("Recherche de suggestions..."))
		return
	}
	r.println(SubtleStyle.Render("Analyse en cours..."))
}

// HideResult has nothing to erase in line mode.
func (r *Renderer) HideResult(workflow.RequestKind) {}

// ShowResult prints the prediction box.
func (r *Renderer) ShowResult(view workflow.ResultView) {
	r.println(RenderBox("Résultat de la classification", FormatResult(view)))
}

// FormatResult renders a prediction as plain lines.
func FormatResult(view workflow.ResultView) string {
	var b strings.Builder
	if view.Title != "" {
		fmt.Fprintf(&b, "Livre : %s\n", BoldStyle.Render(view.Title))
	}
	fmt.Fprintf(&b, "Catégorie : %s %s\n", view.Icon, BoldStyle.Render(string(view.Category)))
	fmt.Fprintf(&b, "Confiance : %s (%.0f%%)\n",
		ConfidenceStyle(view.Confidence).Render(view.Confidence.French()),
		view.Score*100)
	fmt.Fprintf(&b, "Caractères analysés : %d", view.AnalyzedChars)
	return b.String()
}

// ShowSuggestions prints the suggested books.
func (r *Renderer) ShowSuggestions(view presenter.Suggestions) {
	r.println(RenderBox("Suggestions de livres", FormatSuggestions(view)))
}

// FormatSuggestions renders suggestions as plain lines.
func FormatSuggestions(view presenter.Suggestions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Catégorie : %s %s", view.Icon, BoldStyle.Render(string(view.Category)))
	if len(view.Books) == 0 {
		b.WriteString("\n" + SubtleStyle.Render("Aucun livre suggéré."))
	}
	for i, book := range view.Books {
		fmt.Fprintf(&b, "\n%d. %s", i+1, book.Title)
		if book.URL != presenter.PlaceholderLink {
			fmt.Fprintf(&b, "\n   %s %s", LinkIcon, SubtleStyle.Render(book.URL))
		}
	}
	if view.MoreAvailable {
		b.WriteString("\n" + InfoStyle.Render("Voir plus de livres dans cette catégorie : biblio catalog list --category \""+string(view.Category)+"\""))
	}
	return b.String()
}

// ShowError prints an error message.
func (r *Renderer) ShowError(_ workflow.RequestKind, message string) {
	r.println(FormatError(message))
}

// RevertErrorStyle is a no-op: printed errors scroll away on their own.
func (r *Renderer) RevertErrorStyle(workflow.RequestKind) {}

// FocusInput is a no-op in line mode.
func (r *Renderer) FocusInput() {}

// ShowHints prints the live keyword hints.
func (r *Renderer) ShowHints(field workflow.Field, hints []model.Category) {
	names := make([]string, len(hints))
	for i, h := range hints {
		names[i] = presenter.Icon(h) + " " + string(h)
	}
	r.println(InfoStyle.Render(fmt.Sprintf("%s Indices (%s) : %s", HintIcon, field, strings.Join(names, ", "))))
}

// HideHints has nothing to erase in line mode.
func (r *Renderer) HideHints(workflow.Field) {}

// AskConfirmation prints the yes/no question.
func (r *Renderer) AskConfirmation(category model.Category, _ bool) {
	r.println(PromptStyle.Render(workflow.ConfirmationQuestion(category)))
}

// ShowCorrectionSelector lists the categories with their numbers.
func (r *Renderer) ShowCorrectionSelector(options []model.Category) {
	var b strings.Builder
	b.WriteString(FormatPrompt("Choisissez la bonne catégorie"))
	for i, c := range options {
		fmt.Fprintf(&b, "\n  [%d] %s %s", i+1, presenter.Icon(c), c)
	}
	r.println(b.String())
}

// HideCorrection has nothing to erase in line mode.
func (r *Renderer) HideCorrection() {}

// UpdateDisplayedCategory prints the category now shown for the book.
func (r *Renderer) UpdateDisplayedCategory(category model.Category) {
	r.println(fmt.Sprintf("Catégorie : %s %s", presenter.Icon(category), BoldStyle.Render(string(category))))
}

// Notify prints a notice.
func (r *Renderer) Notify(message string) {
	r.println(FormatInfo(message))
}

var _ workflow.Renderer = (*Renderer)(nil)
