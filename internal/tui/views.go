package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/Veraticus/biblio/internal/workflow"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render(presenter.FallbackIcon + " Classification de livres"),
		m.renderTabs(),
		"",
	}

	if m.tab == TabSuggest {
		sections = append(sections, m.renderSuggestForm(), m.renderSuggestPanel())
	} else {
		sections = append(sections, m.renderPredictForm(), m.renderPredictPanel())
	}

	if dialog := m.renderDialog(); dialog != "" {
		sections = append(sections, dialog)
	}
	if m.notice != "" {
		sections = append(sections, m.theme.StatusInfo.Render(m.notice))
	}
	if m.config.ShowHelp {
		sections = append(sections, "", m.help.View(m.keymap))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	labels := []struct {
		text string
		tab  Tab
	}{
		{"Prédire la catégorie", TabPredict},
		{"Suggestions de livres", TabSuggest},
	}

	rendered := make([]string, 0, len(labels))
	for _, l := range labels {
		style := m.theme.Tab
		if l.tab == m.tab {
			style = m.theme.ActiveTab
		}
		rendered = append(rendered, style.Render(l.text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderPredictForm() string {
	var b strings.Builder
	b.WriteString(m.theme.Bold.Render("Titre") + "\n")
	b.WriteString(m.inputs[inputTitle].View() + "\n")
	b.WriteString(m.renderHints(workflow.FieldTitle))
	b.WriteString(m.theme.Bold.Render("Description") + "\n")
	b.WriteString(m.inputs[inputDescription].View() + "\n")
	b.WriteString(m.renderHints(workflow.FieldDescription))
	return b.String()
}

func (m Model) renderSuggestForm() string {
	var b strings.Builder
	b.WriteString(m.theme.Bold.Render("Description") + "\n")
	b.WriteString(m.inputs[inputSuggest].View() + "\n")
	return b.String()
}

func (m Model) renderHints(field workflow.Field) string {
	hints := m.hints[field]
	if len(hints) == 0 {
		return ""
	}
	parts := make([]string, 0, len(hints))
	for _, c := range hints {
		parts = append(parts, presenter.Icon(c)+" "+string(c))
	}
	return m.theme.Italic.Render("💡 Indices : "+strings.Join(parts, ", ")) + "\n"
}

func (m Model) renderPredictPanel() string {
	p := m.panels[workflow.KindPredict]
	switch {
	case p.loading:
		return m.theme.RoundedBox.Render(m.spinner.View() + " Analyse en cours...")
	case p.err != "":
		return m.renderError(p)
	case m.result != nil:
		return m.theme.RoundedBox.Render(m.renderResult(*m.result))
	}
	return ""
}

func (m Model) renderSuggestPanel() string {
	p := m.panels[workflow.KindSuggest]
	switch {
	case p.loading:
		return m.theme.RoundedBox.Render(m.spinner.View() + " Recherche de suggestions...")
	case p.err != "":
		return m.renderError(p)
	case m.suggestions != nil:
		return m.theme.RoundedBox.Render(m.renderSuggestions(*m.suggestions))
	}
	return ""
}

func (m Model) renderError(p panel) string {
	if p.errActive {
		return m.theme.ErrorBox.Render(p.err)
	}
	return m.theme.RoundedBox.Render(p.err)
}

func (m Model) renderResult(view workflow.ResultView) string {
	lines := []string{m.theme.Bold.Render("Résultat de la classification")}
	if view.Title != "" {
		lines = append(lines, "Livre : "+view.Title)
	}
	lines = append(lines,
		fmt.Sprintf("Catégorie : %s %s", view.Icon, m.theme.Bold.Render(string(view.Category))),
		fmt.Sprintf("Confiance : %s (%.0f%%)",
			m.theme.ConfidenceStyle(view.Confidence).Render(view.Confidence.French()),
			view.Score*100),
		fmt.Sprintf("Caractères analysés : %d", view.AnalyzedChars),
	)
	return strings.Join(lines, "\n")
}

func (m Model) renderSuggestions(view presenter.Suggestions) string {
	lines := []string{
		m.theme.Bold.Render("Suggestions de livres"),
		fmt.Sprintf("Catégorie : %s %s", view.Icon, m.theme.Bold.Render(string(view.Category))),
	}
	if len(view.Books) == 0 {
		lines = append(lines, m.theme.Italic.Render("Aucun livre suggéré."))
	}
	for i, book := range view.Books {
		line := fmt.Sprintf("%d. %s", i+1, book.Title)
		if book.URL != presenter.PlaceholderLink {
			line += m.theme.Italic.Render("  " + book.URL)
		}
		lines = append(lines, line)
	}
	if view.MoreAvailable {
		lines = append(lines, m.theme.StatusInfo.Render("Voir plus..."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDialog() string {
	switch m.mode {
	case ModeConfirming:
		question := workflow.ConfirmationQuestion(m.question)
		if m.reprompt {
			question = m.theme.StatusWarning.Render(question)
		}
		return m.theme.RoundedBox.Render(question)

	case ModeSelecting:
		return m.theme.RoundedBox.Render(m.renderSelector(m.options))
	}
	return ""
}

func (m Model) renderSelector(options []model.Category) string {
	lines := []string{m.theme.Bold.Render("Choisissez la bonne catégorie :")}
	for i, c := range options {
		line := fmt.Sprintf("%d. %s %s", i+1, presenter.Icon(c), c)
		if i == m.cursor {
			line = m.theme.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
