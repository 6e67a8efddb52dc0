// Package tui is the interactive classification page built on Bubble Tea.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/biblio/internal/common"
	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/Veraticus/biblio/internal/tui/themes"
	"github.com/Veraticus/biblio/internal/workflow"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Driver is the workflow the page drives. *workflow.Controller implements it.
type Driver interface {
	Predict(ctx context.Context, title, description string) error
	Suggest(ctx context.Context, description string) error
	Confirm(answer string) error
	SubmitCorrection(selection string) error
	InputChanged(field workflow.Field, text string)
}

// Tab is one of the two forms of the page.
type Tab int

const (
	TabPredict Tab = iota
	TabSuggest
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeEditing Mode = iota
	ModeConfirming
	ModeSelecting
)

// Text inputs, in focus order.
const (
	inputTitle = iota
	inputDescription
	inputSuggest
	inputCount
)

// panel is the result area of one request kind.
type panel struct {
	err       string
	errActive bool
	loading   bool
}

// Model holds the page state.
type Model struct {
	ctx         context.Context
	driver      Driver
	result      *workflow.ResultView
	suggestions *presenter.Suggestions
	hints       map[workflow.Field][]model.Category
	theme       themes.Theme
	keymap      KeyMap
	help        help.Model
	spinner     spinner.Model
	question    model.Category
	notice      string
	options     []model.Category
	inputs      [inputCount]textinput.Model
	panels      [2]panel
	config      Config
	focus       int
	cursor      int
	width       int
	height      int
	tab         Tab
	mode        Mode
	reprompt    bool
	quitting    bool
}

// New creates the page model.
func New(ctx context.Context, driver Driver, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	m := Model{
		ctx:     ctx,
		driver:  driver,
		hints:   make(map[workflow.Field][]model.Category),
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		spinner: s,
		config:  cfg,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	m.help.Width = cfg.Width

	m.inputs[inputTitle] = newInput("Titre du livre (optionnel)", 200)
	m.inputs[inputDescription] = newInput("Description ou résumé", 2000)
	m.inputs[inputSuggest] = newInput("Décrivez le livre que vous cherchez", 2000)
	m.inputs[inputTitle].Focus()

	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 60
	return in
}

// Init returns initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadingMsg:
		m.panels[msg.kind].loading = msg.loading

	case hideResultMsg:
		m.panels[msg.kind].err = ""
		m.panels[msg.kind].errActive = false
		if msg.kind == workflow.KindSuggest {
			m.suggestions = nil
		} else {
			m.result = nil
		}

	case resultMsg:
		view := msg.view
		m.result = &view
		m.panels[workflow.KindPredict].err = ""

	case suggestionsMsg:
		view := msg.view
		m.suggestions = &view
		m.panels[workflow.KindSuggest].err = ""

	case errorMsg:
		m.panels[msg.kind].err = msg.message
		m.panels[msg.kind].errActive = true
		if msg.kind == workflow.KindSuggest {
			m.suggestions = nil
		} else {
			m.result = nil
		}

	case revertErrorMsg:
		m.panels[msg.kind].errActive = false

	case focusInputMsg:
		first := inputTitle
		if m.tab == TabSuggest {
			first = inputSuggest
		}
		return m, m.setFocus(first)

	case hintsMsg:
		m.hints[msg.field] = msg.hints

	case hideHintsMsg:
		delete(m.hints, msg.field)

	case askConfirmationMsg:
		m.mode = ModeConfirming
		m.question = msg.category
		m.reprompt = msg.reprompt

	case selectorMsg:
		m.mode = ModeSelecting
		m.options = msg.options
		m.cursor = 0

	case hideCorrectionMsg:
		m.mode = ModeEditing
		m.options = nil
		m.reprompt = false

	case displayedCategoryMsg:
		if m.result != nil {
			m.result.Category = msg.category
			m.result.Icon = presenter.Icon(msg.category)
		}

	case noticeMsg:
		m.notice = msg.message

	case requestDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, common.ErrStaleResponse) {
			slog.Debug("Request finished with error", "kind", msg.kind, "error", msg.err)
		}

	case answerDoneMsg:
		if msg.err != nil {
			slog.Debug("Correction step rejected", "error", msg.err)
		}
	}

	return m, nil
}

// handleKey routes a key press by mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.mode {
	case ModeConfirming:
		return m.handleConfirmKey(msg)
	case ModeSelecting:
		return m.handleSelectorKey(msg)
	default:
		return m.handleEditKey(msg)
	}
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Accept):
		return m, m.confirmCmd("oui")
	case key.Matches(msg, m.keymap.Reject):
		return m, m.confirmCmd("non")
	case msg.Type == tea.KeyRunes:
		return m, m.confirmCmd(string(msg.Runes))
	}
	return m, nil
}

func (m Model) handleSelectorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Submit):
		if m.cursor < len(m.options) {
			return m, m.submitCmd(string(m.options[m.cursor]))
		}
	case key.Matches(msg, m.keymap.Quit):
		return m, m.submitCmd("")
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		if i := int(msg.Runes[0] - '1'); i >= 0 && i < len(m.options) {
			m.cursor = i
			return m, m.submitCmd(string(m.options[i]))
		}
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.SwitchTab):
		m.notice = ""
		if m.tab == TabPredict {
			m.tab = TabSuggest
			return m, m.setFocus(inputSuggest)
		}
		m.tab = TabPredict
		return m, m.setFocus(inputTitle)

	case key.Matches(msg, m.keymap.NextField), key.Matches(msg, m.keymap.PrevField):
		if m.tab == TabPredict {
			return m, m.setFocus(inputTitle + inputDescription - m.focus)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		m.notice = ""
		if m.tab == TabSuggest {
			return m, m.suggestCmd(m.inputs[inputSuggest].Value())
		}
		return m, m.predictCmd(m.inputs[inputTitle].Value(), m.inputs[inputDescription].Value())
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		switch m.focus {
		case inputTitle:
			m.driver.InputChanged(workflow.FieldTitle, after)
		case inputDescription:
			m.driver.InputChanged(workflow.FieldDescription, after)
		}
	}
	return m, cmd
}

// setFocus focuses input i and blurs the others.
func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return cmd
}

func (m Model) predictCmd(title, description string) tea.Cmd {
	ctx, driver := m.ctx, m.driver
	return func() tea.Msg {
		return requestDoneMsg{kind: workflow.KindPredict, err: driver.Predict(ctx, title, description)}
	}
}

func (m Model) suggestCmd(description string) tea.Cmd {
	ctx, driver := m.ctx, m.driver
	return func() tea.Msg {
		return requestDoneMsg{kind: workflow.KindSuggest, err: driver.Suggest(ctx, description)}
	}
}

func (m Model) confirmCmd(answer string) tea.Cmd {
	driver := m.driver
	return func() tea.Msg {
		return answerDoneMsg{err: driver.Confirm(answer)}
	}
}

func (m Model) submitCmd(selection string) tea.Cmd {
	driver := m.driver
	return func() tea.Msg {
		return answerDoneMsg{err: driver.SubmitCorrection(selection)}
	}
}

// Tab returns the active form.
func (m Model) Tab() Tab { return m.tab }

// Mode returns what the keyboard currently drives.
func (m Model) Mode() Mode { return m.mode }
