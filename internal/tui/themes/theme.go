package themes

import (
	"github.com/Veraticus/biblio/internal/presenter"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Italic        lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	Tab           lipgloss.Style
	ActiveTab     lipgloss.Style
	RoundedBox    lipgloss.Style
	ErrorBox      lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Info          lipgloss.Color
	Border        lipgloss.Color
	Muted         lipgloss.Color
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:   "#7c3aed",
	secondary: "#a78bfa",
	success:   "#10b981",
	warning:   "#f59e0b",
	err:       "#ef4444",
	info:      "#3b82f6",
	fg:        "#fafafa",
	subtle:    "#a3a3a3",
	border:    "#404040",
	muted:     "#737373",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:   "#cba6f7",
	secondary: "#f5c2e7",
	success:   "#a6e3a1",
	warning:   "#f9e2af",
	err:       "#f38ba8",
	info:      "#89dceb",
	fg:        "#cdd6f4",
	subtle:    "#a6adc8",
	border:    "#45475a",
	muted:     "#6c7086",
})

type palette struct {
	primary, secondary, success, warning, err, info string
	fg, subtle, border, muted                       string
}

func newTheme(p palette) Theme {
	return Theme{
		Primary:   lipgloss.Color(p.primary),
		Secondary: lipgloss.Color(p.secondary),
		Success:   lipgloss.Color(p.success),
		Warning:   lipgloss.Color(p.warning),
		Error:     lipgloss.Color(p.err),
		Info:      lipgloss.Color(p.info),
		Border:    lipgloss.Color(p.border),
		Muted:     lipgloss.Color(p.muted),

		// Text styles
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.fg)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.fg)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.fg)),
		Italic: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(p.subtle)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.fg)).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color(p.border)).
			Foreground(lipgloss.Color(p.fg)),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.fg)).
			Background(lipgloss.Color(p.primary)).
			Bold(true).
			Padding(0, 2),

		// Component styles
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.err)).
			Foreground(lipgloss.Color(p.err)).
			Padding(0, 1),

		// Status styles
		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.err)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// ConfidenceStyle colours a confidence label.
func (t Theme) ConfidenceStyle(label presenter.ConfidenceLabel) lipgloss.Style {
	switch label {
	case presenter.ConfidenceHigh:
		return t.StatusSuccess
	case presenter.ConfidenceMedium:
		return t.StatusWarning
	default:
		return t.StatusError
	}
}
