package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Warn lipgloss.Style
	Selected, Header, Input, Focused          lipgloss.Style

	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
	SymOK, SymFail, SymPoint string
}

var current = classicTheme()

// Themes lists the accepted theme names.
func Themes() []string { return []string{"classic", "neon", "mono"} }

// SetTheme switches the theme; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = Theme{
			Name:        "neon",
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Warn:        lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")),
			Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
			Input:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			Focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			SymOK:       "✔", SymFail: "✖", SymPoint: "›",
		}
	case "mono":
		disableColor = true
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Warn: plain,
			Selected: plain.Reverse(true), Header: plain, Input: plain, Focused: plain,
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
			SymOK:       "ok", SymFail: "x", SymPoint: ">",
		}
	default:
		current = classicTheme()
	}
}

func classicTheme() Theme {
	return Theme{
		Name:        "classic",
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warn:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("22")),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("120")),
		Input:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("77")),
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("22"),
		SymOK:       "✔", SymFail: "✖", SymPoint: "›",
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }
