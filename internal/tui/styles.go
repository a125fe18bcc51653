package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the widget.
type Styles struct {
	App               lipgloss.Style
	Trigger           lipgloss.Style
	TriggerOpen       lipgloss.Style
	Placeholder       lipgloss.Style
	Popup             lipgloss.Style
	Option            lipgloss.Style
	OptionHighlighted lipgloss.Style
	OptionSelected    lipgloss.Style
	GroupHeader       lipgloss.Style
	SearchPrompt      lipgloss.Style
	Counter           lipgloss.Style
	Loading           lipgloss.Style
	Message           lipgloss.Style
	Error             lipgloss.Style
	Empty             lipgloss.Style
	Help              lipgloss.Style
	HintKey           lipgloss.Style
	HintDesc          lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Trigger: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		TriggerOpen: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Placeholder: lipgloss.NewStyle().
			Foreground(subtle),

		Popup: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Option: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		OptionHighlighted: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		OptionSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(accent),

		GroupHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		SearchPrompt: lipgloss.NewStyle().
			Foreground(accent),

		Counter: lipgloss.NewStyle().
			Foreground(subtle),

		Loading: lipgloss.NewStyle().
			Foreground(accent),

		Message: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
