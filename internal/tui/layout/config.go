package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Popup PopupConfig
	Input InputConfig
	Text  TextConfig
}

// PopupConfig holds popup dimension configuration.
type PopupConfig struct {
	// WidthPercent is the popup width as percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum popup width in characters.
	MinWidth int

	// MaxWidth is the maximum popup width in characters.
	MaxWidth int

	// MaxVisible is the maximum number of option rows shown at once.
	MaxVisible int

	// ContentPadding is subtracted from popup width for row rendering.
	// Accounts for the popup border and padding on each side.
	ContentPadding int

	// GroupIndent is the indent prefix width for options inside a group.
	GroupIndent int
}

// InputConfig holds search input configuration.
type InputConfig struct {
	SearchCharLimit int
	SearchWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Popup: PopupConfig{
			WidthPercent:   40,
			MinWidth:       30,
			MaxWidth:       70,
			MaxVisible:     10,
			ContentPadding: 4,
			GroupIndent:    2,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			SearchWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
