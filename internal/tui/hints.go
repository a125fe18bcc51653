package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "select")
}

// renderHint renders a single hint as "key:desc" with styling.
func (w Widget) renderHint(h Hint) string {
	return w.styles.HintKey.Render(h.Key) + ":" + w.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar:
// "j/k:move enter:select /:search".
func (w Widget) renderHints(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = w.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// contextualHints returns the hints for the widget's current state.
func (w Widget) contextualHints() []Hint {
	if w.showHelp {
		return w.fullHints()
	}

	if !w.open {
		return []Hint{
			{Key: "enter", Desc: "open"},
			{Key: "y", Desc: "yank"},
			{Key: "q", Desc: "quit"},
		}
	}

	if w.searching {
		return []Hint{
			{Key: "type", Desc: "search"},
			{Key: "Enter", Desc: "apply"},
			{Key: "Esc", Desc: "cancel"},
		}
	}

	hints := []Hint{
		{Key: "j/k", Desc: "move"},
		{Key: "enter", Desc: "select"},
		{Key: "/", Desc: "search"},
	}
	if w.config.Multi {
		hints = append(hints,
			Hint{Key: "a/A", Desc: "all/none"},
		)
	}
	if w.controller.HasMore() {
		hints = append(hints, Hint{Key: "L", Desc: "more"})
	}
	hints = append(hints,
		Hint{Key: "z", Desc: "fold"},
		Hint{Key: "esc", Desc: "close"},
	)
	return hints
}

// fullHints lists every binding, shown while the help toggle is on.
func (w Widget) fullHints() []Hint {
	bindings := []struct{ help, desc string }{
		{w.keys.Up.Help().Key, w.keys.Up.Help().Desc},
		{w.keys.Down.Help().Key, w.keys.Down.Help().Desc},
		{w.keys.Top.Help().Key, w.keys.Top.Help().Desc},
		{w.keys.Bottom.Help().Key, w.keys.Bottom.Help().Desc},
		{w.keys.Open.Help().Key, w.keys.Open.Help().Desc},
		{w.keys.Close.Help().Key, w.keys.Close.Help().Desc},
		{w.keys.Select.Help().Key, w.keys.Select.Help().Desc},
		{w.keys.CheckAll.Help().Key, w.keys.CheckAll.Help().Desc},
		{w.keys.UncheckAll.Help().Key, w.keys.UncheckAll.Help().Desc},
		{w.keys.Collapse.Help().Key, w.keys.Collapse.Help().Desc},
		{w.keys.Search.Help().Key, w.keys.Search.Help().Desc},
		{w.keys.LoadMore.Help().Key, w.keys.LoadMore.Help().Desc},
		{w.keys.Yank.Help().Key, w.keys.Yank.Help().Desc},
		{w.keys.Quit.Help().Key, w.keys.Quit.Help().Desc},
	}

	hints := make([]Hint, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, Hint{Key: b.help, Desc: b.desc})
	}
	return hints
}
