package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/sanitize"
	"github.com/nikbrunner/dropdown/internal/tui/layout"
)

// popupRow is one renderable line of the popup list.
type popupRow struct {
	option *model.OptionItem
	group  *model.GroupItem
	indent bool
}

// renderView creates the complete widget view.
func (w Widget) renderView() string {
	var sections []string

	if w.config.Title != "" {
		sections = append(sections, w.styles.GroupHeader.Render(w.config.Title))
	}

	sections = append(sections, w.renderTrigger())

	if w.open {
		sections = append(sections, w.renderPopup())
	}

	if w.message != "" {
		if w.isError {
			sections = append(sections, w.styles.Error.Render(w.message))
		} else {
			sections = append(sections, w.styles.Message.Render(w.message))
		}
	}

	sections = append(sections, w.styles.Help.Render(w.renderHints(w.contextualHints())))

	content := w.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)

	return content
}

// renderTrigger renders the closed-state summary line.
func (w Widget) renderTrigger() string {
	popupWidth := layout.CalculatePopupWidth(w.width, w.layoutConfig.Popup)
	rowWidth := layout.CalculateRowWidth(popupWidth, w.layoutConfig.Popup)

	selected := w.manager.Adapter().SelectedItems()
	var text string
	if len(selected) == 0 {
		text = w.styles.Placeholder.Render(w.config.Placeholder)
	} else {
		texts := make([]string, len(selected))
		for i, o := range selected {
			texts[i] = sanitize.StripMarkup(o.Text)
		}
		summary, _ := layout.TruncateText(strings.Join(texts, ", "), rowWidth, w.layoutConfig.Text)
		text = summary
	}

	style := w.styles.Trigger
	if w.open {
		style = w.styles.TriggerOpen
	}
	return style.Width(popupWidth).Render(text)
}

// renderPopup renders the open option list.
func (w Widget) renderPopup() string {
	popupWidth := layout.CalculatePopupWidth(w.width, w.layoutConfig.Popup)
	rowWidth := layout.CalculateRowWidth(popupWidth, w.layoutConfig.Popup)

	var content strings.Builder

	headerLines := 10 // trigger, borders, status, help
	if w.searching {
		content.WriteString(w.styles.SearchPrompt.Render("/") + w.searchInput.View() + "\n")
		headerLines++
	} else if w.controller.Keyword() != "" {
		content.WriteString(w.styles.SearchPrompt.Render("/"+w.controller.Keyword()) + "\n")
		headerLines++
	}

	rows := w.buildRows()
	listHeight := layout.CalculateListHeight(w.height, headerLines, w.layoutConfig.Popup)

	if len(rows) == 0 {
		if w.controller.Keyword() != "" {
			content.WriteString(w.styles.Empty.Render("(no matches)"))
		} else {
			content.WriteString(w.styles.Empty.Render("(empty)"))
		}
	} else {
		anchor := w.anchorRowIndex(rows)
		start, end := layout.CalculateVisibleListItems(listHeight, anchor, len(rows))
		for i := start; i < end; i++ {
			content.WriteString(w.renderRow(rows[i], rowWidth) + "\n")
		}
	}

	content.WriteString("\n" + w.renderStatus())

	if w.state.loading {
		content.WriteString("\n" + w.styles.Loading.Render("Loading..."))
	}

	return w.styles.Popup.Width(popupWidth).Render(strings.TrimRight(content.String(), "\n"))
}

// buildRows flattens the mixed list into visible popup rows. Group headers
// stay visible while collapsed; their children drop out.
func (w Widget) buildRows() []popupRow {
	var rows []popupRow

	for _, n := range w.manager.Adapter().Items() {
		switch n.Kind {
		case model.KindGroup:
			g := n.Group
			if !w.groupVisible(g) {
				continue
			}
			rows = append(rows, popupRow{group: g})
			for _, o := range g.Items {
				if w.optionVisible(o) {
					rows = append(rows, popupRow{option: o, indent: true})
				}
			}
		default:
			if w.optionVisible(n.Option) {
				rows = append(rows, popupRow{option: n.Option})
			}
		}
	}

	return rows
}

// optionVisible prefers the bound view's display state, which folds in
// group collapse, over the raw model flag.
func (w Widget) optionVisible(o *model.OptionItem) bool {
	if v, ok := w.registry.options[o]; ok {
		return v.Visible()
	}
	return o.Visible
}

func (w Widget) groupVisible(g *model.GroupItem) bool {
	if v, ok := w.registry.groups[g]; ok {
		return v.Visible()
	}
	return g.Visible()
}

// anchorRowIndex picks the row the visible window centers on: a pending
// scroll request wins, otherwise the highlighted option.
func (w Widget) anchorRowIndex(rows []popupRow) int {
	if target := w.registry.takeScrollTarget(); target != nil {
		for i, r := range rows {
			if r.option == target {
				return i
			}
		}
	}
	return w.highlightRowIndex(rows)
}

// highlightRowIndex finds the row of the highlighted option, or 0.
func (w Widget) highlightRowIndex(rows []popupRow) int {
	highlighted := w.manager.Adapter().HighlightedItem()
	if highlighted == nil {
		return 0
	}
	for i, r := range rows {
		if r.option == highlighted {
			return i
		}
	}
	return 0
}

func (w Widget) renderRow(r popupRow, maxWidth int) string {
	if r.group != nil {
		return w.renderGroupRow(r.group, maxWidth)
	}
	return w.renderOptionRow(r.option, r.indent, maxWidth)
}

func (w Widget) renderGroupRow(g *model.GroupItem, maxWidth int) string {
	arrow := "▾ "
	if g.Collapsed {
		arrow = "▸ "
	}

	label := sanitize.StripMarkup(g.Label)
	suffix := fmt.Sprintf(" (%d)", len(g.Items))
	line, _ := layout.TruncateWithPrefixSuffix(label, maxWidth, arrow, suffix, w.layoutConfig.Text)
	return w.styles.GroupHeader.Render(line)
}

func (w Widget) renderOptionRow(o *model.OptionItem, indent bool, maxWidth int) string {
	var prefix string
	if indent {
		prefix = strings.Repeat(" ", w.layoutConfig.Popup.GroupIndent)
	}

	if w.config.Multi {
		if o.Selected {
			prefix += "[x] "
		} else {
			prefix += "[ ] "
		}
	}
	if o.Image != "" {
		prefix += "◘ "
	}

	text := sanitize.StripMarkup(o.Text)
	line, _ := layout.TruncateWithPrefixSuffix(text, maxWidth, prefix, "", w.layoutConfig.Text)

	isHighlighted := w.manager.Adapter().HighlightedItem() == o
	if isHighlighted {
		// Pad to fill width for the highlight bar
		for len([]rune(line)) < maxWidth {
			line += " "
		}
		return w.styles.OptionHighlighted.Render(line)
	}
	if o.Selected {
		return w.styles.OptionSelected.Render(line)
	}
	return w.styles.Option.Render(line)
}

// renderStatus renders the visible/total counter plus pagination state.
func (w Widget) renderStatus() string {
	stats := w.manager.Adapter().VisibilityStats()
	status := fmt.Sprintf("%d/%d", stats.Visible, stats.Total)

	if w.controller.IsRemote() && w.controller.TotalPages() > 1 {
		status += fmt.Sprintf(" · page %d/%d", w.controller.Page(), w.controller.TotalPages())
		if w.controller.HasMore() {
			status += " · L loads more"
		}
	}

	return w.styles.Counter.Render(status)
}
