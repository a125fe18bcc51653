package layout

// CalculatePopupWidth computes responsive popup width based on percentage of
// terminal width, clamped between MinWidth and MaxWidth.
func CalculatePopupWidth(terminalWidth int, cfg PopupConfig) int {
	width := terminalWidth * cfg.WidthPercent / 100

	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}

	// Don't exceed terminal width
	if width > terminalWidth-4 {
		width = terminalWidth - 4
	}
	if width < 1 {
		return 1
	}

	return width
}

// CalculateRowWidth computes the width available for option row content.
func CalculateRowWidth(popupWidth int, cfg PopupConfig) int {
	width := popupWidth - cfg.ContentPadding
	if width < 1 {
		return 1
	}
	return width
}

// CalculateListHeight computes the number of option rows shown in the popup,
// bounded by MaxVisible and by what the terminal can hold below the header.
func CalculateListHeight(terminalHeight, headerLines int, cfg PopupConfig) int {
	height := terminalHeight - headerLines
	if height > cfg.MaxVisible {
		height = cfg.MaxVisible
	}
	if height < 1 {
		return 1
	}
	return height
}

// CalculateVisibleListItems computes the start and end indices for a
// scrollable list. Returns (start, end) where items[start:end] should be
// displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected row visible within the viewport, keeping it roughly centered.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
