package tui

import "github.com/nikbrunner/dropdown/internal/adapter"

// Config holds widget behavior configuration. Zero values fall back to the
// base configuration when merged, so partial configs compose cleanly.
type Config struct {
	// Title is shown above the popup list.
	Title string

	// Placeholder is shown on the closed trigger when nothing is selected.
	Placeholder string

	// Multi enables multi-select with checkboxes.
	Multi bool

	// FuzzyMatch switches local search from substring to fuzzy matching.
	FuzzyMatch bool

	// Pagination enables load-more paging for remote sources.
	Pagination bool

	// PerPage is the remote page size. Zero uses the data source default.
	PerPage int

	// OnChanging and OnChanged register notification handlers per channel.
	OnChanging map[string][]func(adapter.Event)
	OnChanged  map[string][]func(adapter.Event)
}

// Merge overlays override on top of c. Scalar zero values inherit from c,
// true booleans win, and handler lists append rather than replace.
func (c Config) Merge(override Config) Config {
	out := c

	if override.Title != "" {
		out.Title = override.Title
	}
	if override.Placeholder != "" {
		out.Placeholder = override.Placeholder
	}
	if override.Multi {
		out.Multi = true
	}
	if override.FuzzyMatch {
		out.FuzzyMatch = true
	}
	if override.Pagination {
		out.Pagination = true
	}
	if override.PerPage != 0 {
		out.PerPage = override.PerPage
	}

	if len(override.OnChanging) > 0 {
		out.OnChanging = mergeHandlers(c.OnChanging, override.OnChanging)
	}
	if len(override.OnChanged) > 0 {
		out.OnChanged = mergeHandlers(c.OnChanged, override.OnChanged)
	}

	return out
}

func mergeHandlers(base, extra map[string][]func(adapter.Event)) map[string][]func(adapter.Event) {
	merged := make(map[string][]func(adapter.Event), len(base)+len(extra))
	for channel, fns := range base {
		merged[channel] = append(merged[channel], fns...)
	}
	for channel, fns := range extra {
		merged[channel] = append(merged[channel], fns...)
	}
	return merged
}

// DefaultConfig returns the default widget configuration.
func DefaultConfig() Config {
	return Config{
		Placeholder: "Select...",
	}
}
