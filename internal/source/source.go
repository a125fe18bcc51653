// Package source holds the authoritative entry list the widget enhances
// (the stand-in for the native selection control) and the data sources
// that can repopulate it.
package source

import "github.com/nikbrunner/dropdown/internal/model"

// Source is the source-of-truth provider: an ordered entry list that the
// core reads and, in remote-search mode, rewrites wholesale. Change
// subscribers serialize reconciliation entry points, playing the role of
// the native control's mutation observer.
type Source struct {
	entries []model.Entry
	subs    []func()
}

// New creates a Source over the given entries.
func New(entries []model.Entry) *Source {
	if entries == nil {
		entries = []model.Entry{}
	}
	return &Source{entries: entries}
}

// Entries returns the current authoritative entry list.
func (s *Source) Entries() []model.Entry {
	return s.entries
}

// SelectedValues returns the values of all currently selected entries.
func (s *Source) SelectedValues() []string {
	return model.SelectedValues(s.entries)
}

// OnChange registers a subscriber notified after every rewrite.
func (s *Source) OnChange(fn func()) {
	s.subs = append(s.subs, fn)
}

// Rewrite replaces the entry list. With preserveSelection, entries whose
// value matches a previously selected value keep their selected flag even
// when the new data arrived unselected.
func (s *Source) Rewrite(entries []model.Entry, preserveSelection bool) {
	if preserveSelection {
		keep := map[string]bool{}
		for _, v := range s.SelectedValues() {
			keep[v] = true
		}
		for i := range entries {
			if entries[i].IsGroup() {
				for j := range entries[i].Children {
					if keep[entries[i].Children[j].Value] {
						entries[i].Children[j].Selected = true
					}
				}
				continue
			}
			if keep[entries[i].Value] {
				entries[i].Selected = true
			}
		}
	}

	s.entries = entries
	s.notify()
}

// ApplySelection writes a selection back onto the entry list: entries whose
// value appears in values become selected, all others deselected.
func (s *Source) ApplySelection(values []string) {
	want := map[string]bool{}
	for _, v := range values {
		want[v] = true
	}
	for i := range s.entries {
		if s.entries[i].IsGroup() {
			for j := range s.entries[i].Children {
				s.entries[i].Children[j].Selected = want[s.entries[i].Children[j].Value]
			}
			continue
		}
		s.entries[i].Selected = want[s.entries[i].Value]
	}
	s.notify()
}

func (s *Source) notify() {
	for _, fn := range s.subs {
		fn()
	}
}
