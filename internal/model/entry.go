package model

// Entry is one raw entry from the source-of-truth list. A plain entry
// carries a value/text pair; a group entry carries a label and children.
// Groups are never nested inside groups.
type Entry struct {
	Value    string
	Text     string
	Selected bool
	Image    string

	Label    string
	Children []Entry
}

// IsGroup returns true if this entry is a labeled group.
func (e Entry) IsGroup() bool {
	return e.Label != "" || e.Children != nil
}

// NewEntry creates a plain entry.
func NewEntry(value, text string) Entry {
	return Entry{Value: value, Text: text}
}

// NewGroupEntry creates a labeled group entry with the given children.
func NewGroupEntry(label string, children ...Entry) Entry {
	if children == nil {
		children = []Entry{}
	}
	return Entry{Label: label, Children: children}
}

// SelectedValues returns the values of all selected entries, groups included,
// in source order.
func SelectedValues(entries []Entry) []string {
	var result []string
	for _, e := range entries {
		if e.IsGroup() {
			for _, c := range e.Children {
				if c.Selected {
					result = append(result, c.Value)
				}
			}
			continue
		}
		if e.Selected {
			result = append(result, e.Value)
		}
	}
	return result
}
