package model

// Key identifies an option by its (value, text) pair. Used for matching
// during reconciliation when no stable id exists.
type Key struct {
	Value string
	Text  string
}

// OptionItem represents one selectable entry.
type OptionItem struct {
	Value       string
	Text        string
	Selected    bool
	Visible     bool
	Highlighted bool
	Position    int
	Image       string
	Group       *GroupItem // back reference only, the group owns the forward list
}

// NewOptionItemParams holds parameters for creating a new OptionItem.
type NewOptionItemParams struct {
	Value    string
	Text     string
	Selected bool
	Position int
	Image    string
}

// NewOptionItem creates an OptionItem. Items start visible and unhighlighted.
func NewOptionItem(params NewOptionItemParams) *OptionItem {
	return &OptionItem{
		Value:    params.Value,
		Text:     params.Text,
		Selected: params.Selected,
		Visible:  true,
		Position: params.Position,
		Image:    params.Image,
	}
}

// Key returns the option's identity key.
func (o *OptionItem) Key() Key {
	return Key{Value: o.Value, Text: o.Text}
}
