package model

// GroupItem represents a labeled collection of options. It owns its
// children; each child holds a non-owning back reference via Group.
type GroupItem struct {
	Label     string
	Items     []*OptionItem
	Collapsed bool
	Position  int
}

// NewGroupItem creates an empty GroupItem with the given label.
func NewGroupItem(label string, position int) *GroupItem {
	return &GroupItem{
		Label:    label,
		Items:    []*OptionItem{},
		Position: position,
	}
}

// Append adds an option to the group and sets its back reference.
func (g *GroupItem) Append(o *OptionItem) {
	o.Group = g
	g.Items = append(g.Items, o)
}

// Clear drops all children. Used by reconciliation before refilling a
// reused group; back references of dropped children are left for the
// reconciler to fix up or discard.
func (g *GroupItem) Clear() {
	g.Items = g.Items[:0]
}

// Visible reports the group's derived visibility: true iff at least one
// child is visible.
func (g *GroupItem) Visible() bool {
	for _, o := range g.Items {
		if o.Visible {
			return true
		}
	}
	return false
}
