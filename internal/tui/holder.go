package tui

import (
	"github.com/nikbrunner/dropdown/internal/adapter"
	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/sanitize"
)

// viewRegistry tracks the terminal views bound to model items so the render
// pass can look up display state without reaching into the adapter.
type viewRegistry struct {
	options map[*model.OptionItem]*OptionView
	groups  map[*model.GroupItem]*GroupView

	// scrollTarget is the option most recently asked to scroll into view.
	scrollTarget *model.OptionItem
}

func newViewRegistry() *viewRegistry {
	return &viewRegistry{
		options: make(map[*model.OptionItem]*OptionView),
		groups:  make(map[*model.GroupItem]*GroupView),
	}
}

// factory returns the adapter.ViewFactory that binds items into this registry.
func (r *viewRegistry) factory() adapter.ViewFactory {
	return func(n model.Node) adapter.ViewBinder {
		switch n.Kind {
		case model.KindGroup:
			v := &GroupView{group: n.Group, registry: r}
			r.groups[n.Group] = v
			return v
		default:
			v := &OptionView{option: n.Option, registry: r}
			r.options[n.Option] = v
			return v
		}
	}
}

// takeScrollTarget returns and clears the pending scroll request.
func (r *viewRegistry) takeScrollTarget() *model.OptionItem {
	o := r.scrollTarget
	r.scrollTarget = nil
	return o
}

// OptionView is the terminal rendering of a single option row.
type OptionView struct {
	option   *model.OptionItem
	registry *viewRegistry
	events   adapter.Events

	text        string
	selected    bool
	highlighted bool
	visible     bool
	disposed    bool
}

func (v *OptionView) Render(ev adapter.Events) {
	v.events = ev
	v.sync()
}

func (v *OptionView) Update() {
	v.sync()
}

func (v *OptionView) sync() {
	v.text = sanitize.StripMarkup(v.option.Text)
	v.selected = v.option.Selected
	v.visible = v.option.Visible
}

func (v *OptionView) SetSelected(selected bool)       { v.selected = selected }
func (v *OptionView) SetHighlighted(highlighted bool) { v.highlighted = highlighted }
func (v *OptionView) SetVisible(visible bool)         { v.visible = visible }

func (v *OptionView) ScrollTo() {
	v.registry.scrollTarget = v.option
}

func (v *OptionView) Dispose() {
	v.disposed = true
	delete(v.registry.options, v.option)
}

// Activate simulates the user activating this row, going through the same
// handler the adapter wired on first bind.
func (v *OptionView) Activate() {
	if v.events.Activate != nil {
		v.events.Activate()
	}
}

// Text returns the markup-stripped display text.
func (v *OptionView) Text() string { return v.text }

// Selected reports the view's selection display state.
func (v *OptionView) Selected() bool { return v.selected }

// Highlighted reports the view's highlight display state.
func (v *OptionView) Highlighted() bool { return v.highlighted }

// Visible reports whether the row is currently shown.
func (v *OptionView) Visible() bool { return v.visible }

// GroupView is the terminal rendering of a group header row.
type GroupView struct {
	group    *model.GroupItem
	registry *viewRegistry
	events   adapter.Events

	label    string
	visible  bool
	disposed bool
}

func (v *GroupView) Render(ev adapter.Events) {
	v.events = ev
	v.Update()
}

func (v *GroupView) Update() {
	v.label = sanitize.StripMarkup(v.group.Label)
	v.visible = v.group.Visible()
}

func (v *GroupView) SetSelected(bool)        {}
func (v *GroupView) SetHighlighted(bool)     {}
func (v *GroupView) SetVisible(visible bool) { v.visible = visible }
func (v *GroupView) ScrollTo()               {}

func (v *GroupView) Dispose() {
	v.disposed = true
	delete(v.registry.groups, v.group)
}

// Toggle collapses or expands the group through the wired handler.
func (v *GroupView) Toggle() {
	if v.events.Activate != nil {
		v.events.Activate()
	}
}

// Label returns the markup-stripped header label.
func (v *GroupView) Label() string { return v.label }

// Visible reports whether the header row is currently shown.
func (v *GroupView) Visible() bool { return v.visible }
