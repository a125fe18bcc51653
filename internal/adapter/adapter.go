// Package adapter owns the live mixed list and layers selection, highlight,
// and visibility state on top of it. It mediates between the model and the
// per-item views through the ViewBinder contract and fans out change
// notifications to subscribers.
package adapter

import (
	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/sched"
)

// Stats is the aggregate visibility snapshot over the flattened list.
type Stats struct {
	Visible    int
	Total      int
	HasVisible bool
	Empty      bool
}

// Adapter exposes selection/highlight/visibility operations over the
// flattened option view of the mixed list. All operations are synchronous
// and side-effect-only; there are no error returns.
type Adapter struct {
	multi      bool
	factory    ViewFactory
	queue      *sched.Queue
	skipEvents bool

	nodes []model.Node
	flat  []*model.OptionItem

	options map[*model.OptionItem]*optionBinding
	groups  map[*model.GroupItem]*groupBinding

	// current is the tracked single selection. It has a single writer:
	// the internal selection-change handler in commitSelection.
	current *model.OptionItem

	changing       map[string][]func(Event)
	changed        map[string][]func(Event)
	visibilitySubs []func(Stats)
}

// Params holds parameters for creating a new Adapter.
type Params struct {
	// Multi enables multi-selection. Under single-select at most one
	// option can be selected at a time.
	Multi bool
	// Factory constructs views for items. Nil runs the adapter headless:
	// all state operations work, nothing is rendered.
	Factory ViewFactory
	// Queue batches deferred selection commits. Required.
	Queue *sched.Queue
}

// New creates an Adapter with an empty mixed list.
func New(params Params) *Adapter {
	return &Adapter{
		multi:    params.Multi,
		factory:  params.Factory,
		queue:    params.Queue,
		options:  map[*model.OptionItem]*optionBinding{},
		groups:   map[*model.GroupItem]*groupBinding{},
		changing: map[string][]func(Event){},
		changed:  map[string][]func(Event){},
	}
}

// Multi reports whether the adapter is configured for multi-selection.
func (a *Adapter) Multi() bool {
	return a.multi
}

// SetItems replaces the mixed list and notifies "items" subscribers before
// and after the replacement.
func (a *Adapter) SetItems(nodes []model.Node) {
	a.triggerChanging(Event{Channel: ChannelItems, Index: -1})
	a.replace(nodes)
	a.triggerChanged(Event{Channel: ChannelItems, Index: -1})
}

// UpdateData replaces the mixed list without notifications. The diff path
// uses this because the manager signals "updated" at a coarser grain.
func (a *Adapter) UpdateData(nodes []model.Node) {
	a.replace(nodes)
}

func (a *Adapter) replace(nodes []model.Node) {
	a.nodes = nodes
	a.flat = model.Flatten(nodes)
	a.bindAll()
}

// Detach disposes the views of removed items and forgets their bindings.
func (a *Adapter) Detach(removed []model.Node) {
	for _, n := range removed {
		switch n.Kind {
		case model.KindOption:
			if b, ok := a.options[n.Option]; ok {
				if b.view != nil {
					b.view.Dispose()
				}
				delete(a.options, n.Option)
			}
		case model.KindGroup:
			if b, ok := a.groups[n.Group]; ok {
				if b.view != nil {
					b.view.Dispose()
				}
				delete(a.groups, n.Group)
			}
		}
	}
}

// Items returns the current mixed list.
func (a *Adapter) Items() []model.Node {
	return a.nodes
}

// Options returns the flattened option view.
func (a *Adapter) Options() []*model.OptionItem {
	return a.flat
}

// SelectedItems returns all selected options in flattened order.
func (a *Adapter) SelectedItems() []*model.OptionItem {
	var result []*model.OptionItem
	for _, o := range a.flat {
		if o.Selected {
			result = append(result, o)
		}
	}
	return result
}

// SelectedItem returns the first selected option, or nil.
func (a *Adapter) SelectedItem() *model.OptionItem {
	for _, o := range a.flat {
		if o.Selected {
			return o
		}
	}
	return nil
}

// SingleSelection returns the tracked single-select slot, nil under
// multi-select or when nothing is selected.
func (a *Adapter) SingleSelection() *model.OptionItem {
	return a.current
}

// CheckAll forces every option's selected flag to the given value. No-op
// under single-select.
func (a *Adapter) CheckAll(selected bool) {
	if !a.multi {
		return
	}
	for _, o := range a.flat {
		o.Selected = selected
		if b := a.options[o]; b != nil && b.view != nil {
			b.view.SetSelected(selected)
		}
	}
	a.triggerChanged(Event{Channel: ChannelSelection, Index: -1})
}

// VisibilityStats computes the aggregate visibility snapshot fresh from the
// flattened list.
func (a *Adapter) VisibilityStats() Stats {
	visible := 0
	for _, o := range a.flat {
		if o.Visible {
			visible++
		}
	}
	return Stats{
		Visible:    visible,
		Total:      len(a.flat),
		HasVisible: visible > 0,
		Empty:      len(a.flat) == 0,
	}
}

// SetVisible sets an option's visibility flag, syncs its view, and pushes
// fresh stats to visibility subscribers.
func (a *Adapter) SetVisible(o *model.OptionItem, visible bool) {
	o.Visible = visible
	a.syncViewVisibility(o)
	a.pushVisibility()
}

// RefreshVisibility resyncs every view's visibility from the model and
// pushes fresh stats once. Used after bulk visibility changes (local
// filtering writes the flags directly).
func (a *Adapter) RefreshVisibility() {
	for _, o := range a.flat {
		a.syncViewVisibility(o)
	}
	a.pushVisibility()
}

// syncViewVisibility applies effective view visibility: the model flag
// gated by the owning group's collapse state.
func (a *Adapter) syncViewVisibility(o *model.OptionItem) {
	b := a.options[o]
	if b == nil || b.view == nil {
		return
	}
	effective := o.Visible
	if o.Group != nil && o.Group.Collapsed {
		effective = false
	}
	b.view.SetVisible(effective)
}

// ToggleGroup flips a group's collapsed flag, cascades view visibility of
// its children, and recomputes the visibility aggregate.
func (a *Adapter) ToggleGroup(g *model.GroupItem) {
	g.Collapsed = !g.Collapsed
	if b := a.groups[g]; b != nil && b.view != nil {
		b.view.Update()
	}
	for _, o := range g.Items {
		a.syncViewVisibility(o)
	}
	a.pushVisibility()
}

// HighlightedIndex returns the flattened index of the highlighted option,
// or -1 when nothing is highlighted.
func (a *Adapter) HighlightedIndex() int {
	for i, o := range a.flat {
		if o.Highlighted {
			return i
		}
	}
	return -1
}

// HighlightedItem returns the highlighted option, or nil.
func (a *Adapter) HighlightedItem() *model.OptionItem {
	if i := a.HighlightedIndex(); i >= 0 {
		return a.flat[i]
	}
	return nil
}

// IndexOf returns the flattened index of the given option, or -1.
func (a *Adapter) IndexOf(o *model.OptionItem) int {
	for i, candidate := range a.flat {
		if candidate == o {
			return i
		}
	}
	return -1
}

// Navigate moves the highlight to the next (+1) or previous (-1) visible
// option, wrapping around both ends. With no current highlight, +1 starts
// the scan at index 0 and -1 wraps to the last visible option. No-op when
// nothing is visible.
func (a *Adapter) Navigate(direction int, scroll bool) {
	n := len(a.flat)
	if n == 0 || !a.VisibilityStats().HasVisible {
		return
	}
	if direction == 0 {
		return
	}

	cur := a.HighlightedIndex()
	if cur == -1 && direction < 0 {
		// Wrap from the front so the first step lands on the last index.
		cur = 0
	}

	step := 1
	if direction < 0 {
		step = -1
	}
	i := cur
	for range a.flat {
		i = ((i+step)%n + n) % n
		if a.flat[i].Visible {
			a.highlightAt(i, scroll)
			return
		}
	}
}

// SetHighlightIndex clears the current highlight, then scans forward from
// the given flattened index for the first visible option and highlights
// it. The scan does not wrap; no visible match leaves nothing highlighted.
// An out-of-range index degrades the same way.
func (a *Adapter) SetHighlightIndex(index int, scroll bool) {
	a.clearHighlight()
	if index < 0 || index >= len(a.flat) {
		return
	}
	for i := index; i < len(a.flat); i++ {
		if a.flat[i].Visible {
			a.highlightAt(i, scroll)
			return
		}
	}
}

// SetHighlightItem resolves the option to its flattened index and
// highlights from there.
func (a *Adapter) SetHighlightItem(o *model.OptionItem, scroll bool) {
	a.SetHighlightIndex(a.IndexOf(o), scroll)
}

// ResetHighlight moves the highlight back to the first visible option.
func (a *Adapter) ResetHighlight() {
	a.SetHighlightIndex(0, true)
}

// SelectHighlighted synthesizes a primary activation on the highlighted
// option's bound view, the keyboard-enter path. No-op when nothing visible
// is highlighted.
func (a *Adapter) SelectHighlighted() {
	o := a.HighlightedItem()
	if o == nil || !o.Visible {
		return
	}
	if b := a.options[o]; b != nil && b.events.Activate != nil {
		b.events.Activate()
		return
	}
	a.ActivateOption(o)
}

// ActivateOption is the primary activation path for an option: it fires
// the pre-change notification synchronously so observers read the
// pre-activation value, then commits the selection change on the next
// queue flush. Ignored while events are skipped.
func (a *Adapter) ActivateOption(o *model.OptionItem) {
	if a.skipEvents {
		return
	}
	a.triggerChanging(Event{
		Channel: ChannelSelection,
		Index:   a.IndexOf(o),
		ViewID:  a.viewID(o),
		Item:    o,
	})
	a.queue.Defer(func() {
		a.commitSelection(o)
	})
}

// HoverOption highlights an option without scrolling, the pointer-enter
// path.
func (a *Adapter) HoverOption(o *model.OptionItem) {
	if a.skipEvents {
		return
	}
	a.SetHighlightItem(o, false)
}

// SkipEvents toggles the "ignore interaction events" flag used while a
// bulk load or search cycle is in flight.
func (a *Adapter) SkipEvents(skip bool) {
	a.skipEvents = skip
}

// commitSelection applies a deferred activation: toggle under multi-select,
// exclusive select under single-select.
func (a *Adapter) commitSelection(o *model.OptionItem) {
	if a.multi {
		o.Selected = !o.Selected
	} else {
		if a.current != nil && a.current != o {
			a.current.Selected = false
			if b := a.options[a.current]; b != nil && b.view != nil {
				b.view.SetSelected(false)
			}
		}
		o.Selected = true
	}
	if b := a.options[o]; b != nil && b.view != nil {
		b.view.SetSelected(o.Selected)
	}

	// Internal single-selection tracking runs before external fan-out and
	// regardless of the skip flag, so the slot never goes stale.
	if !a.multi {
		if o.Selected {
			a.current = o
		} else if a.current == o {
			a.current = nil
		}
	}

	a.triggerChanged(Event{
		Channel: ChannelSelection,
		Index:   a.IndexOf(o),
		ViewID:  a.viewID(o),
		Item:    o,
	})
}

func (a *Adapter) clearHighlight() {
	for _, o := range a.flat {
		if o.Highlighted {
			o.Highlighted = false
			if b := a.options[o]; b != nil && b.view != nil {
				b.view.SetHighlighted(false)
			}
		}
	}
}

func (a *Adapter) highlightAt(index int, scroll bool) {
	a.clearHighlight()
	o := a.flat[index]
	o.Highlighted = true

	viewID := ""
	if b := a.options[o]; b != nil && b.view != nil {
		b.view.SetHighlighted(true)
		if scroll {
			b.view.ScrollTo()
		}
		viewID = b.id
	}

	a.triggerChanged(Event{
		Channel: ChannelHighlight,
		Index:   index,
		ViewID:  viewID,
		Item:    o,
	})
}

// bindAll walks the mixed list and binds every item: first binds render the
// view and wire handlers once, later binds only call the view's lightweight
// update.
func (a *Adapter) bindAll() {
	for _, n := range a.nodes {
		switch n.Kind {
		case model.KindOption:
			a.bindOption(n.Option)
		case model.KindGroup:
			a.bindGroup(n.Group)
			for _, o := range n.Group.Items {
				a.bindOption(o)
			}
		}
	}
}

func (a *Adapter) bindOption(o *model.OptionItem) {
	if b, ok := a.options[o]; ok && b.state == initialized {
		if b.view != nil {
			b.view.Update()
		}
		a.syncViewVisibility(o)
		return
	}

	b := &optionBinding{id: newViewID()}
	b.events = Events{
		Activate: func() { a.ActivateOption(o) },
		Hover:    func() { a.HoverOption(o) },
	}
	if a.factory != nil {
		b.view = a.factory(model.OptionNode(o))
		b.view.Render(b.events)
	}
	b.state = initialized
	a.options[o] = b
}

func (a *Adapter) bindGroup(g *model.GroupItem) {
	if b, ok := a.groups[g]; ok && b.state == initialized {
		if b.view != nil {
			b.view.Update()
		}
		return
	}

	b := &groupBinding{id: newViewID()}
	b.events = Events{
		Activate: func() { a.ToggleGroup(g) },
	}
	if a.factory != nil {
		b.view = a.factory(model.GroupNode(g))
		b.view.Render(b.events)
	}
	b.state = initialized
	a.groups[g] = b
}

func (a *Adapter) viewID(o *model.OptionItem) string {
	if b := a.options[o]; b != nil {
		return b.id
	}
	return ""
}
