package adapter

import "github.com/nikbrunner/dropdown/internal/model"

// Channel names for pre/post-change notifications.
const (
	ChannelItems     = "items"
	ChannelSelection = "selection"
	ChannelHighlight = "highlight"
)

// Event is the payload delivered to change subscribers.
type Event struct {
	Channel string
	// Index is the flattened index of the affected option, -1 when the
	// event is not about a single option.
	Index int
	// ViewID is the identity token of the bound view, empty when unbound.
	ViewID string
	// Item is the affected option, nil for list-level events.
	Item *model.OptionItem
}

// OnChanging registers a pre-change subscriber for the named channel.
// Handlers run before the change lands, so they observe the old state.
func (a *Adapter) OnChanging(channel string, fn func(Event)) {
	a.changing[channel] = append(a.changing[channel], fn)
}

// OnChanged registers a post-change subscriber for the named channel.
func (a *Adapter) OnChanged(channel string, fn func(Event)) {
	a.changed[channel] = append(a.changed[channel], fn)
}

// OnVisibilityChanged registers a subscriber that receives fresh Stats
// whenever any item's visibility flag is set through the adapter.
func (a *Adapter) OnVisibilityChanged(fn func(Stats)) {
	a.visibilitySubs = append(a.visibilitySubs, fn)
}

func (a *Adapter) triggerChanging(ev Event) {
	if a.skipEvents {
		return
	}
	for _, fn := range a.changing[ev.Channel] {
		fn(ev)
	}
}

func (a *Adapter) triggerChanged(ev Event) {
	if a.skipEvents {
		return
	}
	for _, fn := range a.changed[ev.Channel] {
		fn(ev)
	}
}

func (a *Adapter) pushVisibility() {
	if a.skipEvents {
		return
	}
	stats := a.VisibilityStats()
	for _, fn := range a.visibilitySubs {
		fn(stats)
	}
}
