package adapter

import (
	"github.com/google/uuid"

	"github.com/nikbrunner/dropdown/internal/model"
)

// ViewBinder is the per-item rendering contract. The adapter calls these
// but does not know how the view draws itself.
type ViewBinder interface {
	// Render draws the view for the first bind and wires its one-time
	// event handlers.
	Render(ev Events)
	// Update resynchronizes an already-rendered view from the model.
	Update()
	SetSelected(bool)
	SetHighlighted(bool)
	// SetVisible shows or hides the rendered view. View visibility also
	// accounts for group collapse, so it can differ from the model flag.
	SetVisible(bool)
	// ScrollTo brings the view into the visible viewport.
	ScrollTo()
	// Dispose detaches the view permanently.
	Dispose()
}

// Events holds the handlers wired into a view on its first bind.
type Events struct {
	// Activate is the primary activation (click, enter).
	Activate func()
	// Hover sets the highlight without scrolling.
	Hover func()
}

// ViewFactory constructs a view for a mixed-list node.
type ViewFactory func(model.Node) ViewBinder

// bindState tracks the per-item binding state machine.
type bindState int

const (
	uninitialized bindState = iota
	initialized
)

// optionBinding ties an option to its rendered view.
type optionBinding struct {
	view   ViewBinder
	id     string
	state  bindState
	events Events
}

// groupBinding ties a group header to its rendered view.
type groupBinding struct {
	view   ViewBinder
	id     string
	state  bindState
	events Events
}

// newViewID generates an identity token for a bound view. It stands in for
// the view's DOM identity in highlight notifications.
func newViewID() string {
	return uuid.New().String()
}
