package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/dropdown/internal/manager"
	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/sched"
	"github.com/nikbrunner/dropdown/internal/search"
	"github.com/nikbrunner/dropdown/internal/source"
	"github.com/nikbrunner/dropdown/internal/tui/layout"
)

// renderState is the terminal-side renderer the manager drives. The view
// pass reads its flags instead of drawing eagerly.
type renderState struct {
	refreshes int
	loading   bool
	resizes   int
}

func (r *renderState) Refresh()       { r.refreshes++ }
func (r *renderState) ShowLoading()   { r.loading = true }
func (r *renderState) HideLoading()   { r.loading = false }
func (r *renderState) TriggerResize() { r.resizes++ }

// fetchDoneMsg carries the raw outcome of an asynchronous remote round
// trip back into the update loop, where it is applied.
type fetchDoneMsg struct {
	outcome search.Outcome
}

// Widget is the main bubbletea model for the dropdown.
type Widget struct {
	config       Config
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	queue      *sched.Queue
	manager    *manager.Manager
	controller *search.Controller
	src        *source.Source
	registry   *viewRegistry
	state      *renderState

	searchInput textinput.Model

	open      bool
	searching bool
	showHelp  bool
	message   string
	isError   bool

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// WidgetParams holds parameters for creating a new Widget.
type WidgetParams struct {
	Entries []model.Entry
	Remote  source.DataSource
	Config  Config
	Keys    *KeyMap // optional, uses default if nil
	Styles  *Styles // optional, uses default if nil
}

// NewWidget creates a new Widget with the given parameters.
func NewWidget(params WidgetParams) Widget {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := DefaultConfig().Merge(params.Config)
	layoutCfg := layout.DefaultConfig()

	queue := sched.NewQueue()
	state := &renderState{}
	registry := newViewRegistry()

	mgr := manager.New(manager.Params{Queue: queue})
	mgr.Load(manager.LoadParams{
		Multi:      cfg.Multi,
		Factory:    registry.factory(),
		Renderer:   state,
		OnChanging: cfg.OnChanging,
		OnChanged:  cfg.OnChanged,
	})

	src := source.New(params.Entries)

	mode := search.MatchSubstring
	if cfg.FuzzyMatch {
		mode = search.MatchFuzzy
	}
	controller := search.New(search.Params{
		Manager:    mgr,
		Source:     src,
		Remote:     params.Remote,
		Mode:       mode,
		PerPage:    cfg.PerPage,
		Pagination: cfg.Pagination,
	})

	mgr.Update(src.Entries())
	queue.Flush()

	input := textinput.New()
	input.Placeholder = "Search..."
	input.CharLimit = layoutCfg.Input.SearchCharLimit
	input.Width = layoutCfg.Input.SearchWidth

	return Widget{
		config:       cfg,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		queue:        queue,
		manager:      mgr,
		controller:   controller,
		src:          src,
		registry:     registry,
		state:        state,
		searchInput:  input,
		width:        80,
		height:       24,
	}
}

// Open reports whether the popup is open.
func (w Widget) Open() bool {
	return w.open
}

// Searching reports whether the search input has focus.
func (w Widget) Searching() bool {
	return w.searching
}

// Message returns the current status line text.
func (w Widget) Message() string {
	return w.message
}

// Manager exposes the orchestrator (for access from tests and embedders).
func (w Widget) Manager() *manager.Manager {
	return w.manager
}

// Controller exposes the search controller.
func (w Widget) Controller() *search.Controller {
	return w.controller
}

// SelectedValues returns the values of all selected options.
func (w Widget) SelectedValues() []string {
	items := w.manager.Adapter().SelectedItems()
	values := make([]string, len(items))
	for i, o := range items {
		values[i] = o.Value
	}
	return values
}

// Init implements tea.Model.
func (w Widget) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w Widget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case fetchDoneMsg:
		result := w.controller.Apply(msg.outcome)
		w.queue.Flush()
		w.applyResult(result)
		return w, nil

	case tea.KeyMsg:
		if w.searching {
			return w.updateSearching(msg)
		}
		if w.open {
			return w.updateOpen(msg)
		}
		return w.updateClosed(msg)
	}

	return w, nil
}

// updateClosed handles keys while only the trigger is shown.
func (w Widget) updateClosed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Quit):
		return w, tea.Quit

	case key.Matches(msg, w.keys.Open):
		w.open = true
		w.message = ""
		if w.manager.Adapter().HighlightedIndex() < 0 {
			w.highlightInitial()
		}

	case key.Matches(msg, w.keys.Yank):
		w.yankSelection()

	case key.Matches(msg, w.keys.Help):
		w.showHelp = !w.showHelp
	}

	return w, nil
}

// updateOpen handles keys while the popup list is shown.
func (w Widget) updateOpen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := w.manager.Adapter()

	// Handle gg sequence
	if key.Matches(msg, w.keys.Top) {
		if w.lastKeyWasG {
			a.SetHighlightIndex(0, true)
			w.lastKeyWasG = false
			return w, nil
		}
		w.lastKeyWasG = true
		return w, nil
	}
	w.lastKeyWasG = false

	switch {
	case key.Matches(msg, w.keys.Quit):
		return w, tea.Quit

	case key.Matches(msg, w.keys.Close):
		w.open = false
		w.searching = false

	case key.Matches(msg, w.keys.Down):
		a.Navigate(1, true)

	case key.Matches(msg, w.keys.Up):
		a.Navigate(-1, true)

	case key.Matches(msg, w.keys.Bottom):
		w.highlightLast()

	case key.Matches(msg, w.keys.Select):
		a.SelectHighlighted()
		w.queue.Flush()
		if !w.config.Multi {
			w.open = false
		}

	case key.Matches(msg, w.keys.CheckAll):
		if w.config.Multi {
			a.CheckAll(true)
			w.queue.Flush()
		}

	case key.Matches(msg, w.keys.UncheckAll):
		if w.config.Multi {
			a.CheckAll(false)
			w.queue.Flush()
		}

	case key.Matches(msg, w.keys.Collapse):
		if o := a.HighlightedItem(); o != nil && o.Group != nil {
			a.ToggleGroup(o.Group)
		}

	case key.Matches(msg, w.keys.Search):
		w.searching = true
		w.searchInput.Focus()
		return w, textinput.Blink

	case key.Matches(msg, w.keys.LoadMore):
		pending, result, started := w.controller.StartLoadMore()
		if !started {
			w.applyResult(result)
			return w, nil
		}
		return w, fetchCmd(pending)

	case key.Matches(msg, w.keys.Yank):
		w.yankSelection()

	case key.Matches(msg, w.keys.Help):
		w.showHelp = !w.showHelp
	}

	return w, nil
}

// updateSearching handles keys while the search input has focus.
func (w Widget) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		w.searching = false
		w.searchInput.Blur()
		w.searchInput.Reset()
		if !w.controller.IsRemote() {
			w.applyResult(w.controller.Search("", false))
		}
		return w, nil

	case tea.KeyEnter:
		keyword := w.searchInput.Value()
		w.searching = false
		w.searchInput.Blur()
		if w.controller.IsRemote() {
			pending, result, started := w.controller.StartSearch(keyword)
			if !started {
				w.applyResult(result)
				return w, nil
			}
			return w, fetchCmd(pending)
		}
		w.applyResult(w.controller.Search(keyword, false))
		return w, nil
	}

	var cmd tea.Cmd
	w.searchInput, cmd = w.searchInput.Update(msg)

	// Local mode filters live as the user types.
	if !w.controller.IsRemote() {
		w.applyResult(w.controller.Search(w.searchInput.Value(), false))
	}

	return w, cmd
}

// fetchCmd runs a prepared fetch off the update loop. Only the network
// call happens on the command goroutine; the outcome is applied back on
// the event loop when the message arrives.
func fetchCmd(pending *search.Pending) tea.Cmd {
	return func() tea.Msg {
		return fetchDoneMsg{outcome: pending.Do()}
	}
}

// applyResult folds a search outcome into the status line.
func (w *Widget) applyResult(result search.Result) {
	switch {
	case !result.OK:
		w.message = result.Message
		w.isError = true
	case result.Empty:
		w.message = "No results"
		w.isError = false
	default:
		w.message = ""
		w.isError = false
	}
}

// highlightInitial puts the highlight on the selection, or the first visible
// option when nothing is selected.
func (w *Widget) highlightInitial() {
	a := w.manager.Adapter()
	if selected := a.SelectedItem(); selected != nil && selected.Visible {
		a.SetHighlightItem(selected, true)
		return
	}
	a.SetHighlightIndex(0, true)
}

// highlightLast moves the highlight to the last visible option.
func (w *Widget) highlightLast() {
	a := w.manager.Adapter()
	options := a.Options()
	for i := len(options) - 1; i >= 0; i-- {
		if options[i].Visible {
			a.SetHighlightItem(options[i], true)
			return
		}
	}
}

// yankSelection copies the selected values to the system clipboard.
func (w *Widget) yankSelection() {
	values := w.SelectedValues()
	if len(values) == 0 {
		w.message = "Nothing selected"
		w.isError = false
		return
	}

	if err := clipboard.WriteAll(strings.Join(values, "\n")); err != nil {
		w.message = "Copy failed: " + err.Error()
		w.isError = true
		return
	}

	if len(values) == 1 {
		w.message = "Copied 1 value"
	} else {
		w.message = fmt.Sprintf("Copied %d values", len(values))
	}
	w.isError = false
}

// View implements tea.Model.
func (w Widget) View() string {
	return w.renderView()
}
