package adapter_test

import (
	"testing"

	"github.com/nikbrunner/dropdown/internal/adapter"
	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/reconcile"
	"github.com/nikbrunner/dropdown/internal/sched"
)

// fakeView records ViewBinder calls for assertions.
type fakeView struct {
	node        model.Node
	events      adapter.Events
	renders     int
	updates     int
	disposed    bool
	selected    bool
	highlighted bool
	visible     bool
	scrolled    int
}

func (v *fakeView) Render(ev adapter.Events) { v.renders++; v.events = ev; v.visible = true }
func (v *fakeView) Update()                  { v.updates++ }
func (v *fakeView) SetSelected(s bool)       { v.selected = s }
func (v *fakeView) SetHighlighted(h bool)    { v.highlighted = h }
func (v *fakeView) SetVisible(s bool)        { v.visible = s }
func (v *fakeView) ScrollTo()                { v.scrolled++ }
func (v *fakeView) Dispose()                 { v.disposed = true }

// harness bundles an adapter with its queue and recorded views.
type harness struct {
	adapter *adapter.Adapter
	queue   *sched.Queue
	views   map[string]*fakeView // keyed by option value / group label
}

func newHarness(t *testing.T, multi bool, entries []model.Entry) *harness {
	t.Helper()
	h := &harness{
		queue: sched.NewQueue(),
		views: map[string]*fakeView{},
	}
	h.adapter = adapter.New(adapter.Params{
		Multi: multi,
		Queue: h.queue,
		Factory: func(n model.Node) adapter.ViewBinder {
			v := &fakeView{node: n}
			if n.IsGroup() {
				h.views["g:"+n.Group.Label] = v
			} else {
				h.views[n.Option.Value] = v
			}
			return v
		},
	})
	h.adapter.SetItems(reconcile.Build(entries))
	return h
}

func plainEntries(values ...string) []model.Entry {
	entries := make([]model.Entry, len(values))
	for i, v := range values {
		entries[i] = model.Entry{Value: v, Text: "Item " + v}
	}
	return entries
}

func TestAdapter_SingleSelectExclusivity(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2", "3"))
	opts := h.adapter.Options()

	for _, o := range opts {
		h.adapter.ActivateOption(o)
		h.queue.Flush()

		selected := h.adapter.SelectedItems()
		if len(selected) != 1 {
			t.Fatalf("expected exactly 1 selected option, got %d", len(selected))
		}
		if selected[0] != o {
			t.Errorf("expected %q selected, got %q", o.Value, selected[0].Value)
		}
		if h.adapter.SingleSelection() != o {
			t.Error("single-selection slot out of sync")
		}
	}
}

func TestAdapter_MultiSelectToggles(t *testing.T) {
	h := newHarness(t, true, plainEntries("1", "2"))
	opts := h.adapter.Options()

	h.adapter.ActivateOption(opts[0])
	h.adapter.ActivateOption(opts[1])
	h.queue.Flush()

	if len(h.adapter.SelectedItems()) != 2 {
		t.Fatalf("expected 2 selected, got %d", len(h.adapter.SelectedItems()))
	}

	// Activating again toggles off.
	h.adapter.ActivateOption(opts[0])
	h.queue.Flush()

	selected := h.adapter.SelectedItems()
	if len(selected) != 1 || selected[0] != opts[1] {
		t.Errorf("expected only %q selected after toggle, got %d items", opts[1].Value, len(selected))
	}
}

func TestAdapter_ActivationCommitIsDeferred(t *testing.T) {
	h := newHarness(t, false, plainEntries("1"))
	o := h.adapter.Options()[0]

	observedPreClick := false
	h.adapter.OnChanging(adapter.ChannelSelection, func(ev adapter.Event) {
		// The pre-change observer must see the pre-activation value.
		observedPreClick = true
		if ev.Item.Selected {
			t.Error("pre-change observer saw the post-activation value")
		}
	})

	h.adapter.ActivateOption(o)
	if !observedPreClick {
		t.Fatal("pre-change notification did not fire")
	}
	if o.Selected {
		t.Fatal("selection committed synchronously, expected deferred commit")
	}

	h.queue.Flush()
	if !o.Selected {
		t.Fatal("selection not committed after flush")
	}
}

func TestAdapter_NavigateWrapsAndSkipsHidden(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2", "3"))
	opts := h.adapter.Options()
	h.adapter.SetVisible(opts[1], false)

	// No highlight: +1 starts at index 0.
	h.adapter.Navigate(1, false)
	if h.adapter.HighlightedIndex() != 0 {
		t.Fatalf("expected highlight at 0, got %d", h.adapter.HighlightedIndex())
	}

	// Hidden middle option is skipped.
	h.adapter.Navigate(1, false)
	if h.adapter.HighlightedIndex() != 2 {
		t.Fatalf("expected highlight at 2, got %d", h.adapter.HighlightedIndex())
	}

	// Wraps past the end.
	h.adapter.Navigate(1, false)
	if h.adapter.HighlightedIndex() != 0 {
		t.Fatalf("expected wrap to 0, got %d", h.adapter.HighlightedIndex())
	}

	// Backwards wraps to the last visible.
	h.adapter.Navigate(-1, false)
	if h.adapter.HighlightedIndex() != 2 {
		t.Fatalf("expected wrap back to 2, got %d", h.adapter.HighlightedIndex())
	}
}

func TestAdapter_NavigateBackwardsWithoutHighlight(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2", "3"))

	h.adapter.Navigate(-1, false)
	if h.adapter.HighlightedIndex() != 2 {
		t.Errorf("expected -1 with no highlight to land on last visible, got %d", h.adapter.HighlightedIndex())
	}
}

func TestAdapter_NavigateNoVisibleIsNoop(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2"))
	for _, o := range h.adapter.Options() {
		h.adapter.SetVisible(o, false)
	}

	h.adapter.Navigate(1, false)
	if h.adapter.HighlightedItem() != nil {
		t.Error("navigate over an empty visible set must not highlight")
	}
}

func TestAdapter_HighlightAlwaysVisible(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2", "3", "4"))
	opts := h.adapter.Options()
	h.adapter.SetVisible(opts[0], false)
	h.adapter.SetVisible(opts[2], false)

	for i := 0; i < 8; i++ {
		h.adapter.Navigate(1, false)
		if o := h.adapter.HighlightedItem(); o != nil && !o.Visible {
			t.Fatalf("highlight landed on hidden option %q", o.Value)
		}
	}
}

func TestAdapter_SetHighlightScansForwardWithoutWrap(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2", "3"))
	opts := h.adapter.Options()
	h.adapter.SetVisible(opts[2], false)

	// Scan from index 2 finds nothing (no wrap back to the start).
	h.adapter.SetHighlightIndex(2, false)
	if h.adapter.HighlightedItem() != nil {
		t.Error("expected no highlight when forward scan finds nothing")
	}

	// Scan from 1 lands on 1.
	h.adapter.SetHighlightIndex(1, false)
	if h.adapter.HighlightedIndex() != 1 {
		t.Errorf("expected highlight at 1, got %d", h.adapter.HighlightedIndex())
	}
}

func TestAdapter_SetHighlightOutOfRange(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2"))
	h.adapter.SetHighlightIndex(0, false)

	h.adapter.SetHighlightIndex(99, false)
	if h.adapter.HighlightedItem() != nil {
		t.Error("out-of-range index must clear and not highlight")
	}
}

func TestAdapter_HighlightNotificationCarriesViewID(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2"))

	var got adapter.Event
	h.adapter.OnChanged(adapter.ChannelHighlight, func(ev adapter.Event) { got = ev })

	h.adapter.SetHighlightIndex(1, false)

	if got.Index != 1 {
		t.Errorf("expected index 1 in highlight event, got %d", got.Index)
	}
	if got.ViewID == "" {
		t.Error("expected a view identity token in highlight event")
	}
}

func TestAdapter_SelectHighlightedGoesThroughViewActivation(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2"))

	h.adapter.Navigate(1, false)
	h.adapter.SelectHighlighted()
	h.queue.Flush()

	selected := h.adapter.SelectedItem()
	if selected == nil || selected.Value != "1" {
		t.Fatal("expected highlighted option selected")
	}
	if !h.views["1"].selected {
		t.Error("expected the bound view's selected visual set")
	}
}

func TestAdapter_SelectHighlightedNoopWithoutHighlight(t *testing.T) {
	h := newHarness(t, false, plainEntries("1"))
	h.adapter.SelectHighlighted()
	h.queue.Flush()

	if h.adapter.SelectedItem() != nil {
		t.Error("SelectHighlighted without a highlight must not select")
	}
}

func TestAdapter_VisibilityStats(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2", "3"))
	opts := h.adapter.Options()

	var pushed []adapter.Stats
	h.adapter.OnVisibilityChanged(func(s adapter.Stats) { pushed = append(pushed, s) })

	h.adapter.SetVisible(opts[0], false)

	stats := h.adapter.VisibilityStats()
	if stats.Visible != 2 || stats.Total != 3 || !stats.HasVisible || stats.Empty {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if len(pushed) != 1 || pushed[0].Visible != 2 {
		t.Errorf("expected one push with Visible=2, got %+v", pushed)
	}
}

func TestAdapter_VisibilityStatsEmptyList(t *testing.T) {
	h := newHarness(t, false, nil)
	stats := h.adapter.VisibilityStats()
	if !stats.Empty || stats.HasVisible || stats.Total != 0 {
		t.Errorf("unexpected stats for empty list: %+v", stats)
	}
}

func TestAdapter_CheckAll(t *testing.T) {
	h := newHarness(t, true, plainEntries("1", "2", "3"))

	h.adapter.CheckAll(true)
	if len(h.adapter.SelectedItems()) != 3 {
		t.Fatalf("expected all selected, got %d", len(h.adapter.SelectedItems()))
	}

	h.adapter.CheckAll(false)
	if len(h.adapter.SelectedItems()) != 0 {
		t.Errorf("expected none selected, got %d", len(h.adapter.SelectedItems()))
	}
}

func TestAdapter_CheckAllNoopUnderSingleSelect(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2"))
	h.adapter.CheckAll(true)
	if len(h.adapter.SelectedItems()) != 0 {
		t.Error("CheckAll must be a no-op under single-select")
	}
}

func TestAdapter_BindOnceThenUpdate(t *testing.T) {
	entries := plainEntries("1", "2")
	h := newHarness(t, false, entries)

	v := h.views["1"]
	if v.renders != 1 || v.updates != 0 {
		t.Fatalf("first bind: renders=%d updates=%d, want 1/0", v.renders, v.updates)
	}

	// Rebinding the same instances skips event wiring and renders.
	h.adapter.UpdateData(h.adapter.Items())
	if v.renders != 1 {
		t.Errorf("rebind must not render again, renders=%d", v.renders)
	}
	if v.updates != 1 {
		t.Errorf("rebind must call the lightweight update, updates=%d", v.updates)
	}
}

func TestAdapter_GroupToggleCascadesViewVisibility(t *testing.T) {
	h := newHarness(t, false, []model.Entry{
		model.NewGroupEntry("Fruits",
			model.Entry{Value: "1", Text: "Apple"},
			model.Entry{Value: "2", Text: "Banana"},
		),
	})

	g := h.adapter.Items()[0].Group
	h.adapter.ToggleGroup(g)

	if !g.Collapsed {
		t.Fatal("expected group collapsed")
	}
	if h.views["1"].visible || h.views["2"].visible {
		t.Error("collapsed group must hide its children's views")
	}
	// Model visibility is untouched, collapse is view-level.
	if !g.Items[0].Visible {
		t.Error("collapse must not clear the model visibility flag")
	}

	h.adapter.ToggleGroup(g)
	if !h.views["1"].visible {
		t.Error("expanding must show the children's views again")
	}
}

func TestAdapter_SkipEventsSuppressesInteractions(t *testing.T) {
	h := newHarness(t, false, plainEntries("1"))
	o := h.adapter.Options()[0]

	fired := 0
	h.adapter.OnChanged(adapter.ChannelSelection, func(adapter.Event) { fired++ })

	h.adapter.SkipEvents(true)
	h.adapter.ActivateOption(o)
	h.queue.Flush()

	if o.Selected {
		t.Error("interactions must be ignored while events are skipped")
	}
	if fired != 0 {
		t.Errorf("expected no notifications, got %d", fired)
	}

	h.adapter.SkipEvents(false)
	h.adapter.ActivateOption(o)
	h.queue.Flush()
	if !o.Selected || fired != 1 {
		t.Errorf("expected selection and 1 notification after re-enabling, fired=%d", fired)
	}
}

func TestAdapter_SetItemsNotifiesUpdateDataDoesNot(t *testing.T) {
	h := newHarness(t, false, nil)

	var log []string
	h.adapter.OnChanging(adapter.ChannelItems, func(adapter.Event) { log = append(log, "changing") })
	h.adapter.OnChanged(adapter.ChannelItems, func(adapter.Event) { log = append(log, "changed") })

	h.adapter.SetItems(reconcile.Build(plainEntries("1")))
	if len(log) != 2 || log[0] != "changing" || log[1] != "changed" {
		t.Fatalf("expected changing then changed, got %v", log)
	}

	log = nil
	h.adapter.UpdateData(reconcile.Build(plainEntries("2")))
	if len(log) != 0 {
		t.Errorf("UpdateData must not notify, got %v", log)
	}
}

func TestAdapter_DetachDisposesViews(t *testing.T) {
	h := newHarness(t, false, plainEntries("1", "2"))
	queue := sched.NewQueue()
	engine := reconcile.NewEngine(queue)

	prev := h.adapter.Items()
	next, removed, _ := engine.Reconcile(prev, plainEntries("1"))
	queue.Flush()

	h.adapter.Detach(removed)
	h.adapter.UpdateData(next)

	if !h.views["2"].disposed {
		t.Error("expected removed option's view disposed")
	}
	if h.views["1"].disposed {
		t.Error("surviving option's view must not be disposed")
	}
	if len(h.adapter.Options()) != 1 {
		t.Errorf("expected 1 option after removal, got %d", len(h.adapter.Options()))
	}
}
