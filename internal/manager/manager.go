// Package manager is the single coordination point between the raw source
// list, the reconciliation engine, the adapter, and a pluggable renderer.
package manager

import (
	"github.com/nikbrunner/dropdown/internal/adapter"
	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/reconcile"
	"github.com/nikbrunner/dropdown/internal/sched"
)

// Renderer is the popup/visual host collaborator. The manager delegates
// refresh and loading signals to it but owns no positioning or styling.
type Renderer interface {
	Refresh()
	ShowLoading()
	HideLoading()
	TriggerResize()
}

// Resources is a read-only snapshot of the manager's wiring for external
// consumers.
type Resources struct {
	Nodes    []model.Node
	Adapter  *adapter.Adapter
	Recycler Renderer
}

// Manager owns the reconciliation lifecycle. Update and Replace are not
// reentrant: deferred batched updates scheduled during one pass must flush
// before the next pass starts. The manager flushes the queue defensively at
// the top of both entry points; the surrounding widget serializes calls.
type Manager struct {
	queue    *sched.Queue
	engine   *reconcile.Engine
	adapter  *adapter.Adapter
	renderer Renderer
	nodes    []model.Node

	// OnUpdated fires after every reconciliation that changed anything
	// and after every refresh.
	OnUpdated func()
}

// Params holds parameters for creating a new Manager.
type Params struct {
	// Queue is the shared deferred-task queue. A fresh one is created
	// when nil.
	Queue *sched.Queue
}

// New creates a Manager with no adapter or renderer loaded.
func New(params Params) *Manager {
	queue := params.Queue
	if queue == nil {
		queue = sched.NewQueue()
	}
	return &Manager{
		queue:  queue,
		engine: reconcile.NewEngine(queue),
	}
}

// LoadParams configures the adapter and renderer constructed by Load.
// Scalar fields override defaults; the notification-handler maps are
// appended to whatever is already registered.
type LoadParams struct {
	Multi      bool
	Factory    adapter.ViewFactory
	Renderer   Renderer
	OnChanging map[string][]func(adapter.Event)
	OnChanged  map[string][]func(adapter.Event)
}

// Load constructs one adapter and binds the given renderer. Handler lists
// from params are registered in order.
func (m *Manager) Load(params LoadParams) {
	m.adapter = adapter.New(adapter.Params{
		Multi:   params.Multi,
		Factory: params.Factory,
		Queue:   m.queue,
	})
	for channel, fns := range params.OnChanging {
		for _, fn := range fns {
			m.adapter.OnChanging(channel, fn)
		}
	}
	for channel, fns := range params.OnChanged {
		for _, fn := range fns {
			m.adapter.OnChanged(channel, fn)
		}
	}
	m.renderer = params.Renderer
}

// CreateModelResources cold-builds the mixed list from a raw source. No
// reconciliation happens; any previously held list is simply replaced.
func (m *Manager) CreateModelResources(entries []model.Entry) []model.Node {
	m.nodes = reconcile.Build(entries)
	if m.adapter != nil {
		m.adapter.SetItems(m.nodes)
	}
	return m.nodes
}

// Replace forces fingerprint invalidation and rebuilds from scratch: every
// previous view is torn down and the adapter is repopulated with
// notifications firing.
func (m *Manager) Replace(entries []model.Entry) {
	m.queue.Flush()
	m.engine.Invalidate()

	if m.adapter != nil {
		m.adapter.Detach(allNodes(m.nodes))
	}
	m.nodes = reconcile.Build(entries)
	// Prime the engine so the next Update can short-circuit.
	m.engine.Reconcile(m.nodes, entries)

	if m.adapter != nil {
		m.adapter.SetItems(m.nodes)
	}
	m.Refresh()
}

// Update is the hot path: it reconciles against the previous mixed list and
// short-circuits entirely when the source fingerprint is unchanged.
func (m *Manager) Update(entries []model.Entry) {
	m.queue.Flush()

	next, removed, changed := m.engine.Reconcile(m.nodes, entries)
	if !changed {
		return
	}

	if m.adapter != nil {
		m.adapter.Detach(removed)
	}
	m.nodes = next
	if m.adapter != nil {
		m.adapter.UpdateData(next)
	}
	if m.OnUpdated != nil {
		m.OnUpdated()
	}
	m.Refresh()
}

// SkipEvent propagates the "ignore interaction events" flag to the adapter.
func (m *Manager) SkipEvent(skip bool) {
	if m.adapter != nil {
		m.adapter.SkipEvents(skip)
	}
}

// Refresh delegates to the renderer when present and always invokes the
// updated hook afterward.
func (m *Manager) Refresh() {
	if m.renderer != nil {
		m.renderer.Refresh()
	}
	if m.OnUpdated != nil {
		m.OnUpdated()
	}
}

// Resources returns a snapshot of the current wiring.
func (m *Manager) Resources() Resources {
	return Resources{
		Nodes:    m.nodes,
		Adapter:  m.adapter,
		Recycler: m.renderer,
	}
}

// Adapter returns the loaded adapter, nil before Load.
func (m *Manager) Adapter() *adapter.Adapter {
	return m.adapter
}

// Renderer returns the loaded renderer, nil before Load.
func (m *Manager) Renderer() Renderer {
	return m.renderer
}

// Queue returns the shared deferred-task queue. The widget flushes it each
// tick so batched field updates land before the next pass.
func (m *Manager) Queue() *sched.Queue {
	return m.queue
}

// allNodes expands a mixed list into every node a teardown must touch:
// groups, their children, and top-level options.
func allNodes(nodes []model.Node) []model.Node {
	var result []model.Node
	for _, n := range nodes {
		result = append(result, n)
		if n.Kind == model.KindGroup {
			for _, o := range n.Group.Items {
				result = append(result, model.OptionNode(o))
			}
		}
	}
	return result
}
