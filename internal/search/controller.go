// Package search translates keywords and pagination requests into
// visibility assignments over the mixed list (local mode) or rewrites of
// the authoritative source (remote mode).
package search

import (
	"context"
	"log"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/atomic"

	"github.com/nikbrunner/dropdown/internal/manager"
	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/sanitize"
	"github.com/nikbrunner/dropdown/internal/source"
)

// Result reports the outcome of a search or load-more call. Failures are
// values, never panics or errors crossing the controller boundary.
type Result struct {
	OK         bool
	HasResults bool
	Empty      bool
	Message    string
}

// MatchMode selects the local filtering strategy.
type MatchMode int

const (
	// MatchSubstring shows options whose display text contains the
	// keyword, raw or normalized.
	MatchSubstring MatchMode = iota
	// MatchFuzzy shows options that fuzzy-match the keyword.
	MatchFuzzy
)

// Controller owns the search/pagination state. Local mode writes the
// visibility flags of the existing items directly (the documented
// exception to adapter-owned mutation, scoped to the visible flag); remote
// mode rewrites the source and lets the manager's update path reconcile.
type Controller struct {
	manager *manager.Manager
	src     *source.Source
	remote  source.DataSource
	mode    MatchMode
	perPage int

	keyword    string
	searched   bool
	page       int
	totalPages int
	hasMore    bool
	pagination bool
	loading    atomic.Bool

	// Single-flight discipline: a new request cancels the previous one
	// and bumps the generation so a superseded result is never applied.
	generation atomic.Int64
	cancel     context.CancelFunc
}

// Params holds parameters for creating a new Controller.
type Params struct {
	Manager *manager.Manager
	Source  *source.Source
	// Remote switches the controller to remote mode when non-nil.
	Remote source.DataSource
	// Mode selects the local matching strategy.
	Mode MatchMode
	// PerPage is the remote page size, defaulting to 20.
	PerPage int
	// Pagination enables LoadMore in remote mode.
	Pagination bool
}

// New creates a Controller and wires the source-changed signal into the
// manager's update path.
func New(params Params) *Controller {
	c := &Controller{
		manager:    params.Manager,
		src:        params.Source,
		remote:     params.Remote,
		mode:       params.Mode,
		perPage:    params.PerPage,
		pagination: params.Pagination,
		page:       1,
		totalPages: 1,
	}
	if c.perPage <= 0 {
		c.perPage = 20
	}
	if c.src != nil && c.manager != nil {
		c.src.OnChange(func() {
			c.manager.Update(c.src.Entries())
		})
	}
	return c
}

// Keyword returns the current keyword.
func (c *Controller) Keyword() string { return c.keyword }

// Page returns the current page counter.
func (c *Controller) Page() int { return c.page }

// TotalPages returns the last reported page count.
func (c *Controller) TotalPages() int { return c.totalPages }

// HasMore reports whether more remote pages remain.
func (c *Controller) HasMore() bool { return c.hasMore }

// IsLoading reports whether a remote request is in flight.
func (c *Controller) IsLoading() bool { return c.loading.Load() }

// IsRemote reports whether a remote data source is configured.
func (c *Controller) IsRemote() bool { return c.remote != nil }

// Search applies the keyword. Local mode filters the existing items by
// visibility; remote mode fetches a fresh result page (appendResults keeps
// the already-loaded entries, the pagination path). Changing the keyword
// always resets the pagination counters first.
//
// The remote round trip runs synchronously on the calling goroutine. An
// event-loop caller uses StartSearch/Apply instead and runs only the
// Pending fetch off the loop.
func (c *Controller) Search(keyword string, appendResults bool) Result {
	if c.remote != nil {
		if c.searched && keyword == c.keyword && !appendResults {
			// Unchanged keyword, no redundant round-trip.
			return c.statsResult()
		}
		if keyword != c.keyword {
			c.resetPagination()
		}
		c.keyword = keyword
		c.searched = true
		return c.Apply(c.begin(appendResults).Do())
	}

	c.keyword = keyword
	c.searched = true
	return c.filterLocal(keyword)
}

// StartSearch prepares a remote search round trip without performing it.
// When no round trip is needed (local mode, or an unchanged keyword) it
// returns started=false with the final Result; otherwise the caller runs
// Pending.Do off the event loop and feeds the Outcome back through Apply.
func (c *Controller) StartSearch(keyword string) (*Pending, Result, bool) {
	if c.remote == nil {
		return nil, c.Search(keyword, false), false
	}
	if c.searched && keyword == c.keyword {
		return nil, c.statsResult(), false
	}
	if keyword != c.keyword {
		c.resetPagination()
	}
	c.keyword = keyword
	c.searched = true
	return c.begin(false), Result{}, true
}

// LoadMore fetches the next remote page synchronously. It is a guarded
// no-op returning a descriptive failure unless remote mode is active,
// nothing is loading, pagination is enabled, and more pages remain.
func (c *Controller) LoadMore() Result {
	pending, result, started := c.StartLoadMore()
	if !started {
		return result
	}
	return c.Apply(pending.Do())
}

// StartLoadMore prepares the next-page round trip, applying the same
// guards as LoadMore. The page counter only advances when the fetched
// page is applied, so a failed round trip never skips a page.
func (c *Controller) StartLoadMore() (*Pending, Result, bool) {
	if c.remote == nil {
		return nil, Result{OK: false, Message: "No remote data source"}, false
	}
	if c.loading.Load() {
		return nil, Result{OK: false, Message: "Already loading"}, false
	}
	if !c.pagination {
		return nil, Result{OK: false, Message: "Pagination disabled"}, false
	}
	if !c.hasMore {
		return nil, Result{OK: false, Message: "No more data"}, false
	}

	pending := c.begin(true)
	pending.query.Page = c.page + 1
	return pending, Result{}, true
}

func (c *Controller) resetPagination() {
	c.page = 1
	c.totalPages = 1
	c.hasMore = false
}

// filterLocal assigns visibility over the flattened options: an option
// stays visible when the keyword is empty or its display text matches raw
// or normalized.
func (c *Controller) filterLocal(keyword string) Result {
	a := c.manager.Adapter()
	if a == nil {
		return Result{OK: false, Message: "No adapter loaded"}
	}

	options := a.Options()
	if c.mode == MatchFuzzy && keyword != "" {
		texts := make([]string, len(options))
		for i, o := range options {
			texts[i] = Normalize(sanitize.StripMarkup(o.Text))
		}
		matched := map[int]bool{}
		for _, m := range fuzzy.Find(Normalize(keyword), texts) {
			matched[m.Index] = true
		}
		for i, o := range options {
			o.Visible = matched[i]
		}
	} else {
		normKeyword := Normalize(keyword)
		for _, o := range options {
			text := sanitize.StripMarkup(o.Text)
			o.Visible = keyword == "" ||
				strings.Contains(text, keyword) ||
				strings.Contains(Normalize(text), normKeyword)
		}
	}

	a.RefreshVisibility()
	c.manager.Refresh()
	return c.statsResult()
}

// Pending is one prepared remote round trip. Do is the only part safe to
// run off the event loop; everything it touches is owned by the Pending
// itself, never by the controller.
type Pending struct {
	remote        source.DataSource
	ctx           context.Context
	query         source.Query
	generation    int64
	appendResults bool
}

// Do performs the fetch and packages the outcome for Apply. It mutates no
// controller, manager, or source state.
func (p *Pending) Do() Outcome {
	page, err := p.remote.Fetch(p.ctx, p.query)
	return Outcome{
		page:          page,
		err:           err,
		generation:    p.generation,
		requested:     p.query.Page,
		appendResults: p.appendResults,
	}
}

// Outcome carries a completed fetch back to the event loop.
type Outcome struct {
	page          source.Page
	err           error
	generation    int64
	requested     int
	appendResults bool
}

// begin claims the single flight slot: it cancels any in-flight request,
// bumps the generation, and raises the loading state. Must run on the
// event loop.
func (c *Controller) begin(appendResults bool) *Pending {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.loading.Store(true)
	c.manager.SkipEvent(true)
	if r := c.manager.Renderer(); r != nil {
		r.ShowLoading()
	}

	return &Pending{
		remote: c.remote,
		ctx:    ctx,
		query: source.Query{
			Keyword: c.keyword,
			Page:    c.page,
			PerPage: c.perPage,
		},
		generation:    c.generation.Inc(),
		appendResults: appendResults,
	}
}

// Apply folds a fetch outcome into the controller, rewrites the source,
// and reconciles. Must run on the event loop. Only the newest request's
// outcome is applied.
func (c *Controller) Apply(o Outcome) Result {
	if c.generation.Load() != o.generation {
		// A newer request took over; this result is suppressed and the
		// newer request owns the loading state.
		return Result{OK: false, Message: "Superseded"}
	}

	c.loading.Store(false)
	c.manager.SkipEvent(false)
	if r := c.manager.Renderer(); r != nil {
		r.HideLoading()
		r.TriggerResize()
	}

	if o.err != nil {
		log.Printf("dropdown: remote search failed: %v", o.err)
		return Result{OK: false, Message: o.err.Error()}
	}

	c.totalPages = o.page.TotalPages
	c.hasMore = o.page.HasMore
	if o.page.Page > 0 {
		c.page = o.page.Page
	} else {
		c.page = o.requested
	}

	entries := o.page.Entries
	if o.appendResults {
		combined := make([]model.Entry, 0, len(c.src.Entries())+len(entries))
		combined = append(combined, c.src.Entries()...)
		combined = append(combined, entries...)
		entries = combined
	}
	c.src.Rewrite(entries, true)

	return c.statsResult()
}

func (c *Controller) statsResult() Result {
	a := c.manager.Adapter()
	if a == nil {
		return Result{OK: true}
	}
	stats := a.VisibilityStats()
	return Result{OK: true, HasResults: stats.HasVisible, Empty: stats.Empty}
}
