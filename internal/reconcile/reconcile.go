// Package reconcile keeps the in-memory mixed list consistent with the raw
// source list while maximizing reuse of existing item instances, so that
// views bound to surviving items are updated in place instead of rebuilt.
package reconcile

import (
	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/sched"
)

// Engine performs fingerprint-gated reconciliation between a previous mixed
// list and a new raw source list. Field updates on reused items are batched
// through the queue and applied on the next flush; callers must flush the
// queue before starting another pass.
type Engine struct {
	queue           *sched.Queue
	lastFingerprint string
	// primed distinguishes "never reconciled" from a stored fingerprint,
	// which is empty for an empty source list.
	primed bool
}

// NewEngine creates an Engine batching field updates onto the given queue.
func NewEngine(queue *sched.Queue) *Engine {
	return &Engine{queue: queue}
}

// Invalidate clears the stored fingerprint so the next Reconcile cannot
// short-circuit. Used by the replace path.
func (e *Engine) Invalidate() {
	e.lastFingerprint = ""
	e.primed = false
}

// Reconcile builds the next mixed list from the raw source list, reusing
// instances from prev wherever the identity key still matches. It returns
// the new list, the items dropped from it (their views must be detached),
// and whether anything changed at all. An unchanged fingerprint returns
// (prev, nil, false) without touching any item.
//
// Duplicate identity keys match first-in-first-out: the first unclaimed
// previous item with a given key is reused by the first new entry carrying
// that key, the second by the second, and so on.
func (e *Engine) Reconcile(prev []model.Node, entries []model.Entry) (next []model.Node, removed []model.Node, changed bool) {
	fingerprint := Fingerprint(entries)
	if e.primed && fingerprint == e.lastFingerprint {
		return prev, nil, false
	}
	e.lastFingerprint = fingerprint
	e.primed = true

	// Index previous items as removal candidates. Snapshot group children
	// now: reused groups are cleared and refilled during the walk.
	groupPool := map[string][]*model.GroupItem{}
	optionPool := map[model.Key][]*model.OptionItem{}
	var prevGroups []*model.GroupItem
	var prevOptions []*model.OptionItem

	for _, n := range prev {
		switch n.Kind {
		case model.KindGroup:
			groupPool[n.Group.Label] = append(groupPool[n.Group.Label], n.Group)
			prevGroups = append(prevGroups, n.Group)
			for _, o := range n.Group.Items {
				optionPool[o.Key()] = append(optionPool[o.Key()], o)
				prevOptions = append(prevOptions, o)
			}
		case model.KindOption:
			optionPool[n.Option.Key()] = append(optionPool[n.Option.Key()], n.Option)
			prevOptions = append(prevOptions, n.Option)
		}
	}

	claimedGroups := map[*model.GroupItem]bool{}
	claimedOptions := map[*model.OptionItem]bool{}

	takeGroup := func(label string) *model.GroupItem {
		pool := groupPool[label]
		if len(pool) == 0 {
			return nil
		}
		g := pool[0]
		groupPool[label] = pool[1:]
		claimedGroups[g] = true
		return g
	}
	takeOption := func(k model.Key) *model.OptionItem {
		pool := optionPool[k]
		if len(pool) == 0 {
			return nil
		}
		o := pool[0]
		optionPool[k] = pool[1:]
		claimedOptions[o] = true
		return o
	}

	next = make([]model.Node, 0, len(entries))
	position := 0

	for _, entry := range entries {
		if entry.IsGroup() {
			group := takeGroup(entry.Label)
			if group != nil {
				group.Position = position
				group.Clear()
			} else {
				group = model.NewGroupItem(entry.Label, position)
			}
			position++

			for _, c := range entry.Children {
				o := takeOption(model.Key{Value: c.Value, Text: c.Text})
				if o != nil {
					group.Append(o)
					e.deferFieldSync(o, c, position)
				} else {
					group.Append(model.NewOptionItem(model.NewOptionItemParams{
						Value:    c.Value,
						Text:     c.Text,
						Selected: c.Selected,
						Position: position,
						Image:    c.Image,
					}))
				}
				position++
			}

			next = append(next, model.GroupNode(group))
			continue
		}

		o := takeOption(model.Key{Value: entry.Value, Text: entry.Text})
		if o != nil {
			o.Group = nil
			e.deferFieldSync(o, entry, position)
		} else {
			o = model.NewOptionItem(model.NewOptionItemParams{
				Value:    entry.Value,
				Text:     entry.Text,
				Selected: entry.Selected,
				Position: position,
				Image:    entry.Image,
			})
		}
		next = append(next, model.OptionNode(o))
		position++
	}

	// Anything unclaimed is gone from the new source.
	for _, g := range prevGroups {
		if !claimedGroups[g] {
			removed = append(removed, model.GroupNode(g))
		}
	}
	for _, o := range prevOptions {
		if !claimedOptions[o] {
			removed = append(removed, model.OptionNode(o))
		}
	}

	return next, removed, true
}

// deferFieldSync schedules a batched field update for a reused option, but
// only when something actually differs from the new source entry.
func (e *Engine) deferFieldSync(o *model.OptionItem, entry model.Entry, position int) {
	if o.Selected == entry.Selected && o.Position == position && o.Image == entry.Image {
		return
	}
	selected, image := entry.Selected, entry.Image
	e.queue.Defer(func() {
		o.Selected = selected
		o.Position = position
		o.Image = image
	})
}
