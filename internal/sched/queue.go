// Package sched provides a deferred task queue for batching rapid state
// changes into a single visual update. Tasks deferred during a
// reconciliation pass run after the pass's synchronous portion completes
// and must be flushed before the next pass may start, since they close
// over item references a later pass could invalidate.
package sched

// Queue collects deferred tasks for the next tick. It is not safe for
// concurrent use; the widget runs everything on the event loop.
type Queue struct {
	tasks []func()
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Defer appends a task to run on the next flush.
func (q *Queue) Defer(fn func()) {
	q.tasks = append(q.tasks, fn)
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Flush runs all pending tasks in the order they were deferred and clears
// the queue. Tasks deferred while flushing run on the next flush.
func (q *Queue) Flush() {
	pending := q.tasks
	q.tasks = nil
	for _, fn := range pending {
		fn()
	}
}
