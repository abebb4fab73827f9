package scheduler

import "sync"

// queues holds the three lifecycle buckets (pending, executing,
// completed) behind a single mutex, plus one condition variable per
// task type. This mirrors the original engine's header design: pending
// tasks are addressed as type -> priority -> FIFO slice, so a worker
// only ever scans its own type's two priority buckets instead of the
// whole pending set.
//
// One mutex protects all three buckets; a per-type sync.Cond sharing
// that same Locker lets Submit wake exactly the workers that can make
// progress, instead of broadcasting to every idle worker in the pool.
type queues struct {
	mu sync.Mutex

	pending map[string]map[Priority][]*handle
	cond    map[string]*sync.Cond

	executing map[*handle]struct{}
	completed []*handle

	shuttingDown bool
}

func newQueues(types []string) *queues {
	q := &queues{
		pending:   make(map[string]map[Priority][]*handle),
		cond:      make(map[string]*sync.Cond),
		executing: make(map[*handle]struct{}),
	}
	for _, t := range types {
		q.pending[t] = map[Priority][]*handle{
			PriorityNormal: nil,
			PriorityHigh:   nil,
		}
		q.cond[t] = sync.NewCond(&q.mu)
	}
	return q
}

// enqueue appends h to the tail of its (type, priority) bucket and
// wakes one worker bound to that type. Caller must not hold q.mu.
func (q *queues) enqueue(h *handle) {
	q.mu.Lock()
	h.setState(StateQueued)
	bucket := q.pending[h.task.Type()]
	bucket[h.priority] = append(bucket[h.priority], h)
	cond := q.cond[h.task.Type()]
	q.mu.Unlock()

	cond.Signal()
}

// hasPendingLocked reports whether typ has any queued task, High or
// Normal. Caller must hold q.mu.
func (q *queues) hasPendingLocked(typ string) bool {
	bucket := q.pending[typ]
	return len(bucket[PriorityHigh]) > 0 || len(bucket[PriorityNormal]) > 0
}

// dequeueLocked pops the next task for typ: High before Normal, FIFO
// within a priority. Caller must hold q.mu. Returns nil if typ has no
// pending task (the caller is expected to have already verified
// hasPendingLocked under the same critical section).
func (q *queues) dequeueLocked(typ string) *handle {
	bucket := q.pending[typ]
	for _, p := range [...]Priority{PriorityHigh, PriorityNormal} {
		if len(bucket[p]) == 0 {
			continue
		}
		h := bucket[p][0]
		bucket[p] = bucket[p][1:]
		h.setState(StateExecuting)
		q.executing[h] = struct{}{}
		return h
	}
	return nil
}

// completeLocked moves h from executing to completed. Caller must hold
// q.mu.
func (q *queues) completeLocked(h *handle) {
	delete(q.executing, h)
	h.setState(StateCompleted)
	q.completed = append(q.completed, h)
}

// drainCompleted atomically removes and returns every completed task.
func (q *queues) drainCompleted() []*handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.completed
	q.completed = nil
	return out
}

// pendingCountLocked sums both priority buckets for typ.
func (q *queues) pendingCountLocked(typ string) int {
	bucket := q.pending[typ]
	return len(bucket[PriorityHigh]) + len(bucket[PriorityNormal])
}

func (q *queues) executingCountLocked(typ string) int {
	n := 0
	for h := range q.executing {
		if h.task.Type() == typ {
			n++
		}
	}
	return n
}

func (q *queues) completedCountLocked(typ string) int {
	n := 0
	for _, h := range q.completed {
		if h.task.Type() == typ {
			n++
		}
	}
	return n
}

// setShuttingDown flips the drain flag and wakes every worker so each
// can observe it and exit. Destroys nothing itself; callers reclaim
// queue contents separately.
func (q *queues) setShuttingDown() {
	q.mu.Lock()
	q.shuttingDown = true
	q.mu.Unlock()

	for _, c := range q.cond {
		c.Broadcast()
	}
}

// drainAllLocked empties all three buckets, returning every handle
// still held by the scheduler (pending and executing) so Shutdown can
// account for them. Caller must hold q.mu.
func (q *queues) drainAllLocked() []*handle {
	var all []*handle
	for typ, bucket := range q.pending {
		all = append(all, bucket[PriorityHigh]...)
		all = append(all, bucket[PriorityNormal]...)
		q.pending[typ] = map[Priority][]*handle{PriorityNormal: nil, PriorityHigh: nil}
	}
	for h := range q.executing {
		all = append(all, h)
	}
	q.executing = make(map[*handle]struct{})
	q.completed = nil
	return all
}
