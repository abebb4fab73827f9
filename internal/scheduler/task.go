package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Priority orders pending tasks within a single type. High drains
// before Normal; there is no aging, so a steady stream of High tasks
// will starve Normal tasks of that type. This is a documented
// limitation, not a bug.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
)

// State is a task's lifecycle position, readable lock-free from
// outside the scheduler. Every transition is still performed under the
// scheduler's queue mutex; the atomic only makes external reads cheap.
type State int32

const (
	StateQueued State = iota
	StateExecuting
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateExecuting:
		return "executing"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Task is a unit of deferred work. Type returns the immutable type tag
// used to route the task to a worker pool; Execute performs the work
// and may do arbitrary blocking I/O. The scheduler places no deadline
// on Execute — ctx carries request-scoped values only, it is never
// canceled by Shutdown.
type Task interface {
	Type() string
	Execute(ctx context.Context) error
}

// handle wraps a submitted Task with the bookkeeping the scheduler
// needs: priority, atomic state, and the error captured from a failed
// or panicking Execute. A task is owned exclusively by the scheduler
// from Submit until it is returned by RetrieveCompleted.
type handle struct {
	id         string
	task       Task
	priority   Priority
	state      int32
	submittedAt time.Time
	startedAt  time.Time
	completedAt time.Time
	err        error
	workerID   int
}

func newHandle(task Task, priority Priority) *handle {
	return &handle{
		id:          uuid.NewString(),
		task:        task,
		priority:    priority,
		state:       int32(StateQueued),
		submittedAt: time.Now(),
	}
}

func (h *handle) State() State {
	return State(atomic.LoadInt32(&h.state))
}

func (h *handle) setState(s State) {
	atomic.StoreInt32(&h.state, int32(s))
}

// Completed is the read-only view of a task returned by
// RetrieveCompleted. It exposes everything a caller needs to inspect a
// finished task without handing back the internal handle type.
type Completed struct {
	ID          string
	Task        Task
	Priority    Priority
	State       State
	Err         error
	SubmittedAt time.Time
	StartedAt   time.Time
	CompletedAt time.Time
	WorkerID    int
}

func (h *handle) toCompleted() Completed {
	return Completed{
		ID:          h.id,
		Task:        h.task,
		Priority:    h.priority,
		State:       h.State(),
		Err:         h.err,
		SubmittedAt: h.submittedAt,
		StartedAt:   h.startedAt,
		CompletedAt: h.completedAt,
		WorkerID:    h.workerID,
	}
}
