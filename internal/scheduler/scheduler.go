package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// lifecycle is the Scheduler's state machine. It only ever moves
// forward: Uninitialized -> Configured -> Running -> Draining ->
// Terminated.
type lifecycle int32

const (
	lifecycleUninitialized lifecycle = iota
	lifecycleConfigured
	lifecycleRunning
	lifecycleDraining
	lifecycleTerminated
)

// Sentinel errors returned by Submit, Startup, and Shutdown.
var (
	ErrUnknownType       = errors.New("scheduler: unknown task type")
	ErrNotRunning        = errors.New("scheduler: not running")
	ErrAlreadyStarted    = errors.New("scheduler: already started")
	ErrNoTypesRegistered = errors.New("scheduler: no task types registered")
	ErrShutdownTimedOut  = errors.New("scheduler: context expired before all workers joined")
)

// Scheduler owns the typed worker pools and the three lifecycle
// queues. Build one with New, call Startup once, Submit tasks while
// Running, and Shutdown exactly once to drain.
type Scheduler struct {
	registry *TypeRegistry
	logger   Logger
	metrics  *MetricsRecorder

	queues *queues

	state int32

	workers []*worker
	wg      sync.WaitGroup

	shutdownOnce sync.Once
}

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithLogger attaches a logger. Without this option, log calls are
// discarded.
func WithLogger(l Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithMetricsRecorder attaches an optional metrics sink. See metrics.go.
func WithMetricsRecorder(m *MetricsRecorder) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// New builds a Scheduler from a populated TypeRegistry. The registry
// must already contain every type the scheduler will serve; it is
// read-only from this point on.
func New(registry *TypeRegistry, opts ...Option) *Scheduler {
	s := &Scheduler{
		registry: registry,
		logger:   noopLogger{},
		state:    int32(lifecycleConfigured),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Startup validates the configured registry, spawns one goroutine per
// configured worker slot, and enters the Running state. Calling
// Startup a second time is a logged no-op: the original permits a
// single Startup; everything after that is ignored rather than
// erroring, since destroying and recreating worker pools mid-flight
// has no well-defined semantics here.
func (s *Scheduler) Startup() error {
	if !atomic.CompareAndSwapInt32(&s.state, int32(lifecycleConfigured), int32(lifecycleRunning)) {
		s.logger.Warn("Startup called more than once, ignoring")
		return nil
	}

	types := s.registry.AllTypes()
	if len(types) == 0 {
		return ErrNoTypesRegistered
	}

	s.queues = newQueues(types)

	workerID := 0
	for _, typ := range types {
		n := s.registry.WorkerCount(typ)
		for i := 0; i < n; i++ {
			w := &worker{id: workerID, taskType: typ, sched: s}
			s.workers = append(s.workers, w)
			s.wg.Add(1)
			go w.run()
			workerID++
		}
	}

	if s.metrics != nil {
		for _, typ := range types {
			s.metrics.setWorkerCount(typ, s.registry.WorkerCount(typ))
		}
	}

	s.logger.Info("scheduler started", "types", len(types), "workers", workerID)
	return nil
}

// SubmitOption customizes a single Submit call.
type SubmitOption func(*handle)

// WithPriority sets the priority of the task being submitted. The
// default is PriorityNormal.
func WithPriority(p Priority) SubmitOption {
	return func(h *handle) { h.priority = p }
}

// Submit enqueues task for execution. It never blocks: it takes the
// queue mutex, appends the task, notifies one worker of its type, and
// returns. Submitting after Shutdown has begun is a logged no-op; the
// task is simply discarded since the caller already surrendered
// ownership by calling Submit. Submitting a task of an unregistered
// type is likewise a logged no-op, returning ErrUnknownType so the
// caller can tell the difference if it cares to.
func (s *Scheduler) Submit(task Task, opts ...SubmitOption) error {
	if lifecycle(atomic.LoadInt32(&s.state)) != lifecycleRunning {
		s.logger.Warn("submit rejected, scheduler not running", "task_type", task.Type())
		return ErrNotRunning
	}

	if !s.registry.IsRegistered(task.Type()) {
		s.logger.Error("submit rejected, unknown task type", "task_type", task.Type())
		return fmt.Errorf("%w: %q", ErrUnknownType, task.Type())
	}

	h := newHandle(task, PriorityNormal)
	for _, opt := range opts {
		opt(h)
	}

	s.queues.enqueue(h)
	if s.metrics != nil {
		s.metrics.observeEnqueue(task.Type())
	}
	return nil
}

// recordDequeue notes that a worker has picked up a task of taskType,
// moving it from pending to executing in the optional metrics sink.
func (s *Scheduler) recordDequeue(taskType string) {
	if s.metrics != nil {
		s.metrics.observeDequeue(taskType)
	}
}

// RetrieveCompleted atomically drains and returns every task that has
// finished executing since the last call. Ownership of the returned
// tasks transfers to the caller.
func (s *Scheduler) RetrieveCompleted() []Completed {
	handles := s.queues.drainCompleted()
	out := make([]Completed, len(handles))
	for i, h := range handles {
		out[i] = h.toCompleted()
	}
	return out
}

func (s *Scheduler) recordCompletion(h *handle) {
	if s.metrics != nil {
		s.metrics.observeCompletion(h.task.Type())
	}
}

// Shutdown flips the draining flag, wakes every worker, waits for them
// to finish their current task and exit, then discards anything left
// in any queue. Safe to call from any thread; concurrent callers are
// serialized and only the first performs the work, matching the
// original's single-execution shutdown discipline. ctx only bounds how
// long the caller is willing to wait for workers to join — it is never
// threaded into a running task's Execute, which always runs to
// completion once started.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	var didWork bool
	var timedOut bool
	s.shutdownOnce.Do(func() {
		didWork = true

		if !atomic.CompareAndSwapInt32(&s.state, int32(lifecycleRunning), int32(lifecycleDraining)) {
			// Never started, or started but already torn down by a
			// racing call that lost shutdownOnce — nothing to drain.
			atomic.StoreInt32(&s.state, int32(lifecycleTerminated))
			return
		}

		s.logger.Info("scheduler shutting down")
		s.queues.setShuttingDown()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			timedOut = true
			s.logger.Error("shutdown context expired before all workers joined")
		}

		s.queues.mu.Lock()
		discarded := s.queues.drainAllLocked()
		s.queues.mu.Unlock()
		if len(discarded) > 0 {
			s.logger.Warn("discarded unfinished tasks at shutdown", "count", len(discarded))
		}

		atomic.StoreInt32(&s.state, int32(lifecycleTerminated))
		s.logger.Info("scheduler shutdown complete")
	})

	if !didWork {
		s.logger.Warn("shutdown called more than once, ignoring")
		return nil
	}
	if timedOut {
		return ErrShutdownTimedOut
	}
	return nil
}

// PendingCount returns the number of queued (not yet executing) tasks
// of typ, summed across both priorities.
func (s *Scheduler) PendingCount(typ string) int {
	s.queues.mu.Lock()
	defer s.queues.mu.Unlock()
	return s.queues.pendingCountLocked(typ)
}

// ExecutingCount returns the number of tasks of typ currently held by
// a worker.
func (s *Scheduler) ExecutingCount(typ string) int {
	s.queues.mu.Lock()
	defer s.queues.mu.Unlock()
	return s.queues.executingCountLocked(typ)
}

// CompletedCount returns the number of tasks of typ waiting in the
// completed queue for retrieval.
func (s *Scheduler) CompletedCount(typ string) int {
	s.queues.mu.Lock()
	defer s.queues.mu.Unlock()
	return s.queues.completedCountLocked(typ)
}

// HasExecuting reports whether any task of typ is currently executing.
func (s *Scheduler) HasExecuting(typ string) bool {
	return s.ExecutingCount(typ) > 0
}

// Registry exposes the scheduler's type registry for read-only
// inspection (e.g. by the command subsystem's `schedule.types`
// built-in).
func (s *Scheduler) Registry() *TypeRegistry {
	return s.registry
}

// defaultShutdownTimeout is used by callers that don't need a custom
// deadline on Shutdown.
const defaultShutdownTimeout = 30 * time.Second

// ShutdownWithDefaultTimeout is a convenience wrapper around Shutdown
// for callers that just want a reasonable bound on the join wait.
func (s *Scheduler) ShutdownWithDefaultTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
