package scheduler

import (
	"context"
	"fmt"
	"time"
)

// worker is a long-lived goroutine bound to exactly one task type. It
// carries only an id, the bound type, and a non-owning back-reference
// to the scheduler: the scheduler owns the worker's goroutine, and the
// reference stays valid for the worker's entire lifetime.
type worker struct {
	id       int
	taskType string
	sched    *Scheduler
}

// run is the worker's goroutine body: wait for a task of this worker's
// type (or shutdown), execute it outside the lock, mark it completed,
// repeat. Mirrors the original engine's predicate-wait loop.
func (w *worker) run() {
	defer w.sched.wg.Done()

	w.sched.logger.Debug("worker started", "worker_id", w.id, "task_type", w.taskType)

	for {
		h := w.waitForTask()
		if h == nil {
			w.sched.logger.Debug("worker exiting", "worker_id", w.id, "task_type", w.taskType)
			return
		}

		h.workerID = w.id
		w.sched.recordDequeue(w.taskType)
		w.execute(h)
	}
}

// waitForTask blocks on this worker's type-specific condition variable
// until either shutdown is requested or a task of this worker's type
// is pending, then dequeues and returns it. Returns nil as soon as
// shutdown is observed, even if tasks of this type are still pending:
// Shutdown discards those once every worker has exited.
func (w *worker) waitForTask() *handle {
	q := w.sched.queues
	cond := q.cond[w.taskType]

	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.shuttingDown && !q.hasPendingLocked(w.taskType) {
		cond.Wait()
	}

	if q.shuttingDown {
		return nil
	}
	return q.dequeueLocked(w.taskType)
}

// execute runs h.task.Execute outside the queue lock, recovers any
// panic so one failing task never takes down its worker, and files the
// result into the completed queue.
func (w *worker) execute(h *handle) {
	q := w.sched.queues

	q.mu.Lock()
	h.startedAt = time.Now()
	q.mu.Unlock()

	w.sched.logger.Debug("task executing", "worker_id", w.id, "task_type", w.taskType, "task_id", h.id)

	h.err = w.runSafely(h)

	q.mu.Lock()
	h.completedAt = time.Now()
	q.completeLocked(h)
	q.mu.Unlock()

	w.sched.recordCompletion(h)

	w.sched.logger.Debug("task completed", "worker_id", w.id, "task_type", w.taskType, "task_id", h.id, "error", h.err)
}

// runSafely calls task.Execute and converts a panic into an error so
// the worker loop never terminates because of a misbehaving task.
func (w *worker) runSafely(h *handle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.sched.logger.Error("task panicked", "worker_id", w.id, "task_id", h.id, "recovered", r)
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return h.task.Execute(context.Background())
}
