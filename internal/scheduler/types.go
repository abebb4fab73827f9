// Package scheduler provides a typed worker-pool task dispatcher.
//
// Tasks are partitioned into independent pools by a short string type
// tag. Each type gets its own fixed number of worker goroutines, its
// own priority-ordered pending queue, and its own condition variable so
// that submitting a task for one type never wakes workers bound to
// another.
package scheduler

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
)

var typeNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Sentinel configuration errors. Registration failures are not fatal:
// the offending record is skipped and the caller is expected to log
// the returned error and continue with the remaining records.
var (
	ErrEmptyTypeName     = errors.New("scheduler: task type name must not be empty")
	ErrInvalidTypeName   = errors.New("scheduler: task type name must be alphanumeric or underscore")
	ErrInvalidWorkerCount = errors.New("scheduler: worker count must be positive")
)

// TypeDef is a single task-type configuration record: a name, a worker
// count, and an optional human description.
type TypeDef struct {
	Name        string
	Workers     int
	Description string
}

// TypeRegistry maps task-type names to worker counts. It is populated
// before the Scheduler is built (see BuildRegistry) and never mutated
// afterward during normal operation; a RWMutex guards it, and writes
// only ever happen during registration.
type TypeRegistry struct {
	mu      sync.RWMutex
	workers map[string]int
	descs   map[string]string
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		workers: make(map[string]int),
		descs:   make(map[string]string),
	}
}

// Register adds a type to the registry. A name that isn't a non-empty
// run of alphanumerics/underscores, or a non-positive worker count, is
// rejected: the registry is left unchanged and an error describing why
// is returned for the caller to log.
func (r *TypeRegistry) Register(name string, workers int, description string) error {
	if name == "" {
		return ErrEmptyTypeName
	}
	if !typeNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTypeName, name)
	}
	if workers <= 0 {
		return fmt.Errorf("%w: %d for type %q", ErrInvalidWorkerCount, workers, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers[name] = workers
	r.descs[name] = description
	return nil
}

// WorkerCount returns the configured worker count for name, or 0 if
// name isn't registered.
func (r *TypeRegistry) WorkerCount(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.workers[name]
}

// IsRegistered reports whether name has been registered.
func (r *TypeRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.workers[name]
	return ok
}

// Description returns the optional description registered for name.
func (r *TypeRegistry) Description(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.descs[name]
}

// AllTypes returns every registered type name in ascending order.
func (r *TypeRegistry) AllTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.workers))
	for name := range r.workers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalWorkerCount returns the sum of worker counts across all
// registered types.
func (r *TypeRegistry) TotalWorkerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, n := range r.workers {
		total += n
	}
	return total
}
