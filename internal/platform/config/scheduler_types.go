package config

import "github.com/enigma-engine/taskrunner/internal/scheduler"

// SchedulerTypeSource adapts a loaded Config's task-type table into a
// scheduler.TypeTableSource, so cmd/taskrunnerd can build its
// TypeRegistry straight from the same config file/env-var layer that
// supplies everything else.
type SchedulerTypeSource struct {
	cfg *Config
}

// NewSchedulerTypeSource wraps cfg's Scheduler.TaskTypes table.
func NewSchedulerTypeSource(cfg *Config) *SchedulerTypeSource {
	return &SchedulerTypeSource{cfg: cfg}
}

// Load converts the configured task-type rows into scheduler.TypeDef
// values. An empty table is not an error here: scheduler.BuildRegistry
// falls back to its own defaults when Load returns nothing.
func (s *SchedulerTypeSource) Load() ([]scheduler.TypeDef, error) {
	defs := make([]scheduler.TypeDef, 0, len(s.cfg.Scheduler.TaskTypes))
	for _, t := range s.cfg.Scheduler.TaskTypes {
		defs = append(defs, scheduler.TypeDef{
			Name:        t.Name,
			Workers:     t.Workers,
			Description: t.Description,
		})
	}
	return defs, nil
}
