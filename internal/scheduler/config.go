package scheduler

// TypeTableSource supplies the task-type table a Scheduler is built
// from. The scheduler itself never reads configuration files or env
// vars directly — that's delegated to an external collaborator, the
// same way spec.md treats config-file parsing as out of scope for the
// scheduler core.
type TypeTableSource interface {
	Load() ([]TypeDef, error)
}

// DefaultTypeTable returns the hardcoded fallback used when no
// configuration source is available: Generic=4, FileIO=2, ChunkGen=2,
// Rendering=1.
func DefaultTypeTable() []TypeDef {
	return []TypeDef{
		{Name: "Generic", Workers: 4, Description: "General-purpose CPU-bound tasks"},
		{Name: "FileIO", Workers: 2, Description: "File I/O operations"},
		{Name: "ChunkGen", Workers: 2, Description: "Procedural chunk generation"},
		{Name: "Rendering", Workers: 1, Description: "Render preparation tasks"},
	}
}

// StaticTypeTableSource is an in-memory TypeTableSource, useful for
// tests and for callers that already have the table (e.g. built from
// CLI flags).
type StaticTypeTableSource struct {
	Types []TypeDef
}

// NewStaticTypeTableSource wraps a fixed slice of type definitions.
func NewStaticTypeTableSource(types []TypeDef) *StaticTypeTableSource {
	return &StaticTypeTableSource{Types: types}
}

// Load returns the wrapped slice.
func (s *StaticTypeTableSource) Load() ([]TypeDef, error) {
	return s.Types, nil
}

// BuildRegistry loads types from src (falling back to
// DefaultTypeTable on error or an empty result) and registers each one
// on a fresh TypeRegistry, logging and skipping any record the
// registry itself rejects. It never returns an error: a misconfigured
// or missing source degrades to defaults rather than preventing
// startup, matching spec.md §6.
func BuildRegistry(src TypeTableSource, logger Logger) *TypeRegistry {
	if logger == nil {
		logger = noopLogger{}
	}

	defs, err := src.Load()
	if err != nil {
		logger.Warn("failed to load task type table, using defaults", "error", err)
		defs = nil
	}
	if len(defs) == 0 {
		defs = DefaultTypeTable()
	}

	reg := NewTypeRegistry()
	for _, d := range defs {
		threads := d.Workers
		if threads <= 0 {
			threads = 1
		}
		if err := reg.Register(d.Name, threads, d.Description); err != nil {
			logger.Warn("skipping invalid task type record", "type", d.Name, "error", err)
		}
	}
	return reg
}
