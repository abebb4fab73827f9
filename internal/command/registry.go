package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Registry is the command subsystem: a table of named callbacks plus a
// bounded execution history. Safe for concurrent use.
//
// Locking discipline: the original engine holds its commands mutex for
// the entire duration of the callback invocation. This port instead
// clones the Spec under a read lock, releases the lock, and only then
// invokes the callback (see Execute). A callback is free to register or
// unregister other commands — a realistic case once commands are
// wired to a CLI or HTTP bridge that can itself reach back into the
// registry — without deadlocking against its own caller. The tradeoff,
// documented here rather than hidden, is that a second goroutine can
// unregister or replace a command while it is mid-execution; the
// callback that is already running simply finishes with the Spec it
// started with.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Spec

	history *History
}

// NewRegistry builds an empty registry with its built-in commands
// (help, history, clear_history) already registered.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]Spec),
		history:  NewHistory(),
	}
	r.registerBuiltins()
	return r
}

// Register adds or replaces a command. Returns an error if name is
// empty or spec.Callback is nil.
func (r *Registry) Register(spec Spec) error {
	if spec.Name == "" {
		return fmt.Errorf("command: spec name must not be empty")
	}
	if spec.Callback == nil {
		return fmt.Errorf("command: spec %q has a nil callback", spec.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[spec.Name] = spec
	return nil
}

// Unregister removes a command. Reports whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.commands[name]; !ok {
		return false
	}
	delete(r.commands, name)
	return true
}

// IsRegistered reports whether name is currently registered.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[name]
	return ok
}

// Execute parses line, records it in history, and runs the matching
// command. A parse failure is recorded nowhere (there's no command
// name to attribute it to) and returns StatusError directly.
func (r *Registry) Execute(line string) Result {
	args, err := Parse(line)
	if err != nil {
		return Error("failed to parse command", err.Error())
	}

	r.history.Add(line)
	return r.ExecuteWithArgs(args)
}

// ExecuteWithArgs runs the command named by args.CommandName directly,
// skipping both parsing and history recording — for callers that
// already hold a parsed Args (e.g. a caller re-dispatching a command
// programmatically). Takes only a read lock to clone the Spec before
// releasing it ahead of the call. See the Registry doc comment for the
// locking discipline this encodes.
func (r *Registry) ExecuteWithArgs(args *Args) (result Result) {
	r.mu.RLock()
	spec, ok := r.commands[args.CommandName]
	r.mu.RUnlock()

	if !ok {
		return NotFound(fmt.Sprintf("unknown command: %s", args.CommandName))
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = Error("command callback panicked", fmt.Sprintf("%v", rec))
		}
	}()
	return spec.Callback(args)
}

// History exposes the registry's command history for external
// inspection (e.g. by an introspection HTTP endpoint).
func (r *Registry) History() *History {
	return r.history
}

// AllCommands returns every registered command's Spec, sorted by
// name.
func (r *Registry) AllCommands() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Spec, 0, len(r.commands))
	for _, spec := range r.commands {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Suggestions returns every registered command name whose name
// contains partial as a case-insensitive prefix, sorted alphabetically.
func (r *Registry) Suggestions(partial string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	partialLower := strings.ToLower(partial)
	var out []string
	for name := range r.commands {
		if strings.HasPrefix(strings.ToLower(name), partialLower) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// registerBuiltins installs help, history and clear_history, mirroring
// RegisterBuiltInCommands from the original engine.
func (r *Registry) registerBuiltins() {
	r.commands["help"] = Spec{
		Name:        "help",
		Description: "List registered commands, or show usage for one command",
		Usage:       "help [command]",
		Callback:    r.execHelp,
	}
	r.commands["history"] = Spec{
		Name:        "history",
		Description: "Show recently executed commands",
		Usage:       "history [count]",
		Callback:    r.execHistory,
	}
	r.commands["clear_history"] = Spec{
		Name:        "clear_history",
		Description: "Clear the command history",
		Usage:       "clear_history",
		Callback:    r.execClearHistory,
	}
}

func (r *Registry) execHelp(args *Args) Result {
	if v, ok := args.GetPositional(0); ok {
		name := v.AsString()
		r.mu.RLock()
		spec, ok := r.commands[name]
		r.mu.RUnlock()
		if !ok {
			return NotFound(fmt.Sprintf("unknown command: %s", name))
		}
		return Success(fmt.Sprintf("%s - %s", spec.Usage, spec.Description))
	}

	r.mu.RLock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)

	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("%d registered commands", len(names)),
		Details: strings.Join(names, ", "),
	}
}

// defaultHistoryListCount matches the original ExecuteHistory's
// default listing size of 20 when no count argument is given.
const defaultHistoryListCount = 20

func (r *Registry) execHistory(args *Args) Result {
	count := defaultHistoryListCount
	if v, ok := args.GetPositional(0); ok {
		if n, ok := v.AsInt(); ok && n > 0 {
			count = n
		}
	}

	entries := r.history.GetRecent(count)
	if len(entries) == 0 {
		return Success("history is empty")
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = strconv.Itoa(i+1) + ": " + e
	}
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("%d entries", len(entries)),
		Details: strings.Join(lines, "\n"),
	}
}

func (r *Registry) execClearHistory(args *Args) Result {
	r.history.Clear()
	return Success("history cleared")
}
