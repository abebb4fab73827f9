package command

import "sync"

// defaultHistorySize matches the original engine's CommandSubsystem
// constructor, which builds its CommandHistory with a max size of 1000.
const defaultHistorySize = 1000

// History is a bounded ring of executed command lines with a
// readline-style navigation cursor. Empty lines and consecutive
// duplicates are never recorded. Safe for concurrent use.
type History struct {
	mu      sync.Mutex
	entries []string
	maxSize int
	navIdx  int
}

// NewHistory builds a History bounded to the original engine's default
// capacity of 1000 entries.
func NewHistory() *History {
	return &History{maxSize: defaultHistorySize}
}

// Add records line unless it is empty or equal to the most recent
// entry. Appending always resets the navigation cursor to just past
// the end.
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		h.navIdx = len(h.entries)
		return
	}

	h.entries = append(h.entries, line)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
	h.navIdx = len(h.entries)
}

// Clear empties the history and resets the navigation cursor.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.navIdx = 0
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// GetRecent returns up to count of the most recently recorded entries,
// oldest first.
func (h *History) GetRecent(count int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if count <= 0 || len(h.entries) == 0 {
		return nil
	}
	if count > len(h.entries) {
		count = len(h.entries)
	}
	start := len(h.entries) - count
	out := make([]string, count)
	copy(out, h.entries[start:])
	return out
}

// SetMaxSize shrinks the history to at most n entries (dropping the
// oldest first) and clamps the navigation cursor. n <= 0 clears the
// history entirely.
func (h *History) SetMaxSize(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 {
		h.maxSize = 0
		h.entries = nil
		h.navIdx = 0
		return
	}
	h.maxSize = n
	for len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
	if h.navIdx > len(h.entries) {
		h.navIdx = len(h.entries)
	}
}

// NavigatePrevious moves the cursor one step back and returns the
// entry it now points at. Once the cursor reaches the oldest entry it
// saturates there: further calls keep returning that same entry
// instead of "".
func (h *History) NavigatePrevious() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return ""
	}
	if h.navIdx > 0 {
		h.navIdx--
	}
	return h.entries[h.navIdx]
}

// NavigateNext moves the cursor one step forward and returns the entry
// it now points at, or "" once the cursor has moved past the newest
// entry.
func (h *History) NavigateNext() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.navIdx >= len(h.entries) {
		return ""
	}
	h.navIdx++
	if h.navIdx >= len(h.entries) {
		return ""
	}
	return h.entries[h.navIdx]
}
