package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryAddSkipsEmptyAndConsecutiveDuplicates(t *testing.T) {
	h := NewHistory()
	h.Add("")
	h.Add("echo hi")
	h.Add("echo hi")
	h.Add("echo bye")
	h.Add("echo bye")
	h.Add("echo hi")

	assert.Equal(t, []string{"echo hi", "echo bye", "echo hi"}, h.GetRecent(10))
}

func TestHistoryMaxSizeEviction(t *testing.T) {
	h := NewHistory()
	h.SetMaxSize(3)

	h.Add("one")
	h.Add("two")
	h.Add("three")
	h.Add("four")

	assert.Equal(t, []string{"two", "three", "four"}, h.GetRecent(10))
}

func TestHistoryGetRecentCappedByCount(t *testing.T) {
	h := NewHistory()
	h.Add("one")
	h.Add("two")
	h.Add("three")

	assert.Equal(t, []string{"two", "three"}, h.GetRecent(2))
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	h.Add("one")
	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.GetRecent(10))
}

// Navigation walk over a 3-entry history with max size 3: Previous
// three times reaches the oldest entry, and a fourth call saturates
// there instead of going further back; Next then walks forward, ending
// on an empty "new line" sentinel.
func TestHistoryNavigation(t *testing.T) {
	h := NewHistory()
	h.SetMaxSize(3)
	h.Add("a")
	h.Add("b")
	h.Add("c")

	assert.Equal(t, "c", h.NavigatePrevious())
	assert.Equal(t, "b", h.NavigatePrevious())
	assert.Equal(t, "a", h.NavigatePrevious())
	assert.Equal(t, "a", h.NavigatePrevious())

	assert.Equal(t, "b", h.NavigateNext())
	assert.Equal(t, "c", h.NavigateNext())
	assert.Equal(t, "", h.NavigateNext())
	assert.Equal(t, "", h.NavigateNext())
}
