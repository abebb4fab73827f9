package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTypeTable(t *testing.T) {
	defs := DefaultTypeTable()
	require.Len(t, defs, 4)

	byName := make(map[string]TypeDef, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}

	assert.Equal(t, 4, byName["Generic"].Workers)
	assert.Equal(t, 2, byName["FileIO"].Workers)
	assert.Equal(t, 2, byName["ChunkGen"].Workers)
	assert.Equal(t, 1, byName["Rendering"].Workers)
}

func TestBuildRegistryFallsBackOnError(t *testing.T) {
	src := failingSource{}
	reg := BuildRegistry(src, nil)

	assert.ElementsMatch(t, []string{"ChunkGen", "FileIO", "Generic", "Rendering"}, reg.AllTypes())
}

func TestBuildRegistryFallsBackOnEmpty(t *testing.T) {
	reg := BuildRegistry(NewStaticTypeTableSource(nil), nil)
	assert.ElementsMatch(t, []string{"ChunkGen", "FileIO", "Generic", "Rendering"}, reg.AllTypes())
}

func TestBuildRegistryCoercesNonPositiveWorkers(t *testing.T) {
	src := NewStaticTypeTableSource([]TypeDef{
		{Name: "Custom", Workers: 0, Description: "zero workers"},
	})
	reg := BuildRegistry(src, nil)

	require.True(t, reg.IsRegistered("Custom"))
	assert.Equal(t, 1, reg.WorkerCount("Custom"))
}

func TestBuildRegistrySkipsInvalidRecords(t *testing.T) {
	src := NewStaticTypeTableSource([]TypeDef{
		{Name: "Good", Workers: 2},
		{Name: "Bad Name", Workers: 2},
	})
	reg := BuildRegistry(src, nil)

	assert.True(t, reg.IsRegistered("Good"))
	assert.False(t, reg.IsRegistered("Bad Name"))
}

type failingSource struct{}

func (failingSource) Load() ([]TypeDef, error) {
	return nil, errors.New("boom")
}
