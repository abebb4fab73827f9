package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRegistryRegister(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		workers int
		wantErr error
	}{
		{name: "valid", typ: "Generic", workers: 4},
		{name: "empty name", typ: "", workers: 4, wantErr: ErrEmptyTypeName},
		{name: "invalid characters", typ: "Bad-Name!", workers: 4, wantErr: ErrInvalidTypeName},
		{name: "zero workers", typ: "Generic", workers: 0, wantErr: ErrInvalidWorkerCount},
		{name: "negative workers", typ: "Generic", workers: -1, wantErr: ErrInvalidWorkerCount},
		{name: "underscore allowed", typ: "Chunk_Gen", workers: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTypeRegistry()
			err := r.Register(tt.typ, tt.workers, "desc")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, r.IsRegistered(tt.typ))
				return
			}
			require.NoError(t, err)
			assert.True(t, r.IsRegistered(tt.typ))
			assert.Equal(t, tt.workers, r.WorkerCount(tt.typ))
		})
	}
}

func TestTypeRegistryUnregisteredDefaults(t *testing.T) {
	r := NewTypeRegistry()
	assert.False(t, r.IsRegistered("Nope"))
	assert.Equal(t, 0, r.WorkerCount("Nope"))
	assert.Empty(t, r.Description("Nope"))
}

func TestTypeRegistryAllTypesSorted(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register("Rendering", 1, ""))
	require.NoError(t, r.Register("FileIO", 2, ""))
	require.NoError(t, r.Register("ChunkGen", 2, ""))

	assert.Equal(t, []string{"ChunkGen", "FileIO", "Rendering"}, r.AllTypes())
}

func TestTypeRegistryTotalWorkerCount(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register("A", 3, ""))
	require.NoError(t, r.Register("B", 2, ""))
	assert.Equal(t, 5, r.TotalWorkerCount())
}
