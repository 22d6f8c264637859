package utils

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestUUIDGenerator_IssuesOrderedV7(t *testing.T) {
	g := NewUUIDGenerator()

	ids := make([]string, 0, 64)
	seen := make(map[string]struct{}, 64)
	for range 64 {
		id := g.Generate()
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	assert.True(t, sort.StringsAreSorted(ids), "ids must sort in creation order")
}

func TestUUIDGenerator_FallsBackWhenEntropyFails(t *testing.T) {
	g := &UUIDGenerator{entropy: failingReader{}}

	parsed, err := uuid.Parse(g.Generate())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}
