package errorlog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_AppendAndList(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, fmt.Sprintf("upstream failure %d", i)))
	}

	entries, err := store.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "upstream failure 4", entries[0].Payload, "newest entry first")
	assert.Equal(t, "upstream failure 2", entries[2].Payload)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestInMemoryStore_ListAllWhenLimitExceedsCount(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "only one"))

	entries, err := store.List(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
