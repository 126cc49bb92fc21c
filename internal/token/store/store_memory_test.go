package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alirk24/sejam-porfiling/internal/token"
)

func TestInMemoryStore_CurrentEmpty(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.Current(context.Background())
	assert.ErrorIs(t, err, token.ErrNotFound)
}

func TestInMemoryStore_ReplaceSupersedes(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	first := &token.AccessToken{Token: "first", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.Replace(ctx, first))

	second := &token.AccessToken{Token: "second", ExpiresAt: time.Now().Add(2 * time.Hour)}
	require.NoError(t, s.Replace(ctx, second))

	cur, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", cur.Token, "replace must supersede the prior token")
}

func TestInMemoryStore_CurrentReturnsCopy(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, &token.AccessToken{Token: "tok"}))

	cur, err := s.Current(ctx)
	require.NoError(t, err)
	cur.Token = "mutated"

	again, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", again.Token)
}
