package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTTL(t *testing.T) {
	t.Run("typical provider value", func(t *testing.T) {
		d, err := ParseTTL("01:30:00")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, d)
	})

	t.Run("hours beyond a day", func(t *testing.T) {
		d, err := ParseTTL("24:00:00")
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, d)
	})

	t.Run("seconds only", func(t *testing.T) {
		d, err := ParseTTL("00:00:45")
		require.NoError(t, err)
		assert.Equal(t, 45*time.Second, d)
	})

	t.Run("missing component", func(t *testing.T) {
		_, err := ParseTTL("01:30")
		assert.Error(t, err)
	})

	t.Run("non-numeric component", func(t *testing.T) {
		_, err := ParseTTL("aa:00:00")
		assert.Error(t, err)
	})

	t.Run("negative component", func(t *testing.T) {
		_, err := ParseTTL("01:-5:00")
		assert.Error(t, err)
	})
}

func TestAccessTokenExpired(t *testing.T) {
	now := time.Now()

	t.Run("future expiry is valid", func(t *testing.T) {
		tok := &AccessToken{ExpiresAt: now.Add(time.Minute)}
		assert.False(t, tok.Expired(now))
	})

	t.Run("expiry exactly now is stale", func(t *testing.T) {
		tok := &AccessToken{ExpiresAt: now}
		assert.True(t, tok.Expired(now))
	})

	t.Run("past expiry is stale", func(t *testing.T) {
		tok := &AccessToken{ExpiresAt: now.Add(-time.Second)}
		assert.True(t, tok.Expired(now))
	})
}
