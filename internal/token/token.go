// Package token owns the cached Sejam access token and its refresh lifecycle.
package token

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

// AccessToken is the single cached upstream credential. Tokens are never
// updated in place; a refresh replaces the stored token wholesale.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is unusable at the given instant.
// Expiry is inclusive: a token expiring exactly now is already stale.
func (t *AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// ErrNotFound keeps storage-specific 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "access token not found")

// ParseTTL converts the provider's "HH:MM:SS" duration string into a
// time.Duration. Hours are not capped at 23; the provider is free to return
// values like "24:00:00".
func ParseTTL(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed ttl %q: want HH:MM:SS", s)
	}
	var total time.Duration
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("malformed ttl %q: component %q", s, p)
		}
		total += time.Duration(n) * units[i]
	}
	return total, nil
}
