package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alirk24/sejam-porfiling/internal/platform/metrics"
	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

// Store defines the persistence interface for the cached access token.
// Error Contract: Current returns ErrNotFound when no token is stored.
// Replace is atomic: readers never observe a state with zero tokens.
type Store interface {
	Current(ctx context.Context) (*AccessToken, error)
	Replace(ctx context.Context, tok *AccessToken) error
}

// Issuer obtains a fresh token from the upstream provider. The raw ttl string
// is in "HH:MM:SS" form; parsing it is this package's concern.
type Issuer interface {
	IssueToken(ctx context.Context) (accessToken, ttl string, err error)
}

// ErrorSink receives raw failure payloads for forensic logging.
type ErrorSink interface {
	Append(ctx context.Context, payload string) error
}

// Manager hands out a valid bearer token, refreshing lazily on expiry.
// The mutex turns the check-then-refresh sequence into a single get-or-refresh
// operation, so concurrent requests trigger at most one upstream refresh.
type Manager struct {
	mu     sync.Mutex
	store  Store
	issuer Issuer
	errs   ErrorSink
	loc    *time.Location
	logger *slog.Logger
	m      *metrics.Metrics
}

// Option configures the Manager.
type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithMetrics(mx *metrics.Metrics) Option {
	return func(m *Manager) {
		m.m = mx
	}
}

// WithLocation overrides the provider timezone, mainly for tests.
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) {
		m.loc = loc
	}
}

// NewManager creates a token manager. Expiry is evaluated in the provider's
// timezone (Asia/Tehran), not the host's; a fixed +03:30 zone is used when
// tzdata is unavailable.
func NewManager(store Store, issuer Issuer, errs ErrorSink, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		issuer: issuer,
		errs:   errs,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.loc == nil {
		loc, err := time.LoadLocation("Asia/Tehran")
		if err != nil {
			loc = time.FixedZone("IRST", 3*3600+1800)
		}
		m.loc = loc
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// GetValidToken returns a usable bearer token, refreshing it first if the
// stored one is missing or expired. It never falls back silently: a failed
// refresh is logged to the error sink and propagated.
func (m *Manager) GetValidToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().In(m.loc)

	cur, err := m.store.Current(ctx)
	switch {
	case err == nil && !cur.Expired(now):
		return cur.Token, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "read cached token")
	}

	return m.refresh(ctx, now)
}

func (m *Manager) refresh(ctx context.Context, now time.Time) (string, error) {
	m.logger.InfoContext(ctx, "refreshing access token")

	raw, ttlStr, err := m.issuer.IssueToken(ctx)
	if err != nil {
		m.recordFailure(ctx, fmt.Sprintf("token refresh failed: %v", err))
		return "", err
	}

	ttl, err := ParseTTL(ttlStr)
	if err != nil {
		m.recordFailure(ctx, fmt.Sprintf("token refresh returned bad ttl: %v", err))
		return "", dErrors.Wrap(err, dErrors.CodeUpstream, "parse token ttl")
	}

	tok := &AccessToken{
		Token:     raw,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := m.store.Replace(ctx, tok); err != nil {
		m.recordFailure(ctx, fmt.Sprintf("token store replace failed: %v", err))
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "store refreshed token")
	}

	if m.m != nil {
		m.m.TokenRefreshes.WithLabelValues(metrics.OutcomeSuccess).Inc()
	}
	m.logger.InfoContext(ctx, "access token refreshed", "expires_at", tok.ExpiresAt)
	return tok.Token, nil
}

func (m *Manager) recordFailure(ctx context.Context, payload string) {
	if m.m != nil {
		m.m.TokenRefreshes.WithLabelValues(metrics.OutcomeUpstream).Inc()
	}
	if m.errs == nil {
		return
	}
	if err := m.errs.Append(ctx, payload); err != nil {
		m.logger.ErrorContext(ctx, "error log append failed", "error", err)
	}
}
