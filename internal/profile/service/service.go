// Package service orchestrates the OTP relay and profile verification flows.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alirk24/sejam-porfiling/internal/platform/metrics"
	"github.com/alirk24/sejam-porfiling/internal/platform/tracer"
	"github.com/alirk24/sejam-porfiling/internal/profile/models"
	"github.com/alirk24/sejam-porfiling/internal/sejam"
	"github.com/alirk24/sejam-porfiling/pkg/domain"
	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

// TokenProvider hands out a valid upstream bearer token.
type TokenProvider interface {
	GetValidToken(ctx context.Context) (string, error)
}

// UpstreamClient covers the two provider calls the service relays.
type UpstreamClient interface {
	RequestOTP(ctx context.Context, bearer, identifier string) (*sejam.OTPResult, error)
	FetchProfile(ctx context.Context, bearer, identifier, otp string) (*sejam.FetchedProfile, error)
}

// Store persists verified profiles alongside their shareholder sets.
type Store interface {
	Save(ctx context.Context, p *models.Profile, shareholders []models.Shareholder) error
}

// ErrorSink receives raw failure payloads for forensic logging.
type ErrorSink interface {
	Append(ctx context.Context, payload string) error
}

// EventPublisher announces persisted profiles to downstream consumers.
type EventPublisher interface {
	ProfileVerified(ctx context.Context, profile *models.Profile, shareholders int)
}

// OTPResponse reports the outcome of relaying an OTP request. The upstream
// status is forwarded verbatim so callers can see exactly what the provider
// said; transport failures use a synthetic status outside the HTTP range.
type OTPResponse struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
	Error  string `json:"error,omitempty"`
}

// VerifiedProfile is the normalized result of a successful OTP validation.
type VerifiedProfile struct {
	Profile      models.Profile
	Shareholders []models.Shareholder
}

// Service relays OTP requests and exchanges validated OTPs for normalized,
// persisted profiles.
type Service struct {
	tokens   TokenProvider
	upstream UpstreamClient
	store    Store
	errs     ErrorSink
	events   EventPublisher
	tracer   tracer.Tracer
	m        *metrics.Metrics
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.m = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithEvents(p EventPublisher) Option {
	return func(s *Service) {
		s.events = p
	}
}

// NewService wires the OTP and profile flows together.
func NewService(tokens TokenProvider, upstream UpstreamClient, store Store, errs ErrorSink, opts ...Option) *Service {
	s := &Service{
		tokens:   tokens,
		upstream: upstream,
		store:    store,
		errs:     errs,
		tracer:   tracer.NewNoop(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestOTP relays an OTP request for the identifier. It never returns an
// error: token and transport failures are folded into the response with the
// synthetic transport status, mirroring what the provider path produces.
func (s *Service) RequestOTP(ctx context.Context, id domain.UniqueIdentifier) *OTPResponse {
	ctx, span := s.tracer.Start(ctx, tracer.SpanRequestOTP,
		tracer.String(tracer.AttrIdentifier, id.String()))

	bearer, err := s.tokens.GetValidToken(ctx)
	if err != nil {
		span.End(err)
		s.countOTP(metrics.OutcomeUpstream)
		s.logger.ErrorContext(ctx, "otp relay blocked on token", "identifier", id.String(), "error", err)
		return &OTPResponse{
			ID:     id.String(),
			Status: sejam.StatusTransportFailure,
			Error:  "connection to provider failed",
		}
	}

	start := time.Now()
	result, err := s.upstream.RequestOTP(ctx, bearer, id.String())
	s.observeUpstream("kyc_otp", start)
	if err != nil {
		span.End(err)
		s.countOTP(metrics.OutcomeInternal)
		s.appendError(ctx, fmt.Sprintf("otp request failed for %s: %v", id, err))
		return &OTPResponse{
			ID:     id.String(),
			Status: sejam.StatusTransportFailure,
			Error:  "connection to provider failed",
		}
	}

	span.SetAttributes(tracer.Int(tracer.AttrUpstreamStatus, result.Status))

	if !result.OK() {
		span.End(nil)
		if result.Status == sejam.StatusTransportFailure {
			s.countOTP(metrics.OutcomeTransport)
		} else {
			s.countOTP(metrics.OutcomeUpstream)
		}
		s.appendError(ctx, fmt.Sprintf("otp request for %s returned %d: %s", id, result.Status, result.RawBody))
		return &OTPResponse{
			ID:     result.Identifier,
			Status: result.Status,
			Error:  result.ErrorDetail,
		}
	}

	span.End(nil)
	s.countOTP(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "otp relayed", "identifier", id.String(), "status", result.Status)
	return &OTPResponse{ID: result.Identifier, Status: result.Status}
}

// ValidateOTP exchanges the code for the person's profile, normalizes it,
// persists it, and announces the verification. Failures come back as coded
// domain errors; the raw upstream detail goes to the error sink, never to
// the caller.
func (s *Service) ValidateOTP(ctx context.Context, id domain.UniqueIdentifier, otp domain.OTPCode) (*VerifiedProfile, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanFetchProfile,
		tracer.String(tracer.AttrIdentifier, id.String()))

	bearer, err := s.tokens.GetValidToken(ctx)
	if err != nil {
		span.End(err)
		s.countFetch(metrics.OutcomeUpstream)
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamOutage, "obtain provider token")
	}

	start := time.Now()
	fetched, err := s.upstream.FetchProfile(ctx, bearer, id.String(), otp.String())
	s.observeUpstream("profiles", start)
	if err != nil {
		span.End(err)
		return nil, s.classifyFetchError(ctx, id, err)
	}

	profile, shareholders, err := normalizeProfile(fetched)
	if err != nil {
		span.End(err)
		s.countFetch(metrics.OutcomeInternal)
		s.appendError(ctx, fmt.Sprintf("normalize profile for %s: %v", id, err))
		return nil, err
	}

	span.SetAttributes(
		tracer.String(tracer.AttrPersonType, string(profile.Kind)),
		tracer.Int(tracer.AttrShareholders, len(shareholders)),
	)

	if err := s.store.Save(ctx, profile, shareholders); err != nil {
		span.End(err)
		s.countFetch(metrics.OutcomeInternal)
		s.appendError(ctx, fmt.Sprintf("persist profile for %s: %v", id, err))
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persist profile")
	}

	if s.events != nil {
		s.events.ProfileVerified(ctx, profile, len(shareholders))
	}

	span.End(nil)
	s.countFetch(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "profile verified",
		"identifier", id.String(),
		"person_type", string(profile.Kind),
		"shareholders", len(shareholders),
	)
	return &VerifiedProfile{Profile: *profile, Shareholders: shareholders}, nil
}

// classifyFetchError maps an upstream fetch failure to a coded domain error
// after recording the raw detail.
func (s *Service) classifyFetchError(ctx context.Context, id domain.UniqueIdentifier, err error) error {
	var apiErr *sejam.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.InvalidOTP():
			s.countFetch(metrics.OutcomeInvalidOTP)
			s.logger.InfoContext(ctx, "otp rejected", "identifier", id.String())
			return dErrors.New(dErrors.CodeInvalidOTP, "invalid OTP")
		case apiErr.Transport():
			s.countFetch(metrics.OutcomeTransport)
			s.appendError(ctx, fmt.Sprintf("profile fetch for %s: %v", id, apiErr))
			return dErrors.Wrap(err, dErrors.CodeUpstreamOutage, "provider unreachable")
		default:
			s.countFetch(metrics.OutcomeUpstream)
			s.appendError(ctx, fmt.Sprintf("profile fetch for %s returned %d: %s", id, apiErr.Status, apiErr.Body))
			return dErrors.Wrap(err, dErrors.CodeUpstream, "provider rejected profile fetch")
		}
	}
	s.countFetch(metrics.OutcomeInternal)
	s.appendError(ctx, fmt.Sprintf("profile fetch for %s: %v", id, err))
	return dErrors.Wrap(err, dErrors.CodeInternal, "profile fetch")
}

func (s *Service) appendError(ctx context.Context, payload string) {
	if s.errs == nil {
		return
	}
	if err := s.errs.Append(ctx, payload); err != nil {
		s.logger.ErrorContext(ctx, "error log append failed", "error", err)
	}
}

func (s *Service) countOTP(outcome string) {
	if s.m != nil {
		s.m.OTPRequests.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) countFetch(outcome string) {
	if s.m != nil {
		s.m.ProfileFetches.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) observeUpstream(call string, start time.Time) {
	if s.m != nil {
		s.m.UpstreamLatency.WithLabelValues(call).Observe(time.Since(start).Seconds())
	}
}
