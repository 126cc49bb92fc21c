// Package handler exposes the gateway's public KYC endpoints.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alirk24/sejam-porfiling/internal/platform/metrics"
	"github.com/alirk24/sejam-porfiling/internal/platform/middleware"
	"github.com/alirk24/sejam-porfiling/internal/profile/models"
	"github.com/alirk24/sejam-porfiling/internal/profile/service"
	"github.com/alirk24/sejam-porfiling/internal/transport/httputil"
	"github.com/alirk24/sejam-porfiling/pkg/domain"
	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

// Service defines the profile operations the handlers relay.
type Service interface {
	RequestOTP(ctx context.Context, id domain.UniqueIdentifier) *service.OTPResponse
	ValidateOTP(ctx context.Context, id domain.UniqueIdentifier, otp domain.OTPCode) (*service.VerifiedProfile, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
	m       *metrics.Metrics
}

// Option configures the Handler.
type Option func(*Handler)

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.m = m
	}
}

func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/get_otp/{identifier}", h.HandleGetOTP)
	r.Get("/validate_otp/{identifier}/{otpCode}", h.HandleValidateOTP)
}

// HandleGetOTP relays an OTP request upstream. The response always carries
// HTTP 200 with the relay outcome in the body; consumers of the legacy
// contract inspect the "status" field, not the outer status code.
func (h *Handler) HandleGetOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	defer h.observe("get_otp", time.Now())

	id, err := domain.ParseUniqueIdentifier(chi.URLParam(r, "identifier"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid unique identifier"))
		return
	}

	resp := h.service.RequestOTP(ctx, id)
	if resp.Error != "" {
		h.logger.WarnContext(ctx, "otp relay failed",
			"identifier", id.String(),
			"status", resp.Status,
			"request_id", requestID,
		)
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleValidateOTP exchanges the code for the person's normalized profile.
// Failures come back as HTTP 200 with a generic error body; the raw detail
// stays in the error log.
func (h *Handler) HandleValidateOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	defer h.observe("validate_otp", time.Now())

	id, err := domain.ParseUniqueIdentifier(chi.URLParam(r, "identifier"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid unique identifier"))
		return
	}
	otp, err := domain.ParseOTPCode(chi.URLParam(r, "otpCode"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid otp code"))
		return
	}

	verified, err := h.service.ValidateOTP(ctx, id, otp)
	if err != nil {
		h.logger.ErrorContext(ctx, "otp validation failed",
			"identifier", id.String(),
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteJSON(w, http.StatusOK, &ErrorResponse{Error: errorMessage(err)})
		return
	}

	switch verified.Profile.Kind {
	case models.LegalPerson:
		httputil.WriteJSON(w, http.StatusOK, toLegalResponse(verified))
	default:
		httputil.WriteJSON(w, http.StatusOK, toPrivateResponse(&verified.Profile))
	}
}

// errorMessage maps coded failures to the three generic bodies the legacy
// contract allows. Anything unrecognized degrades to the catch-all.
func errorMessage(err error) string {
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) {
		return "Something went wrong"
	}
	switch domainErr.Code {
	case dErrors.CodeInvalidOTP:
		return "invalid OTP"
	case dErrors.CodeUpstream, dErrors.CodeUpstreamOutage, dErrors.CodeTimeout:
		return "Error retrieving profile data"
	default:
		return "Something went wrong"
	}
}

func (h *Handler) observe(endpoint string, start time.Time) {
	if h.m != nil {
		h.m.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}
