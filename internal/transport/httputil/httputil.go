package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

// WriteJSON encodes a response as JSON. HTML escaping is disabled so Persian
// (and any other non-ASCII) field values reach clients as written, matching
// the upstream provider's encoding.
func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = enc.Encode(response)
}

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and error responses.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status := DomainCodeToHTTPStatus(domainErr.Code)
		code := DomainCodeToHTTPCode(domainErr.Code)
		response := map[string]string{
			"error": code,
		}
		if domainErr.Message != "" {
			response["error_description"] = domainErr.Message
		}
		WriteJSON(w, status, response)
		return
	}

	// Fallback for unexpected errors
	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": DomainCodeToHTTPCode(dErrors.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUpstreamOutage:
		return http.StatusBadGateway
	case dErrors.CodeInvalidOTP, dErrors.CodeUpstream, dErrors.CodeUnsupportedKind, dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToHTTPCode translates domain error codes to HTTP error codes (for JSON response).
func DomainCodeToHTTPCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeNotFound:
		return "not_found"
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return "bad_request"
	case dErrors.CodeTimeout:
		return "upstream_timeout"
	case dErrors.CodeUpstreamOutage:
		return "upstream_unreachable"
	case dErrors.CodeInvalidOTP:
		return "invalid_otp"
	case dErrors.CodeUpstream:
		return "upstream_error"
	case dErrors.CodeUnsupportedKind:
		return "unsupported_kind"
	default:
		return "internal_error"
	}
}
