package sejam

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// StatusTransportFailure is the synthetic status reported when no HTTP
// response was received at all. It deliberately sits outside the valid HTTP
// status range so callers can tell it apart from any upstream answer.
const StatusTransportFailure = 599

// APIError describes a failed upstream call. Status is the upstream HTTP
// status, or StatusTransportFailure when the request never got a response.
// Body holds the raw response body when one was available, for forensic
// logging to the error log.
type APIError struct {
	Operation string
	Status    int
	Body      string
	Err       error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sejam %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("sejam %s: status %d: %s", e.Operation, e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure happened below the HTTP layer.
func (e *APIError) Transport() bool {
	return e.Status == StatusTransportFailure
}

// errorEnvelope is the provider's error body shape.
type errorEnvelope struct {
	Error struct {
		CustomMessage string `json:"customMessage"`
	} `json:"error"`
}

// InvalidOTP reports whether the upstream rejected the one-time passcode.
// The provider signals this with HTTP 400 and a recognized custom message;
// everything else is an undistinguished upstream failure.
func (e *APIError) InvalidOTP() bool {
	if e.Status != http.StatusBadRequest {
		return false
	}
	var env errorEnvelope
	if err := json.Unmarshal([]byte(e.Body), &env); err != nil {
		return false
	}
	return strings.EqualFold(env.Error.CustomMessage, "invalid otp")
}
