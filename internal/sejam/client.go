// Package sejam implements the HTTP client for the Sejam KYC provider.
package sejam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Provider endpoint paths, relative to the configured base URL.
const (
	pathAccessToken = "/accessToken"
	pathKYCOTP      = "/kycOtp"
	pathProfiles    = "/servicesWithOtp/profiles"
)

// contentType is what the provider expects on POST bodies.
const contentType = "application/json-patch+json"

// Client issues the three upstream calls: token issuance, OTP request, and
// profile fetch. It performs no retries; failures surface to the caller.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a Sejam API client with an explicit request timeout.
func NewClient(baseURL, username, password string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Data struct {
		AccessToken string `json:"accessToken"`
		TTL         string `json:"ttl"`
	} `json:"data"`
}

// IssueToken obtains a fresh access token using the fixed service credentials.
// The ttl comes back in the provider's "HH:MM:SS" form; parsing is the token
// manager's concern.
func (c *Client) IssueToken(ctx context.Context) (string, string, error) {
	body, err := json.Marshal(tokenRequest{Username: c.username, Password: c.password})
	if err != nil {
		return "", "", &APIError{Operation: "accessToken", Status: StatusTransportFailure, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathAccessToken, bytes.NewReader(body))
	if err != nil {
		return "", "", &APIError{Operation: "accessToken", Status: StatusTransportFailure, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	status, respBody, err := c.do(req)
	if err != nil {
		return "", "", &APIError{Operation: "accessToken", Status: StatusTransportFailure, Err: err}
	}
	if status < 200 || status > 299 {
		return "", "", &APIError{Operation: "accessToken", Status: status, Body: string(respBody)}
	}

	var resp tokenResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", "", &APIError{Operation: "accessToken", Status: status, Body: string(respBody), Err: fmt.Errorf("decode token response: %w", err)}
	}
	if resp.Data.AccessToken == "" {
		return "", "", &APIError{Operation: "accessToken", Status: status, Body: string(respBody), Err: fmt.Errorf("token response missing accessToken")}
	}
	return resp.Data.AccessToken, resp.Data.TTL, nil
}

type otpRequest struct {
	UniqueIdentifier string `json:"uniqueIdentifier"`
}

// OTPResult reports the outcome of an OTP request. Success is defined purely
// by the upstream HTTP status; the body carries no structured status.
type OTPResult struct {
	Identifier  string
	Status      int
	ErrorDetail string
	RawBody     string
}

// OK reports whether the upstream accepted the OTP request.
func (r *OTPResult) OK() bool {
	return r.Status >= 200 && r.Status <= 299
}

// RequestOTP asks the provider to send a one-time passcode to the person
// behind the identifier. Transport failures are folded into the result with
// the synthetic StatusTransportFailure code rather than returned as errors;
// the returned error covers request construction only.
func (c *Client) RequestOTP(ctx context.Context, bearer, identifier string) (*OTPResult, error) {
	body, err := json.Marshal(otpRequest{UniqueIdentifier: identifier})
	if err != nil {
		return nil, &APIError{Operation: "kycOtp", Status: StatusTransportFailure, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathKYCOTP, bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Operation: "kycOtp", Status: StatusTransportFailure, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "bearer "+bearer)

	status, respBody, err := c.do(req)
	if err != nil {
		return &OTPResult{
			Identifier:  identifier,
			Status:      StatusTransportFailure,
			ErrorDetail: "connection to provider failed",
			RawBody:     err.Error(),
		}, nil
	}

	result := &OTPResult{
		Identifier: identifier,
		Status:     status,
		RawBody:    string(respBody),
	}
	if !result.OK() {
		result.ErrorDetail = fmt.Sprintf("provider returned status %d", status)
	}
	return result, nil
}

// profileEnvelope wraps the profile payload; Data is kept raw so the full
// upstream blob can be persisted verbatim alongside the decoded fields.
type profileEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// FetchedProfile pairs the decoded payload with the raw upstream JSON.
type FetchedProfile struct {
	Data ProfileData
	Raw  json.RawMessage
}

// FetchProfile exchanges a validated OTP for the person's full profile.
// On a non-success status the returned *APIError carries the raw body, from
// which the distinguished invalid-OTP case can be recognized.
func (c *Client) FetchProfile(ctx context.Context, bearer, identifier, otp string) (*FetchedProfile, error) {
	u := fmt.Sprintf("%s%s/%s?otp=%s", c.baseURL, pathProfiles, url.PathEscape(identifier), url.QueryEscape(otp))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &APIError{Operation: "profiles", Status: StatusTransportFailure, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "bearer "+bearer)

	status, respBody, err := c.do(req)
	if err != nil {
		return nil, &APIError{Operation: "profiles", Status: StatusTransportFailure, Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &APIError{Operation: "profiles", Status: status, Body: string(respBody)}
	}

	var env profileEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, &APIError{Operation: "profiles", Status: status, Body: string(respBody), Err: fmt.Errorf("decode profile envelope: %w", err)}
	}
	var data ProfileData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &APIError{Operation: "profiles", Status: status, Body: string(respBody), Err: fmt.Errorf("decode profile payload: %w", err)}
	}

	return &FetchedProfile{Data: data, Raw: env.Data}, nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}
