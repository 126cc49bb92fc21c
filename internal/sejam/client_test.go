package sejam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "svc-user", "svc-pass", 5*time.Second)
	return client, srv
}

func TestIssueToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/accessToken", r.URL.Path)
			assert.Equal(t, "application/json-patch+json", r.Header.Get("Content-Type"))

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "svc-user", req["username"])
			assert.Equal(t, "svc-pass", req["password"])

			w.Write([]byte(`{"data":{"accessToken":"tok-123","ttl":"01:00:00"}}`))
		})

		tok, ttl, err := client.IssueToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-123", tok)
		assert.Equal(t, "01:00:00", ttl)
	})

	t.Run("upstream http error carries body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"customMessage":"bad credentials"}}`))
		})

		_, _, err := client.IssueToken(context.Background())
		require.Error(t, err)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Contains(t, apiErr.Body, "bad credentials")
		assert.False(t, apiErr.Transport())
	})

	t.Run("malformed response", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{}}`))
		})

		_, _, err := client.IssueToken(context.Background())
		require.Error(t, err)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := NewClient(srv.URL, "u", "p", time.Second)

		_, _, err := client.IssueToken(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.Transport())
	})
}

func TestRequestOTP(t *testing.T) {
	t.Run("success carries upstream status", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/kycOtp", r.URL.Path)
			assert.Equal(t, "bearer tok-123", r.Header.Get("Authorization"))

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "0012345678", req["uniqueIdentifier"])

			w.WriteHeader(http.StatusOK)
		})

		result, err := client.RequestOTP(context.Background(), "tok-123", "0012345678")
		require.NoError(t, err)
		assert.Equal(t, "0012345678", result.Identifier)
		assert.Equal(t, http.StatusOK, result.Status)
		assert.True(t, result.OK())
		assert.Empty(t, result.ErrorDetail)
	})

	t.Run("upstream error keeps status and raw body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"customMessage":"throttled"}}`))
		})

		result, err := client.RequestOTP(context.Background(), "tok", "0012345678")
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, result.Status)
		assert.False(t, result.OK())
		assert.NotEmpty(t, result.ErrorDetail)
		assert.Contains(t, result.RawBody, "throttled")
	})

	t.Run("transport failure yields synthetic status", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := NewClient(srv.URL, "u", "p", time.Second)

		result, err := client.RequestOTP(context.Background(), "tok", "0012345678")
		require.NoError(t, err)
		assert.Equal(t, StatusTransportFailure, result.Status)
		assert.False(t, result.OK())
		assert.Equal(t, "connection to provider failed", result.ErrorDetail)
	})
}

func TestFetchProfile(t *testing.T) {
	t.Run("success decodes payload and keeps raw blob", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/servicesWithOtp/profiles/0012345678", r.URL.Path)
			assert.Equal(t, "54321", r.URL.Query().Get("otp"))
			assert.Equal(t, "bearer tok", r.Header.Get("Authorization"))

			w.Write([]byte(`{"data":{
				"uniqueIdentifier":"0012345678",
				"type":"IranianPrivatePerson",
				"mobile":"09120000000",
				"email":"x@example.com",
				"privatePerson":{"firstName":"Ali","lastName":"Rezaei"},
				"accounts":[{"sheba":"IR000","bank":{"name":"Mellat"},"branchCity":null}]
			}}`))
		})

		fetched, err := client.FetchProfile(context.Background(), "tok", "0012345678", "54321")
		require.NoError(t, err)
		assert.Equal(t, "IranianPrivatePerson", fetched.Data.Type)
		require.NotNil(t, fetched.Data.PrivatePerson)
		assert.Equal(t, "Ali", fetched.Data.PrivatePerson.FirstName)
		require.Len(t, fetched.Data.Accounts, 1)
		assert.Nil(t, fetched.Data.Accounts[0].BranchCity)
		assert.Equal(t, "Mellat", fetched.Data.Accounts[0].Bank.Name)
		assert.Contains(t, string(fetched.Raw), `"uniqueIdentifier"`)
	})

	t.Run("invalid otp is recognized", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"customMessage":"invalid otp"}}`))
		})

		_, err := client.FetchProfile(context.Background(), "tok", "001", "999")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.InvalidOTP())
	})

	t.Run("other 400 is not invalid otp", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"customMessage":"expired otp window"}}`))
		})

		_, err := client.FetchProfile(context.Background(), "tok", "001", "999")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.False(t, apiErr.InvalidOTP())
	})

	t.Run("server error carries raw body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`upstream exploded`))
		})

		_, err := client.FetchProfile(context.Background(), "tok", "001", "999")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, "upstream exploded", apiErr.Body)
		assert.False(t, apiErr.InvalidOTP())
	})

	t.Run("malformed success payload", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":"not an object"}`))
		})

		_, err := client.FetchProfile(context.Background(), "tok", "001", "999")
		require.Error(t, err)
	})
}
