package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-crm-workspace/internal/config"
	"github.com/jrsteele09/go-crm-workspace/storage"
	"github.com/jrsteele09/go-crm-workspace/storage/storefake"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	server *httptest.Server
	store  *storefake.FakeStore
	token  string
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name":         "Jane Doe",
		"email":        "jane@example.com",
		"exp":          time.Now().Add(time.Hour).Unix(),
		"realm_access": map[string]any{"roles": []any{"agent"}},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	f := &testFixture{store: storefake.NewFakeStore(), token: raw}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(f.token))
	})
	mux.HandleFunc("GET /v1/customer/profile/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"customerId":7,"custType":"B2B","b2b":{"companyName":"Acme"},"tickets":[{"ticketId":1}]}]}`))
	})
	mux.HandleFunc("GET /v1/customer/profile/8", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"customerId":8,"custType":"B2C"}`))
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	t.Setenv("CRM_API_URL", f.server.URL)
	t.Setenv("CRM_MAX_RETRIES", "0")
	t.Setenv("CRM_OIDC_ISSUER", "")
	return f
}

// exec runs one command as a fresh process would, against the shared store.
func (f *testFixture) exec(t *testing.T, input string, editing bool, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a, err := newApp(context.Background(), config.New(), f.store, appOptions{
		editing: editing,
		in:      strings.NewReader(input),
		out:     &out,
	})
	require.NoError(t, err)
	err = a.dispatch(context.Background(), args)
	return out.String(), err
}

func TestWorkspaceAcrossInvocations(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.exec(t, "", false, "open", "7", "B2B", "Acme")
	require.Error(t, err)

	out, err := f.exec(t, "", false, "login", "jane", "secret")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as Jane Doe <jane@example.com>")
	require.True(t, f.store.Has(storage.KeyAuthToken))

	out, err = f.exec(t, "", false, "whoami")
	require.NoError(t, err)
	require.Contains(t, out, "roles: agent")

	out, err = f.exec(t, "", false, "open", "7", "b2b", "Acme")
	require.NoError(t, err)
	require.Contains(t, out, "customer-7")
	require.Contains(t, out, "at /customer/info/7")

	_, err = f.exec(t, "", false, "open", "8", "B2C", "Ann", "Lee")
	require.NoError(t, err)

	out, err = f.exec(t, "", false, "tabs")
	require.NoError(t, err)
	require.Contains(t, out, "* ")
	require.Contains(t, out, "Ann Lee")
	require.Contains(t, out, "at /customer/info/8")

	out, err = f.exec(t, "n\n", true, "close", "customer-8")
	require.NoError(t, err)
	require.Contains(t, out, "unsaved changes")
	require.Contains(t, out, "Tab kept open.")

	out, err = f.exec(t, "y\n", true, "close", "customer-8")
	require.NoError(t, err)
	require.NotContains(t, out, "customer-8")
	require.Contains(t, out, "at /customer/info/7")

	out, err = f.exec(t, "", false, "logout")
	require.NoError(t, err)
	require.Contains(t, out, "Logged out.")
	require.False(t, f.store.Has(storage.KeyAuthToken))
	require.False(t, f.store.Has(storage.KeyTabs))
	require.False(t, f.store.Has(storage.KeyActiveTabID))

	out, err = f.exec(t, "", false, "whoami")
	require.NoError(t, err)
	require.Contains(t, out, "Not logged in.")
}

func TestExpiredStoredTokenClearsWorkspace(t *testing.T) {
	f := setupTestFixture(t)
	_, err := f.exec(t, "", false, "login", "jane", "secret")
	require.NoError(t, err)
	_, err = f.exec(t, "", false, "open", "7", "B2B")
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-10 * time.Second).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, f.store.Set(storage.KeyAuthToken, expired))

	out, err := f.exec(t, "", false, "tabs")
	require.NoError(t, err)
	require.Contains(t, out, "No open tabs.")
	require.False(t, f.store.Has(storage.KeyTabs))
}

func TestDispatchErrors(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.exec(t, "", false, "frobnicate")
	require.ErrorContains(t, err, "unknown command")

	_, err = f.exec(t, "", false, "login", "jane")
	require.ErrorContains(t, err, "needs at least 2")

	_, err = f.exec(t, "", false, "login", "jane", "secret")
	require.NoError(t, err)

	_, err = f.exec(t, "", false, "open", "x", "B2B")
	require.ErrorContains(t, err, "customer id")

	_, err = f.exec(t, "", false, "open", "7", "B2X")
	require.ErrorContains(t, err, "customer type")
}
