package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lumiskin/lumiskin-cli/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticatedClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer api.Close()

	st := newFakeStore(map[string]string{
		store.KeyClientID:    "abc",
		store.KeyAccessToken: "tok1",
		store.KeyTokenExpiry: expiryString(time.Now().Add(time.Hour)),
	})
	m := newTestManager(st, nil, "", "")

	resp, err := m.AuthenticatedClient(nil).Get(api.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "Bearer tok1", gotAuth)
}

func TestAuthenticatedClient_NoTokenSendsPlainRequest(t *testing.T) {
	var gotAuth string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer api.Close()

	m := newTestManager(newFakeStore(nil), nil, "", "")

	resp, err := m.AuthenticatedClient(nil).Get(api.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "", gotAuth)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
