// Package auth implements the OAuth2 authorization and token lifecycle core
// for the LumiSkin identity provider: the interactive authorization-code
// flow, transparent refresh of expired access tokens, guarded access to the
// durable credential store, and an in-process cache of the last resolution.
//
// Public operations never propagate errors. Callers receive a usable token or
// an empty string, and flow operations signal plain success or failure, so
// "not authorized" stays a normal branch rather than an exception path.
package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lumiskin/lumiskin-cli/internal/config"
	"github.com/lumiskin/lumiskin-cli/internal/store"
	"github.com/lumiskin/lumiskin-cli/internal/util"
)

// Manager owns the token lifecycle: it composes the credential store, the
// token cache, and the provider's token endpoints into the decision
// procedures exposed to the rest of the application. Construct one per
// process and share it; the cache is an owned field, not ambient state.
type Manager struct {
	store      store.CredentialStore
	httpClient *http.Client
	userAgent  UserAgent
	endpoints  config.Endpoints

	cache        tokenCache
	cacheWindow  time.Duration
	storeTimeout time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// NewManager creates the lifecycle manager. The user agent may be nil when
// only resolution and refresh are needed (Initiate will then fail cleanly).
func NewManager(cfg *config.Config, credStore store.CredentialStore, userAgent UserAgent) *Manager {
	return &Manager{
		store:        credStore,
		httpClient:   util.NewHTTPClient(cfg),
		userAgent:    userAgent,
		endpoints:    cfg.Endpoints,
		cacheWindow:  defaultCacheWindow,
		storeTimeout: defaultStoreTimeout,
		now:          time.Now,
	}
}

// StoreClientCredentials persists the OAuth client registration so later
// refresh and resolve cycles can run without the caller supplying secrets
// again. An empty client secret removes any previously stored secret.
func (m *Manager) StoreClientCredentials(ctx context.Context, clientID, clientSecret string) error {
	if strings.TrimSpace(clientID) == "" {
		return fmt.Errorf("client id must not be empty")
	}
	if err := m.store.Set(ctx, store.KeyClientID, clientID); err != nil {
		return fmt.Errorf("failed to persist client id: %w", err)
	}
	if clientSecret == "" {
		if err := m.store.Remove(ctx, store.KeyClientSecret); err != nil {
			return fmt.Errorf("failed to clear client secret: %w", err)
		}
		return nil
	}
	if err := m.store.Set(ctx, store.KeyClientSecret, clientSecret); err != nil {
		return fmt.Errorf("failed to persist client secret: %w", err)
	}
	return nil
}

// loadClientCredentials reads the persisted client registration through the
// guard; a missing or unreachable store yields zero-value credentials.
func (m *Manager) loadClientCredentials(ctx context.Context) ClientCredentials {
	return ClientCredentials{
		ClientID:     m.guardedGet(ctx, store.KeyClientID),
		ClientSecret: m.guardedGet(ctx, store.KeyClientSecret),
	}
}

// guardedGet reads a store key with the default deadline, degrading to ""
// when the store is slow or unavailable.
func (m *Manager) guardedGet(ctx context.Context, key string) string {
	return guard(ctx, m.storeTimeout, "", "read of "+key, func(ctx context.Context) (string, error) {
		return m.store.Get(ctx, key)
	})
}

// guardedSet writes a store key with the default deadline and reports whether
// the write is known to have completed in time.
func (m *Manager) guardedSet(ctx context.Context, key, value string) bool {
	return guard(ctx, m.storeTimeout, false, "write of "+key, func(ctx context.Context) (bool, error) {
		return true, m.store.Set(ctx, key, value)
	})
}

// guardedRemove deletes a store key with the default deadline.
func (m *Manager) guardedRemove(ctx context.Context, key string) bool {
	return guard(ctx, m.storeTimeout, false, "remove of "+key, func(ctx context.Context) (bool, error) {
		return true, m.store.Remove(ctx, key)
	})
}

// postForm performs a form-encoded POST and returns the response body and
// status code. Transport failures surface as errors for the caller to log.
func (m *Manager) postForm(ctx context.Context, endpoint string, data url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// persistToken stores a token record. The refresh token is only overwritten
// when the provider returned a new one; providers may legitimately omit it on
// refresh, in which case the existing refresh token must survive.
func (m *Manager) persistToken(ctx context.Context, record *TokenRecord) bool {
	ok := m.guardedSet(ctx, store.KeyAccessToken, record.AccessToken)
	ok = m.guardedSet(ctx, store.KeyTokenExpiry, strconv.FormatInt(record.ExpiresAtMs, 10)) && ok
	if record.RefreshToken != "" {
		ok = m.guardedSet(ctx, store.KeyRefreshToken, record.RefreshToken) && ok
	}
	return ok
}

// clearTokenState removes all per-session token material and records the
// definitive "no token" outcome in the cache. Client credentials stay in
// place: they are app-level configuration, not session state.
func (m *Manager) clearTokenState(ctx context.Context) {
	m.guardedRemove(ctx, store.KeyAccessToken)
	m.guardedRemove(ctx, store.KeyRefreshToken)
	m.guardedRemove(ctx, store.KeyTokenExpiry)
	m.cache.write("", m.now())
}
