package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/lumiskin/lumiskin-cli/internal/config"
	"github.com/lumiskin/lumiskin-cli/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory CredentialStore that counts operations so tests
// can assert how much storage traffic a code path produces.
type fakeStore struct {
	mu   sync.Mutex
	data map[string]string
	gets int
	sets int
}

func newFakeStore(seed map[string]string) *fakeStore {
	data := make(map[string]string, len(seed))
	for k, v := range seed {
		data[k] = v
	}
	return &fakeStore{data: data}
}

func (s *fakeStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	return s.data[key], nil
}

func (s *fakeStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	s.data[key] = value
	return nil
}

func (s *fakeStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *fakeStore) value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

func (s *fakeStore) getCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

// fakeUserAgent replays a scripted authorization outcome.
type fakeUserAgent struct {
	result   AuthorizationResult
	authURLs []string
}

func (ua *fakeUserAgent) Authorize(ctx context.Context, authURL, redirectURI string) AuthorizationResult {
	ua.authURLs = append(ua.authURLs, authURL)
	return ua.result
}

func newTestManager(st store.CredentialStore, ua UserAgent, tokenURL, revokeURL string) *Manager {
	cfg := &config.Config{
		Endpoints: config.Endpoints{
			AuthURL:   "https://provider.example/o/authorize",
			TokenURL:  tokenURL,
			RevokeURL: revokeURL,
		},
	}
	return NewManager(cfg, st, ua)
}

func TestStoreClientCredentials(t *testing.T) {
	st := newFakeStore(nil)
	m := newTestManager(st, nil, "", "")
	ctx := context.Background()

	require.NoError(t, m.StoreClientCredentials(ctx, "abc", "shh"))
	assert.Equal(t, "abc", st.value(store.KeyClientID))
	assert.Equal(t, "shh", st.value(store.KeyClientSecret))

	// An empty secret clears any previously stored one.
	require.NoError(t, m.StoreClientCredentials(ctx, "abc", ""))
	assert.Equal(t, "", st.value(store.KeyClientSecret))

	assert.Error(t, m.StoreClientCredentials(ctx, "  ", "shh"))
}
