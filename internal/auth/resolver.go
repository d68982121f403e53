package auth

import (
	"context"

	"github.com/lumiskin/lumiskin-cli/internal/store"
	log "github.com/sirupsen/logrus"
)

// GetAccessToken returns a usable bearer token, or "" when none is
// available. It is the single entry point for every caller that needs to
// authorize an outbound request, and it never returns an error: a
// misconfigured, slow, or never-authorized state all degrade to "".
//
// Resolution order, each storage step time-guarded:
//
//  1. A cache entry younger than the cache window is returned as-is; a
//     cached "" is as trustworthy as a cached token.
//  2. Without a stored client id the process is not configured; cache ""
//     and stop before any further I/O.
//  3. A stored token still inside its safety buffer is returned directly.
//  4. Otherwise, if a refresh token is present, run one refresh and return
//     the new access token on success.
//  5. Everything else resolves to "".
//
// Concurrent callers may each trigger a refresh while one is in flight;
// refresh is idempotent at the provider and the last store write wins.
func (m *Manager) GetAccessToken(ctx context.Context) string {
	now := m.now()
	if token, hit := m.cache.read(now, m.cacheWindow); hit {
		return token
	}

	clientID := m.guardedGet(ctx, store.KeyClientID)
	if clientID == "" {
		log.Debug("no client id configured, resolving without token")
		m.cache.write("", m.now())
		return ""
	}

	if expiryValidAt(parseExpiry(m.guardedGet(ctx, store.KeyTokenExpiry)), now) {
		token := m.guardedGet(ctx, store.KeyAccessToken)
		m.cache.write(token, m.now())
		return token
	}

	if refreshToken := m.guardedGet(ctx, store.KeyRefreshToken); refreshToken != "" {
		if m.Refresh(ctx) {
			token := m.guardedGet(ctx, store.KeyAccessToken)
			m.cache.write(token, m.now())
			return token
		}
	}

	m.cache.write("", m.now())
	return ""
}
