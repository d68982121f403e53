package auth

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lumiskin/lumiskin-cli/internal/store"
	log "github.com/sirupsen/logrus"
)

// Revoke invalidates the stored access token at the provider and clears
// local token state. With no token stored it treats the session as already
// revoked and still clears local state, so the operation is idempotent.
// Client credentials are never touched.
//
// On provider failure local state is left intact and false is returned, so a
// failed revoke cannot strand the UI believing it is logged out while a
// stale token remains usable.
func (m *Manager) Revoke(ctx context.Context) bool {
	accessToken := m.guardedGet(ctx, store.KeyAccessToken)
	if accessToken == "" {
		m.clearTokenState(ctx)
		return true
	}

	data := url.Values{}
	data.Set("token", accessToken)

	body, status, err := m.postForm(ctx, m.endpoints.RevokeURL, data)
	if err != nil {
		log.Errorf("token revocation request failed: %v", err)
		return false
	}
	if status != http.StatusOK {
		log.Errorf("token revocation failed with status %d: %s", status, string(body))
		return false
	}

	m.clearTokenState(ctx)
	log.Info("Token revoked")
	return true
}
