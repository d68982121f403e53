package auth

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lumiskin/lumiskin-cli/internal/store"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Refresh exchanges the stored refresh token for a new access token and
// persists the result. When the refresh token or client id is missing it
// returns false immediately without a network call; that is the common
// never-authenticated case and is deliberately silent.
//
// A 400-class rejection means the refresh token is no longer valid at the
// provider. That is an expected lifecycle event and is kept out of
// error-level logs; anything else is logged as an error. Either way the
// method only ever reports success or failure.
func (m *Manager) Refresh(ctx context.Context) bool {
	refreshToken := m.guardedGet(ctx, store.KeyRefreshToken)
	creds := m.loadClientCredentials(ctx)
	if refreshToken == "" || creds.ClientID == "" {
		return false
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	data.Set("client_id", creds.ClientID)
	if creds.ClientSecret != "" {
		data.Set("client_secret", creds.ClientSecret)
	}

	body, status, err := m.postForm(ctx, m.endpoints.TokenURL, data)
	if err != nil {
		log.Errorf("token refresh request failed: %v", err)
		return false
	}
	if status != http.StatusOK {
		if status == http.StatusBadRequest {
			log.Debugf("token refresh rejected by provider: %s", oauthErrorSummary(body))
		} else {
			log.Errorf("token refresh failed with status %d: %s", status, string(body))
		}
		return false
	}

	record, errParse := parseTokenResponse(body, m.now())
	if errParse != nil {
		log.Errorf("invalid token refresh response: %v", errParse)
		return false
	}
	if !m.persistToken(ctx, record) {
		return false
	}
	m.cache.write(record.AccessToken, m.now())
	log.Debug("access token refreshed")
	return true
}

// oauthErrorSummary condenses a provider error body into "error:
// description" form for logging.
func oauthErrorSummary(body []byte) string {
	errType := gjson.GetBytes(body, "error").String()
	if errType == "" {
		return string(body)
	}
	if desc := gjson.GetBytes(body, "error_description").String(); desc != "" {
		return errType + ": " + desc
	}
	return errType
}
