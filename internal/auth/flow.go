package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// stateLength is the truncated length of the CSRF state nonce.
const stateLength = 32

// generateState derives a fresh unguessable state nonce from cryptographic
// randomness and the current timestamp, truncated to a fixed length.
func generateState(now time.Time) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	buf = append(buf, []byte(strconv.FormatInt(now.UnixNano(), 10))...)
	digest := sha256.Sum256(buf)
	return hex.EncodeToString(digest[:])[:stateLength], nil
}

// BuildAuthorizationURL returns the provider authorization URL for oauthCfg
// together with the state nonce embedded in it. A new state is generated on
// every call; identical configs differ only in the state parameter.
//
// The state is handed to the caller for CSRF correlation but is not persisted
// for later comparison against the redirect. That matches the shipped mobile
// flow; see DESIGN.md for the known weakness.
func (m *Manager) BuildAuthorizationURL(oauthCfg OAuthConfig) (string, string, error) {
	state, err := generateState(m.now())
	if err != nil {
		return "", "", err
	}

	params := url.Values{
		"client_id":     {oauthCfg.ClientID},
		"redirect_uri":  {oauthCfg.RedirectURI},
		"response_type": {"code"},
		"scope":         {strings.Join(oauthCfg.Scopes, " ")},
		"access_type":   {"offline"},
		"prompt":        {"consent"},
		"state":         {state},
	}

	return fmt.Sprintf("%s?%s", m.endpoints.AuthURL, params.Encode()), state, nil
}

// Initiate runs the interactive authorization flow described by oauthCfg: it
// persists the client credentials, hands the authorization URL to the user
// agent, and exchanges the resulting one-time code for the initial token
// pair. Every failure mode collapses to false; Initiate never panics and
// never returns an error to its caller.
func (m *Manager) Initiate(ctx context.Context, oauthCfg OAuthConfig) bool {
	if strings.TrimSpace(oauthCfg.ClientID) == "" {
		log.Error("authorization flow requires a client id")
		return false
	}
	if m.userAgent == nil {
		log.Error("authorization flow requires an interactive user agent")
		return false
	}
	if err := m.StoreClientCredentials(ctx, oauthCfg.ClientID, oauthCfg.ClientSecret); err != nil {
		log.Errorf("failed to persist client credentials: %v", err)
		return false
	}

	authURL, state, err := m.BuildAuthorizationURL(oauthCfg)
	if err != nil {
		log.Errorf("failed to build authorization url: %v", err)
		return false
	}

	attemptID := uuid.New().String()
	log.Infof("Starting authorization attempt %s", attemptID)
	log.Debugf("Authorization state for attempt %s: %s", attemptID, state)

	result := m.userAgent.Authorize(ctx, authURL, oauthCfg.RedirectURI)
	if result.Outcome != OutcomeSuccess {
		log.Warnf("Authorization attempt %s ended without consent: %s", attemptID, result.Outcome)
		return false
	}

	return m.exchangeCodeForTokens(ctx, result.RedirectURL, oauthCfg)
}

// exchangeCodeForTokens extracts the authorization code from the redirect URL
// and performs the authorization_code grant against the token endpoint. On
// success the resulting token record is persisted and cached.
func (m *Manager) exchangeCodeForTokens(ctx context.Context, redirectURL string, oauthCfg OAuthConfig) bool {
	parsed, err := url.Parse(redirectURL)
	if err != nil {
		log.Errorf("malformed redirect url: %v", err)
		return false
	}
	code := parsed.Query().Get("code")
	if code == "" {
		log.Error("redirect url is missing the authorization code")
		return false
	}

	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", oauthCfg.ClientID)
	data.Set("redirect_uri", oauthCfg.RedirectURI)
	if oauthCfg.ClientSecret != "" {
		data.Set("client_secret", oauthCfg.ClientSecret)
	}

	body, status, err := m.postForm(ctx, m.endpoints.TokenURL, data)
	if err != nil {
		log.Errorf("token exchange request failed: %v", err)
		return false
	}
	if status != http.StatusOK {
		log.Errorf("token exchange failed with status %d: %s", status, string(body))
		return false
	}

	record, errParse := parseTokenResponse(body, m.now())
	if errParse != nil {
		log.Errorf("invalid token exchange response: %v", errParse)
		return false
	}
	if !m.persistToken(ctx, record) {
		return false
	}
	m.cache.write(record.AccessToken, m.now())
	log.Info("Authorization successful")
	return true
}
