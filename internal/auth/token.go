package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// safetyBufferMs is subtracted from a token's expiry so it is treated as
	// expired slightly before the provider actually invalidates it, guarding
	// against clock skew and in-flight request latency.
	safetyBufferMs = int64(5 * 60 * 1000)

	// defaultCacheWindow bounds how long a resolved token (including a
	// definitive "none available") is trusted without re-checking storage.
	defaultCacheWindow = 60 * time.Second

	// defaultStoreTimeout is the deadline applied to every credential store
	// operation before the guard substitutes a fallback.
	defaultStoreTimeout = 2 * time.Second
)

// ClientCredentials is the persisted OAuth client registration. A missing
// client id means the application has never been configured for the provider.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
}

// OAuthConfig describes a single authorization attempt. Its fields are
// decomposed into persisted client credentials and transient request
// parameters; the struct itself is never stored.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
}

// TokenRecord is the parsed result of a successful token endpoint exchange.
// The expiry is absolute, computed from expires_in at parse time.
type TokenRecord struct {
	AccessToken  string
	RefreshToken string
	ExpiresAtMs  int64
	TokenType    string
}

// parseTokenResponse builds a TokenRecord from a token endpoint response
// body. A response without an access_token field is rejected.
func parseTokenResponse(body []byte, now time.Time) (*TokenRecord, error) {
	accessToken := gjson.GetBytes(body, "access_token").String()
	if accessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}
	return &TokenRecord{
		AccessToken:  accessToken,
		RefreshToken: gjson.GetBytes(body, "refresh_token").String(),
		ExpiresAtMs:  now.UnixMilli() + gjson.GetBytes(body, "expires_in").Int()*1000,
		TokenType:    gjson.GetBytes(body, "token_type").String(),
	}, nil
}

// ValidAt reports whether the record's access token is still usable at t.
func (r *TokenRecord) ValidAt(t time.Time) bool {
	return expiryValidAt(r.ExpiresAtMs, t)
}

func expiryValidAt(expiresAtMs int64, t time.Time) bool {
	return t.UnixMilli() < expiresAtMs-safetyBufferMs
}

// parseExpiry converts a stored epoch-millisecond string into an int64.
// Absent or malformed values read as zero, which is always invalid.
func parseExpiry(value string) int64 {
	if value == "" {
		return 0
	}
	expiry, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return expiry
}
