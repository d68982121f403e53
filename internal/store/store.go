// Package store provides durable persistence for OAuth client credentials and
// tokens. The core treats the store as a plain key-value collaborator; the
// default implementation is backed by a bbolt database file.
package store

import "context"

// Keys used by the token lifecycle core. Expiry is stored as a stringified
// epoch-millisecond integer.
const (
	KeyClientID     = "oauth.client_id"
	KeyClientSecret = "oauth.client_secret"
	KeyAccessToken  = "oauth.access_token"
	KeyRefreshToken = "oauth.refresh_token"
	KeyTokenExpiry  = "oauth.token_expiry"
)

// Keys enumerates every key the core persists, in export order.
var Keys = []string{KeyClientID, KeyClientSecret, KeyAccessToken, KeyRefreshToken, KeyTokenExpiry}

// CredentialStore is the durable key-value persistence layer consumed by the
// token lifecycle core. A missing key reads back as an empty string, not an
// error. Implementations carry no built-in timeout; callers are expected to
// wrap each operation with their own deadline handling.
type CredentialStore interface {
	// Get returns the stored value for key, or "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
