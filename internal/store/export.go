package store

import (
	"context"
	"fmt"

	"github.com/tidwall/sjson"
)

// Field names used in the status snapshot document.
var snapshotFields = map[string]string{
	KeyClientID:     "client_id",
	KeyClientSecret: "client_secret",
	KeyAccessToken:  "access_token",
	KeyRefreshToken: "refresh_token",
	KeyTokenExpiry:  "token_expiry",
}

// Secret-valued keys are truncated in the snapshot so it is safe to print.
var sensitiveKeys = map[string]bool{
	KeyClientSecret: true,
	KeyAccessToken:  true,
	KeyRefreshToken: true,
}

// StatusSnapshot renders the store contents as a JSON document with secret
// values redacted. It is intended for diagnostics output, never for backup.
func StatusSnapshot(ctx context.Context, s CredentialStore) ([]byte, error) {
	doc := []byte(`{}`)
	for _, key := range Keys {
		value, err := s.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("status snapshot: read %s failed: %w", key, err)
		}
		if sensitiveKeys[key] {
			value = redact(value)
		}
		doc, err = sjson.SetBytes(doc, snapshotFields[key], value)
		if err != nil {
			return nil, fmt.Errorf("status snapshot: set %s failed: %w", key, err)
		}
	}
	return doc, nil
}

func redact(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 6 {
		return "****"
	}
	return value[:6] + "****"
}
