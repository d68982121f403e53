package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestStatusSnapshot_RedactsSecrets(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyClientID, "my-client-id"))
	require.NoError(t, s.Set(ctx, KeyClientSecret, "supersecretvalue"))
	require.NoError(t, s.Set(ctx, KeyAccessToken, "ya29.verylongtoken"))
	require.NoError(t, s.Set(ctx, KeyTokenExpiry, "1700000000000"))

	snapshot, err := StatusSnapshot(ctx, s)
	require.NoError(t, err)

	doc := gjson.ParseBytes(snapshot)
	assert.Equal(t, "my-client-id", doc.Get("client_id").String())
	assert.Equal(t, "supers****", doc.Get("client_secret").String())
	assert.Equal(t, "ya29.v****", doc.Get("access_token").String())
	assert.Equal(t, "", doc.Get("refresh_token").String())
	assert.Equal(t, "1700000000000", doc.Get("token_expiry").String())

	assert.NotContains(t, string(snapshot), "supersecretvalue")
	assert.NotContains(t, string(snapshot), "verylongtoken")
}

func TestRedact_ShortValues(t *testing.T) {
	assert.Equal(t, "", redact(""))
	assert.Equal(t, "****", redact("abc"))
	assert.Equal(t, "****", redact("abcdef"))
	assert.Equal(t, "abcdef****", redact("abcdefg"))
}
