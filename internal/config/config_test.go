package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_ParsesOAuthSection(t *testing.T) {
	path := writeConfig(t, `
oauth:
  client-id: abc
  client-secret: shh
  redirect-uri: http://localhost:8371/callback
  scopes:
    - scope1
    - scope2
store-path: /tmp/lumiskin-test/credentials.db
debug: true
proxy-url: socks5://127.0.0.1:1080
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.OAuth.ClientID)
	assert.Equal(t, "shh", cfg.OAuth.ClientSecret)
	assert.Equal(t, "http://localhost:8371/callback", cfg.OAuth.RedirectURI)
	assert.Equal(t, []string{"scope1", "scope2"}, cfg.OAuth.Scopes)
	assert.Equal(t, "/tmp/lumiskin-test/credentials.db", cfg.StorePath)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "socks5://127.0.0.1:1080", cfg.ProxyURL)
}

func TestLoadConfig_AppliesEndpointDefaults(t *testing.T) {
	path := writeConfig(t, "oauth:\n  client-id: abc\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultAuthURL, cfg.Endpoints.AuthURL)
	assert.Equal(t, DefaultTokenURL, cfg.Endpoints.TokenURL)
	assert.Equal(t, DefaultRevokeURL, cfg.Endpoints.RevokeURL)
	assert.NotEmpty(t, cfg.StorePath)
	assert.NotContains(t, cfg.StorePath, "~")
}

func TestLoadConfig_EndpointOverrides(t *testing.T) {
	path := writeConfig(t, `
endpoints:
  auth-url: https://id.example/auth
  token-url: https://id.example/token
  revoke-url: https://id.example/revoke
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://id.example/auth", cfg.Endpoints.AuthURL)
	assert.Equal(t, "https://id.example/token", cfg.Endpoints.TokenURL)
	assert.Equal(t, "https://id.example/revoke", cfg.Endpoints.RevokeURL)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".lumiskin"), ExpandHome("~/.lumiskin"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/etc/lumiskin", ExpandHome("/etc/lumiskin"))
}
