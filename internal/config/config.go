// Package config provides configuration management for the LumiSkin CLI.
// It handles loading and parsing YAML configuration files, and provides
// structured access to application settings including OAuth client
// credentials, identity provider endpoints, the credential store location,
// debug settings, and proxy configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default identity provider endpoints. They can be overridden per deployment
// through the endpoints section of the configuration file.
const (
	DefaultAuthURL   = "https://accounts.google.com/o/oauth2/v2/auth"
	DefaultTokenURL  = "https://oauth2.googleapis.com/token"
	DefaultRevokeURL = "https://oauth2.googleapis.com/revoke"
)

// Config represents the application's configuration, loaded from a YAML file.
type Config struct {
	// OAuth holds the client registration used for the authorization flow.
	OAuth OAuth `yaml:"oauth"`

	// Endpoints optionally overrides the identity provider endpoints.
	Endpoints Endpoints `yaml:"endpoints"`

	// StorePath is the path of the credential store database file.
	StorePath string `yaml:"store-path"`

	// Debug enables or disables debug-level logging and other debug features.
	Debug bool `yaml:"debug"`

	// LoggingToFile writes logs to rotating files instead of stdout.
	LoggingToFile bool `yaml:"logging-to-file"`

	// ProxyURL is the URL of an optional proxy server to use for outbound requests.
	ProxyURL string `yaml:"proxy-url"`
}

// OAuth represents the OAuth client registration for the identity provider.
type OAuth struct {
	// ClientID is the OAuth2 client identifier issued by the provider.
	ClientID string `yaml:"client-id"`

	// ClientSecret is the optional OAuth2 client secret.
	ClientSecret string `yaml:"client-secret"`

	// RedirectURI is the redirect target registered with the provider.
	RedirectURI string `yaml:"redirect-uri"`

	// Scopes is the ordered list of scopes requested during authorization.
	Scopes []string `yaml:"scopes"`
}

// Endpoints represents the identity provider endpoint overrides.
type Endpoints struct {
	// AuthURL is the provider's authorization endpoint.
	AuthURL string `yaml:"auth-url"`

	// TokenURL is the provider's token endpoint.
	TokenURL string `yaml:"token-url"`

	// RevokeURL is the provider's revocation endpoint.
	RevokeURL string `yaml:"revoke-url"`
}

// LoadConfig reads a YAML configuration file from the given path,
// unmarshals it into a Config struct, applies defaults, and returns it.
func LoadConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Endpoints.AuthURL == "" {
		c.Endpoints.AuthURL = DefaultAuthURL
	}
	if c.Endpoints.TokenURL == "" {
		c.Endpoints.TokenURL = DefaultTokenURL
	}
	if c.Endpoints.RevokeURL == "" {
		c.Endpoints.RevokeURL = DefaultRevokeURL
	}
	if c.StorePath == "" {
		c.StorePath = filepath.Join("~", ".lumiskin", "credentials.db")
	}
	c.StorePath = ExpandHome(c.StorePath)
}

// ExpandHome replaces a leading "~" in path with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	rest := strings.TrimPrefix(path, "~")
	rest = strings.TrimPrefix(rest, string(os.PathSeparator))
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest)
}
