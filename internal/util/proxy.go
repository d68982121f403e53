// Package util provides small helpers shared across the LumiSkin CLI,
// currently proxy-aware HTTP client construction.
package util

import (
	"context"
	"net"
	"net/http"
	"net/url"

	"github.com/lumiskin/lumiskin-cli/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"
)

// NewHTTPClient returns an HTTP client configured with the proxy settings
// from the configuration, supporting SOCKS5, HTTP, and HTTPS proxies.
// When no proxy is configured the default transport is used.
func NewHTTPClient(cfg *config.Config) *http.Client {
	httpClient := &http.Client{}
	if cfg == nil || cfg.ProxyURL == "" {
		return httpClient
	}

	proxyURL, err := url.Parse(cfg.ProxyURL)
	if err != nil {
		log.Warnf("invalid proxy url %q: %v", cfg.ProxyURL, err)
		return httpClient
	}

	var transport *http.Transport
	switch proxyURL.Scheme {
	case "socks5":
		username := proxyURL.User.Username()
		password, _ := proxyURL.User.Password()
		proxyAuth := &proxy.Auth{User: username, Password: password}
		dialer, errSOCKS5 := proxy.SOCKS5("tcp", proxyURL.Host, proxyAuth, proxy.Direct)
		if errSOCKS5 != nil {
			log.Errorf("create SOCKS5 dialer failed: %v", errSOCKS5)
			return httpClient
		}
		transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}
	case "http", "https":
		transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	default:
		log.Warnf("unsupported proxy scheme %q, ignoring proxy", proxyURL.Scheme)
	}

	if transport != nil {
		httpClient.Transport = transport
	}
	return httpClient
}
