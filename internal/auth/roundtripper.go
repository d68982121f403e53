package auth

import "net/http"

// AuthenticatedClient returns an HTTP client that resolves an access token
// per request and attaches it as a bearer credential. When no token can be
// resolved the request goes out without an Authorization header; the caller
// decides how to react to the provider's 401. Passing nil uses a fresh
// client with the manager's proxy-aware transport.
func (m *Manager) AuthenticatedClient(base *http.Client) *http.Client {
	if base == nil {
		base = &http.Client{Transport: m.httpClient.Transport}
	}
	inner := base.Transport
	if inner == nil {
		inner = http.DefaultTransport
	}
	clone := *base
	clone.Transport = &bearerTransport{manager: m, base: inner}
	return &clone
}

type bearerTransport struct {
	manager *Manager
	base    http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.manager.GetAccessToken(req.Context()); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}
