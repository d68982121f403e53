package auth

import (
	"sync"
	"time"
)

// tokenCache is a short-lived in-process view of the last token resolution.
// It holds definitive outcomes only: a usable token or "" for "none
// available". Entries older than the cache window are ignored, so clearing
// the cache early is always safe.
type tokenCache struct {
	mu        sync.Mutex
	token     string
	fetchedAt time.Time
	populated bool
}

// read returns the cached token and whether the entry is still inside the
// cache window at now.
func (c *tokenCache) read(now time.Time, window time.Duration) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.populated || now.Sub(c.fetchedAt) >= window {
		return "", false
	}
	return c.token, true
}

// write records a definitive resolution outcome at now.
func (c *tokenCache) write(token string, now time.Time) {
	c.mu.Lock()
	c.token = token
	c.fetchedAt = now
	c.populated = true
	c.mu.Unlock()
}

// clear drops the cached entry so the next read goes back to storage.
func (c *tokenCache) clear() {
	c.mu.Lock()
	c.populated = false
	c.token = ""
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
