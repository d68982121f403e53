package auth

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// guard races op against a deadline. If the deadline fires first, or op fails,
// the supplied fallback is returned and a warning is logged; guard itself
// never returns an error. The losing operation is not cancelled, only its
// result is discarded, so a slow store write may still complete after guard
// has already returned the fallback.
func guard[T any](ctx context.Context, timeout time.Duration, fallback T, label string, op func(context.Context) (T, error)) T {
	done := make(chan T, 1)
	go func() {
		value, err := op(ctx)
		if err != nil {
			log.Warnf("credential store %s failed: %v", label, err)
			done <- fallback
			return
		}
		done <- value
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case value := <-done:
		return value
	case <-timer.C:
		log.Warnf("credential store %s timed out after %s, using fallback", label, timeout)
		return fallback
	}
}
