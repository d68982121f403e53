package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuard_FastOperationReturnsRealValue(t *testing.T) {
	start := time.Now()
	result := guard(context.Background(), time.Second, "fallback", "read", func(ctx context.Context) (string, error) {
		return "real", nil
	})

	assert.Equal(t, "real", result)
	assert.Less(t, time.Since(start), time.Second, "fast operation should not wait for the timeout")
}

func TestGuard_HungOperationReturnsFallback(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	start := time.Now()
	result := guard(context.Background(), 50*time.Millisecond, "fallback", "read", func(ctx context.Context) (string, error) {
		<-block
		return "late", nil
	})

	elapsed := time.Since(start)
	assert.Equal(t, "fallback", result)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestGuard_OperationErrorReturnsFallback(t *testing.T) {
	result := guard(context.Background(), time.Second, 42, "read", func(ctx context.Context) (int, error) {
		return 0, assert.AnError
	})

	assert.Equal(t, 42, result)
}
