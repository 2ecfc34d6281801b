package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterExhaustsAndRefills(t *testing.T) {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     3,
		interval: 50 * time.Millisecond,
	}

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, rl.allow("10.0.0.1"), "bucket should be empty")

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.allow("10.0.0.1"), "bucket should refill after the interval")
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     1,
		interval: time.Minute,
	}

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"), "a second client has its own bucket")
}
