package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewEventRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("conn-1"), "attempt %d should pass", i)
	}
	assert.False(t, rl.Allow("conn-1"))

	// Another connection has its own window.
	assert.True(t, rl.Allow("conn-2"))
}

func TestEventRateLimiter_WindowSlides(t *testing.T) {
	rl := NewEventRateLimiter(2, 30*time.Millisecond)

	assert.True(t, rl.Allow("conn-1"))
	assert.True(t, rl.Allow("conn-1"))
	assert.False(t, rl.Allow("conn-1"))

	time.Sleep(50 * time.Millisecond)
	assert.True(t, rl.Allow("conn-1"), "old attempts fall out of the window")
}

func TestEventRateLimiter_Forget(t *testing.T) {
	rl := NewEventRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("conn-1"))
	assert.False(t, rl.Allow("conn-1"))

	rl.Forget("conn-1")
	assert.True(t, rl.Allow("conn-1"))
}
