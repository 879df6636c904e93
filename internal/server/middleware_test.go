package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := newRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.get("192.0.2.1")
	l.get("192.0.2.2")
	assert.Equal(t, 2, l.size())

	now = now.Add(limiterIdleTTL / 2)
	l.get("192.0.2.2")

	now = now.Add(limiterIdleTTL / 2)
	l.get("192.0.2.3")
	assert.Equal(t, 2, l.size(), "the idle client is dropped, the active ones stay")

	now = now.Add(2 * limiterIdleTTL)
	l.get("192.0.2.4")
	assert.Equal(t, 1, l.size())
}

func TestRateLimiter_KeepsBucketWhileActive(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := newRateLimiter(0.001, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.get("192.0.2.1").Allow())
	now = now.Add(time.Second)
	assert.False(t, l.get("192.0.2.1").Allow(), "an active client keeps its drained bucket")
}
