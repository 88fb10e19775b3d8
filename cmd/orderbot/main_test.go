package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextBackoffDoublesToCap(t *testing.T) {
	b := backoffMin
	var seen []time.Duration
	for i := 0; i < 8; i++ {
		seen = append(seen, b)
		b = nextBackoff(b)
	}
	assert.Equal(t, []time.Duration{
		1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
		16 * time.Second, 32 * time.Second, 60 * time.Second, 60 * time.Second,
	}, seen)
}

func TestSupervisorWindows(t *testing.T) {
	assert.Greater(t, shutdownWindow, time.Duration(0))
	assert.Greater(t, healthyUptime, backoffMax, "a run must outlive the longest backoff to count as healthy")
}
