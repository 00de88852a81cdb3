package pacing

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJitter(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	t.Run("stays within bounds", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			d := Jitter(rng, time.Second, 3*time.Second)
			assert.True(t, d >= time.Second && d <= 3*time.Second, "jitter %s out of range", d)
		}
	})

	t.Run("returns min for an empty range", func(t *testing.T) {
		assert.Equal(t, 2*time.Second, Jitter(rng, 2*time.Second, 2*time.Second))
		assert.Equal(t, 2*time.Second, Jitter(rng, 2*time.Second, time.Second))
	})
}

func TestReal_Sleep(t *testing.T) {
	t.Run("returns immediately for zero duration", func(t *testing.T) {
		assert.NoError(t, Real{}.Sleep(context.Background(), 0))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Real{}.Sleep(ctx, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("sleeps for short durations", func(t *testing.T) {
		start := time.Now()
		assert.NoError(t, Real{}.Sleep(context.Background(), 5*time.Millisecond))
		assert.True(t, time.Since(start) >= 5*time.Millisecond)
	})
}

func TestPacer_PauseJitter(t *testing.T) {
	p, s := NewMockPacer()
	d, err := p.PauseJitter(context.Background(), 2*time.Second, 5*time.Second)
	assert.NoError(t, err)
	assert.Equal(t, []time.Duration{d}, s.Slept)
	assert.True(t, d >= 2*time.Second && d <= 5*time.Second)
}
