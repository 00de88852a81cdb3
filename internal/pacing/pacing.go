// Package pacing shapes request cadence. Every pause in the tool goes through
// a Sleeper so tests can run without waiting.
package pacing

import (
	"context"
	"math/rand"
	"time"
)

type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Real sleeps on the wall clock and returns early with ctx.Err() when the
// context is done.
type Real struct{}

func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type Pacer struct {
	Sleeper Sleeper
	Rand    *rand.Rand
}

func New() *Pacer {
	return &Pacer{
		Sleeper: Real{},
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Jitter returns a uniformly distributed duration in [min, max].
func Jitter(rng *rand.Rand, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}

	return min + time.Duration(rng.Int63n(int64(max-min)+1))
}

func (p *Pacer) Pause(ctx context.Context, d time.Duration) error {
	return p.Sleeper.Sleep(ctx, d)
}

// PauseJitter sleeps for a random duration in [min, max] and reports it.
func (p *Pacer) PauseJitter(ctx context.Context, min, max time.Duration) (time.Duration, error) {
	d := Jitter(p.Rand, min, max)

	return d, p.Sleeper.Sleep(ctx, d)
}
