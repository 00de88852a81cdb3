package pacing

import (
	"context"
	"math/rand"
	"time"
)

// MockSleeper records requested pauses without waiting.
type MockSleeper struct {
	Slept      []time.Duration
	ErrorValue error
}

func (m *MockSleeper) Sleep(ctx context.Context, d time.Duration) error {
	m.Slept = append(m.Slept, d)
	if m.ErrorValue != nil {
		return m.ErrorValue
	}

	return ctx.Err()
}

func (m *MockSleeper) Total() time.Duration {
	var total time.Duration
	for _, d := range m.Slept {
		total += d
	}

	return total
}

func NewMockPacer() (*Pacer, *MockSleeper) {
	s := &MockSleeper{}

	return &Pacer{Sleeper: s, Rand: rand.New(rand.NewSource(1))}, s
}
