package quota

import (
	"context"

	"github.com/rs/zerolog/log"
)

type Reader interface {
	RateLimits(ctx context.Context) (*State, error)
}

// Monitor reports quota state. It never waits for quota to replenish; the
// caller decides whether to continue.
type Monitor struct {
	reader Reader
}

func NewMonitor(r Reader) *Monitor {
	return &Monitor{reader: r}
}

func (m *Monitor) Check(ctx context.Context) (*State, error) {
	s, err := m.reader.RateLimits(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("core_remaining", s.Core.Remaining).
		Int("core_limit", s.Core.Limit).
		Int("search_remaining", s.Search.Remaining).
		Msg("rate limit checked")

	return s, nil
}

// CoreRemaining returns the remaining core quota.
func (m *Monitor) CoreRemaining(ctx context.Context) (int, error) {
	s, err := m.Check(ctx)
	if err != nil {
		return 0, err
	}

	return s.Core.Remaining, nil
}

// CoreExhausted reports whether the core quota is used up and, if so, the
// state it was read from.
func (m *Monitor) CoreExhausted(ctx context.Context) (*State, bool) {
	s, err := m.Check(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("rate limit check failed")
		return nil, false
	}

	return s, s.Core.Exhausted()
}
