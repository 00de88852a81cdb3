package quota

import "time"

const (
	CoreLowThreshold   = 100
	SearchLowThreshold = 10
)

// Resource is the remaining/limit/reset snapshot of one rate-limited class.
type Resource struct {
	Limit     int
	Remaining int
	Used      int
	Reset     time.Time
}

func (r Resource) UsedPercent() float64 {
	if r.Limit <= 0 {
		return 0
	}

	return float64(r.Limit-r.Remaining) / float64(r.Limit) * 100
}

func (r Resource) ResetIn(now time.Time) time.Duration {
	if r.Reset.Before(now) {
		return 0
	}

	return r.Reset.Sub(now)
}

func (r Resource) Exhausted() bool {
	return r.Limit > 0 && r.Remaining == 0
}

// State is fetched on demand and never cached.
type State struct {
	Core    Resource
	Search  Resource
	GraphQL *Resource
}

func (s *State) CoreLow() bool {
	return s.Core.Remaining < CoreLowThreshold
}

func (s *State) SearchLow() bool {
	return s.Search.Remaining < SearchLowThreshold
}

func (s *State) Low() bool {
	return s.CoreLow() || s.SearchLow()
}
