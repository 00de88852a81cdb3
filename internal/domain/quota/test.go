package quota

import "context"

type MockReader struct {
	State      *State
	ErrorValue error
	Calls      int
}

func (m *MockReader) RateLimits(ctx context.Context) (*State, error) {
	m.Calls++
	if m.ErrorValue != nil {
		return nil, m.ErrorValue
	}

	return m.State, nil
}
