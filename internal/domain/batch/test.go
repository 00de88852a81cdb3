package batch

import (
	"context"
	"time"

	"followback/internal/domain/mutation"
	"followback/internal/errcodes"
)

// MockMutator fails the targets listed in Failures and records call order.
// When CancelAfter is set it cancels Cancel after that many calls.
type MockMutator struct {
	Failures    map[string]errcodes.Kind
	Calls       []string
	CancelAfter int
	Cancel      context.CancelFunc
}

func (m *MockMutator) Mutate(ctx context.Context, kind mutation.Kind, t mutation.Target) (*mutation.Result, error) {
	if err := ctx.Err(); err != nil {
		return &mutation.Result{Target: t, Kind: kind, Code: errcodes.Canceled}, err
	}

	m.Calls = append(m.Calls, t.String())
	if m.Cancel != nil && len(m.Calls) == m.CancelAfter {
		m.Cancel()
	}

	res := &mutation.Result{Target: t, Kind: kind, OK: true, Message: "ok", At: time.Now()}
	if code, ok := m.Failures[t.String()]; ok {
		e := errcodes.New(code)
		res.OK = false
		res.Code = code
		res.Message = e.Error()
	}

	return res, nil
}

type RecordingObserver struct {
	Events    []string
	Ticks     []time.Duration
}

func (r *RecordingObserver) Started(i, n int, t mutation.Target) {
	r.Events = append(r.Events, "start "+t.String())
}

func (r *RecordingObserver) Finished(res *mutation.Result) {
	status := "ok"
	if !res.OK {
		status = "failed"
	}
	r.Events = append(r.Events, status+" "+res.Target.String())
}

func (r *RecordingObserver) Countdown(remaining time.Duration) {
	r.Ticks = append(r.Ticks, remaining)
}
