// Package batch applies one mutation kind to an ordered list of targets, one
// at a time, with a fixed pause between them.
package batch

import (
	"context"
	"time"

	"followback/internal/domain/mutation"
	"followback/internal/errcodes"
	"followback/internal/pacing"

	"github.com/rs/zerolog/log"
)

// RecommendedUnfollowCap is advisory. Run never enforces it.
const RecommendedUnfollowCap = 50

const interrupted = "batch interrupted"

type Mutator interface {
	Mutate(ctx context.Context, kind mutation.Kind, target mutation.Target) (*mutation.Result, error)
}

type Observer interface {
	Started(i, n int, target mutation.Target)
	Finished(res *mutation.Result)
	// Countdown is called once per second of the inter-target delay with the
	// time left.
	Countdown(remaining time.Duration)
}

type nopObserver struct{}

func (nopObserver) Started(int, int, mutation.Target) {}
func (nopObserver) Finished(*mutation.Result)         {}
func (nopObserver) Countdown(time.Duration)           {}

type Outcome struct {
	Kind       mutation.Kind
	Total      int
	Successful []*mutation.Result
	Failed     []*mutation.Result
	Started    time.Time
	Finished   time.Time
}

func (o *Outcome) Elapsed() time.Duration {
	return o.Finished.Sub(o.Started)
}

type Runner struct {
	mutator Mutator
	pacer   *pacing.Pacer
	now     func() time.Time
}

func NewRunner(m Mutator, p *pacing.Pacer) *Runner {
	return &Runner{mutator: m, pacer: p, now: time.Now}
}

// Run processes targets strictly in order. A failed target never stops the
// batch. Every target ends up in exactly one of Successful or Failed, even
// when the batch is interrupted or the session is missing; in those cases the
// error is returned alongside the complete outcome.
func (r *Runner) Run(
	ctx context.Context,
	kind mutation.Kind,
	targets []mutation.Target,
	delay time.Duration,
	o Observer,
) (*Outcome, error) {
	if o == nil {
		o = nopObserver{}
	}

	out := &Outcome{
		Kind:       kind,
		Total:      len(targets),
		Successful: []*mutation.Result{},
		Failed:     []*mutation.Result{},
		Started:    r.now(),
	}
	defer func() { out.Finished = r.now() }()

	if delay < 0 {
		r.abandon(out, kind, targets, errcodes.ErrNegativeDelay.Error(), errcodes.Unexpected)
		return out, errcodes.ErrNegativeDelay
	}
	if _, err := mutation.ParseKind(string(kind)); err != nil {
		r.abandon(out, kind, targets, err.Error(), errcodes.Unexpected)
		return out, err
	}

	for i, t := range targets {
		o.Started(i, len(targets), t)

		res, err := r.mutator.Mutate(ctx, kind, t)
		if err != nil {
			// no session to act under, or canceled
			if res == nil {
				res = &mutation.Result{Target: t, Kind: kind, At: r.now()}
			}
			res.OK = false
			res.Code = errcodes.KindOf(err)
			res.Message = err.Error()
			if res.Code != errcodes.AuthRequired {
				res.Code = errcodes.Canceled
				res.Message = interrupted
			}
			r.record(out, res)
			o.Finished(res)
			r.abandon(out, kind, targets[i+1:], res.Message, res.Code)
			log.Debug().Err(err).Int("done", i).Int("total", len(targets)).Msg("batch stopped")

			return out, err
		}
		r.record(out, res)
		o.Finished(res)

		if i == len(targets)-1 {
			break
		}

		if err := r.countdown(ctx, delay, o); err != nil {
			r.abandon(out, kind, targets[i+1:], interrupted, errcodes.Canceled)
			return out, err
		}
	}

	log.Debug().
		Str("kind", string(kind)).
		Int("successful", len(out.Successful)).
		Int("failed", len(out.Failed)).
		Msg("batch finished")

	return out, nil
}

func (r *Runner) record(out *Outcome, res *mutation.Result) {
	if res.OK {
		out.Successful = append(out.Successful, res)
	} else {
		out.Failed = append(out.Failed, res)
	}
}

func (r *Runner) abandon(out *Outcome, kind mutation.Kind, rest []mutation.Target, msg string, code errcodes.Kind) {
	for _, t := range rest {
		out.Failed = append(out.Failed, &mutation.Result{
			Target:  t,
			Kind:    kind,
			Message: msg,
			Code:    code,
			At:      r.now(),
		})
	}
}

func (r *Runner) countdown(ctx context.Context, delay time.Duration, o Observer) error {
	for left := delay; left > 0; {
		o.Countdown(left)

		step := time.Second
		if left < step {
			step = left
		}
		if err := r.pacer.Pause(ctx, step); err != nil {
			return err
		}
		left -= step
	}

	return ctx.Err()
}
