package mutation

import (
	"context"
	"time"

	"followback/internal/domain/quota"
	"followback/internal/domain/relation"
	"followback/internal/errcodes"
	"followback/internal/pacing"
	"followback/internal/session"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type API interface {
	Follow(ctx context.Context, id relation.Identity) error
	Unfollow(ctx context.Context, id relation.Identity) error
	Star(ctx context.Context, owner, repo string) error
	Fork(ctx context.Context, owner, repo string) (string, error)
	ForkParent(ctx context.Context, owner, repo string) (string, bool, error)
}

type QuotaChecker interface {
	CoreExhausted(ctx context.Context) (*quota.State, bool)
}

type Executor struct {
	session *session.Session
	api     API
	quota   QuotaChecker
	pacer   *pacing.Pacer
	now     func() time.Time
}

func NewExecutor(s *session.Session, api API, q QuotaChecker, p *pacing.Pacer) *Executor {
	return &Executor{
		session: s,
		api:     api,
		quota:   q,
		pacer:   p,
		now:     time.Now,
	}
}

// Mutate performs one change on behalf of the session user. Remote failures
// are reported in the Result; the error is reserved for a missing session and
// a canceled context.
func (e *Executor) Mutate(ctx context.Context, kind Kind, target Target) (*Result, error) {
	res := &Result{Target: target, Kind: kind}

	if err := session.Require(e.session); err != nil {
		return e.fail(res, err), err
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return e.fail(res, err), err
	}

	if kind == Follow && e.session.IsSelf(target.User) {
		return e.fail(res, errcodes.New(errcodes.SelfReferenceRejected)), nil
	}

	min, max := kind.Jitter()
	d, err := e.pacer.PauseJitter(ctx, min, max)
	if err != nil {
		return e.fail(res, errcodes.Wrap(errcodes.Canceled, err)), err
	}

	logger := log.With().Str("kind", string(kind)).Str("target", target.String()).Logger()
	logger.Debug().Dur("jitter", d).Msg("mutating")

	err = e.call(ctx, kind, target, res)
	if err != nil {
		if ctx.Err() != nil {
			return e.fail(res, err), ctx.Err()
		}

		err = e.refineForbidden(ctx, kind, target, err)
		logger.Debug().Err(err).Msg("mutation failed")

		return e.fail(res, err), nil
	}

	res.OK = true
	res.Message = "ok"
	res.At = e.now()
	e.session.Record(session.Action(kind), target.String())
	logger.Debug().Msg("mutation succeeded")

	return res, nil
}

func (e *Executor) call(ctx context.Context, kind Kind, target Target, res *Result) error {
	switch kind {
	case Follow:
		return e.api.Follow(ctx, target.User)
	case Unfollow:
		return e.api.Unfollow(ctx, target.User)
	case Star:
		return e.api.Star(ctx, target.Owner, target.Repo)
	case Fork:
		url, err := e.api.Fork(ctx, target.Owner, target.Repo)
		res.URL = url
		return err
	}

	return errors.Wrapf(errcodes.ErrUnknownMutationKind, "got %q", kind)
}

// refineForbidden narrows a 403 into RateLimited or AlreadyForked when the
// extra reads say so.
func (e *Executor) refineForbidden(ctx context.Context, kind Kind, target Target, err error) error {
	if errcodes.KindOf(err) != errcodes.Forbidden {
		return err
	}

	if s, exhausted := e.quota.CoreExhausted(ctx); exhausted {
		return &errcodes.Error{Kind: errcodes.RateLimited, Status: 403, Reset: s.Core.Reset, Err: err}
	}

	if kind == Fork {
		parent, isFork, perr := e.api.ForkParent(ctx, string(e.session.Identity), target.Repo)
		if perr == nil && isFork && parent == target.String() {
			return &errcodes.Error{Kind: errcodes.AlreadyForked, Status: 403, Err: err}
		}
	}

	return err
}

func (e *Executor) fail(res *Result, err error) *Result {
	res.OK = false
	res.Code = errcodes.KindOf(err)
	res.Message = err.Error()
	res.At = e.now()

	return res
}
