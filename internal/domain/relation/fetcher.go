package relation

import (
	"context"
	"time"

	"followback/internal/errcodes"
	"followback/internal/pacing"

	"github.com/rs/zerolog/log"
)

const (
	DefaultPageSize  = 100
	DefaultCeiling   = 2000
	DefaultLowWater  = 50
	DefaultPagePause = 500 * time.Millisecond
)

type PageLister interface {
	ListRelationPage(ctx context.Context, subject Identity, kind Kind, page, perPage int) ([]Identity, error)
}

type QuotaChecker interface {
	CoreRemaining(ctx context.Context) (int, error)
}

// Observer is told about fetch progress. The fetcher itself never prints.
type Observer interface {
	PageLoaded(kind Kind, page, total int)
	LowQuota(kind Kind, remaining int)
}

type nopObserver struct{}

func (nopObserver) PageLoaded(Kind, int, int) {}
func (nopObserver) LowQuota(Kind, int)        {}

type FetchStatus string

const (
	StatusComplete       FetchStatus = "complete"
	StatusCeilingReached FetchStatus = "ceiling-reached"
	StatusAuthRejected   FetchStatus = "auth-rejected"
	StatusNotFound       FetchStatus = "not-found"
	StatusForbidden      FetchStatus = "forbidden"
	StatusRateLimited    FetchStatus = "rate-limited"
	StatusFailed         FetchStatus = "failed"
)

func statusFor(err error) FetchStatus {
	switch errcodes.KindOf(err) {
	case errcodes.AuthRejected:
		return StatusAuthRejected
	case errcodes.NotFound:
		return StatusNotFound
	case errcodes.Forbidden:
		return StatusForbidden
	case errcodes.RateLimited:
		return StatusRateLimited
	}

	return StatusFailed
}

// FetchResult is everything accumulated for one collection. When Incomplete
// is set the items are a prefix of the real collection.
type FetchResult struct {
	Subject    Identity
	Kind       Kind
	Items      Collection
	Pages      int
	Status     FetchStatus
	Incomplete bool
	LowQuota   bool
	Err        error
}

type Options struct {
	PageSize  int
	Ceiling   int
	LowWater  int
	PagePause time.Duration
}

func DefaultOptions() Options {
	return Options{
		PageSize:  DefaultPageSize,
		Ceiling:   DefaultCeiling,
		LowWater:  DefaultLowWater,
		PagePause: DefaultPagePause,
	}
}

type Fetcher struct {
	lister   PageLister
	quota    QuotaChecker
	pacer    *pacing.Pacer
	opts     Options
	Observer Observer
}

func NewFetcher(l PageLister, q QuotaChecker, p *pacing.Pacer, o Options) *Fetcher {
	return &Fetcher{
		lister:   l,
		quota:    q,
		pacer:    p,
		opts:     o,
		Observer: nopObserver{},
	}
}

// Fetch pages through one collection of subject. Remote failures stop the
// walk and are reported on the result, not returned; the returned error is
// only set for an invalid kind or a canceled context.
func (f *Fetcher) Fetch(ctx context.Context, subject Identity, kind Kind) (*FetchResult, error) {
	if !kind.IsValid() {
		return nil, errcodes.ErrUnknownRelationKind
	}

	res := &FetchResult{
		Subject: subject,
		Kind:    kind,
		Items:   Collection{},
		Status:  StatusComplete,
	}

	it := newPageIterator(func(ctx context.Context, page int) ([]Identity, error) {
		return f.lister.ListRelationPage(ctx, subject, kind, page, f.opts.PageSize)
	})

	for it.HasNext() {
		page := it.Page()
		items, err := it.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				res.Incomplete = true
				return res, ctx.Err()
			}

			res.Incomplete = true
			res.Status = statusFor(err)
			res.Err = err
			log.Warn().
				Err(err).
				Str("kind", string(kind)).
				Int("page", page).
				Int("loaded", len(res.Items)).
				Msg("fetch stopped early")

			return res, nil
		}
		if len(items) == 0 {
			break
		}

		res.Pages++
		res.Items = append(res.Items, items...)
		if len(res.Items) > f.opts.Ceiling {
			res.Items = res.Items[:f.opts.Ceiling]
		}
		f.Observer.PageLoaded(kind, page, len(res.Items))

		f.checkQuota(ctx, res)

		if len(res.Items) >= f.opts.Ceiling {
			res.Incomplete = true
			res.Status = StatusCeilingReached
			log.Warn().
				Str("kind", string(kind)).
				Int("ceiling", f.opts.Ceiling).
				Msg("reached safety ceiling")

			break
		}

		if err := f.pacer.Pause(ctx, f.opts.PagePause); err != nil {
			res.Incomplete = true
			return res, err
		}
	}

	return res, nil
}

func (f *Fetcher) checkQuota(ctx context.Context, res *FetchResult) {
	if f.quota == nil {
		return
	}

	remaining, err := f.quota.CoreRemaining(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("rate limit check failed during fetch")
		return
	}

	if remaining < f.opts.LowWater {
		res.LowQuota = true
		f.Observer.LowQuota(res.Kind, remaining)
	}
}
