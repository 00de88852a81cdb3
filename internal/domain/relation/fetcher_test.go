package relation

import (
	"context"
	"testing"
	"time"

	"followback/internal/errcodes"
	"followback/internal/pacing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(l PageLister, q QuotaChecker) (*Fetcher, *pacing.MockSleeper) {
	p, s := pacing.NewMockPacer()
	return NewFetcher(l, q, p, DefaultOptions()), s
}

func TestFetcher_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("reads pages until an empty page", func(t *testing.T) {
		l := &MockPageLister{Pages: map[Kind][][]Identity{
			Followers: GeneratePages("u", 250, 100),
		}}
		f, s := newTestFetcher(l, &MockQuotaChecker{Remaining: 5000})

		res, err := f.Fetch(ctx, "me", Followers)
		require.NoError(t, err)
		assert.Len(t, res.Items, 250)
		assert.Equal(t, 3, res.Pages)
		assert.Equal(t, StatusComplete, res.Status)
		assert.False(t, res.Incomplete)
		assert.Equal(t, []string{
			"me/followers?page=1&per_page=100",
			"me/followers?page=2&per_page=100",
			"me/followers?page=3&per_page=100",
			"me/followers?page=4&per_page=100",
		}, l.Requests)
		assert.Equal(t, []time.Duration{DefaultPagePause, DefaultPagePause, DefaultPagePause}, s.Slept)
	})

	t.Run("keeps input order", func(t *testing.T) {
		l := &MockPageLister{Pages: map[Kind][][]Identity{
			Following: {{"zed", "amy"}, {"bob"}},
		}}
		f, _ := newTestFetcher(l, nil)

		res, err := f.Fetch(ctx, "me", Following)
		require.NoError(t, err)
		assert.Equal(t, Collection{"zed", "amy", "bob"}, res.Items)
	})

	t.Run("empty collection", func(t *testing.T) {
		f, s := newTestFetcher(&MockPageLister{}, nil)

		res, err := f.Fetch(ctx, "me", Following)
		require.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.Equal(t, StatusComplete, res.Status)
		assert.Empty(t, s.Slept)
	})

	t.Run("stops at the safety ceiling and flags the result", func(t *testing.T) {
		l := &MockPageLister{Pages: map[Kind][][]Identity{
			Followers: GeneratePages("u", 2600, 100),
		}}
		f, _ := newTestFetcher(l, &MockQuotaChecker{Remaining: 5000})

		res, err := f.Fetch(ctx, "me", Followers)
		require.NoError(t, err)
		assert.Len(t, res.Items, 2000)
		assert.True(t, res.Incomplete)
		assert.Equal(t, StatusCeilingReached, res.Status)
		assert.Nil(t, res.Err)
		assert.Len(t, l.Requests, 20)
	})

	t.Run("truncates an oversized page to the ceiling", func(t *testing.T) {
		l := &MockPageLister{Pages: map[Kind][][]Identity{
			Followers: GeneratePages("u", 30, 30),
		}}
		p, _ := pacing.NewMockPacer()
		f := NewFetcher(l, nil, p, Options{PageSize: 30, Ceiling: 25, LowWater: 50})

		res, err := f.Fetch(ctx, "me", Followers)
		require.NoError(t, err)
		assert.Len(t, res.Items, 25)
		assert.Equal(t, StatusCeilingReached, res.Status)
	})

	t.Run("warns on low quota and keeps going", func(t *testing.T) {
		l := &MockPageLister{Pages: map[Kind][][]Identity{
			Followers: GeneratePages("u", 150, 100),
		}}
		q := &MockQuotaChecker{Remaining: 49}
		o := &RecordingObserver{}
		f, _ := newTestFetcher(l, q)
		f.Observer = o

		res, err := f.Fetch(ctx, "me", Followers)
		require.NoError(t, err)
		assert.Len(t, res.Items, 150)
		assert.True(t, res.LowQuota)
		assert.Equal(t, []int{49, 49}, o.Low)
		assert.Equal(t, []int{100, 150}, o.Loaded)
		assert.Equal(t, 2, q.Calls)
	})

	t.Run("quota at the low-water mark is not low", func(t *testing.T) {
		l := &MockPageLister{Pages: map[Kind][][]Identity{Followers: {{"a"}}}}
		f, _ := newTestFetcher(l, &MockQuotaChecker{Remaining: 50})

		res, err := f.Fetch(ctx, "me", Followers)
		require.NoError(t, err)
		assert.False(t, res.LowQuota)
	})

	t.Run("ignores failed quota checks", func(t *testing.T) {
		l := &MockPageLister{Pages: map[Kind][][]Identity{Followers: {{"a"}}}}
		f, _ := newTestFetcher(l, &MockQuotaChecker{ErrorValue: errors.New("down")})

		res, err := f.Fetch(ctx, "me", Followers)
		require.NoError(t, err)
		assert.Equal(t, Collection{"a"}, res.Items)
		assert.False(t, res.LowQuota)
	})

	failures := []struct {
		name   string
		err    error
		status FetchStatus
	}{
		{"auth rejected", errcodes.WithStatus(errcodes.AuthRejected, 401), StatusAuthRejected},
		{"not found", errcodes.WithStatus(errcodes.NotFound, 404), StatusNotFound},
		{"forbidden", errcodes.WithStatus(errcodes.Forbidden, 403), StatusForbidden},
		{"rate limited", errcodes.WithStatus(errcodes.RateLimited, 403), StatusRateLimited},
		{"network", errcodes.Wrap(errcodes.TransientNetworkFailure, errors.New("reset")), StatusFailed},
	}
	for _, tt := range failures {
		t.Run("returns partial result on "+tt.name, func(t *testing.T) {
			l := &MockPageLister{
				Pages:    map[Kind][][]Identity{Following: GeneratePages("u", 300, 100)},
				Failures: map[Kind]map[int]error{Following: {2: tt.err}},
			}
			f, _ := newTestFetcher(l, nil)

			res, err := f.Fetch(ctx, "me", Following)
			require.NoError(t, err)
			assert.Len(t, res.Items, 100)
			assert.True(t, res.Incomplete)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.err, res.Err)
		})
	}

	t.Run("returns the context error when canceled during the pause", func(t *testing.T) {
		l := &MockPageLister{Pages: map[Kind][][]Identity{Followers: GeneratePages("u", 300, 100)}}
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		f, _ := newTestFetcher(l, nil)

		res, err := f.Fetch(cctx, "me", Followers)
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, res.Incomplete)
		assert.Len(t, res.Items, 100)
	})

	t.Run("rejects unknown kinds before any request", func(t *testing.T) {
		l := &MockPageLister{}
		f, _ := newTestFetcher(l, nil)

		_, err := f.Fetch(ctx, "me", Kind("stargazers"))
		assert.Equal(t, errcodes.ErrUnknownRelationKind, err)
		assert.Empty(t, l.Requests)
	})
}

func TestAnalyze(t *testing.T) {
	l := &MockPageLister{Pages: map[Kind][][]Identity{
		Followers: {{"a", "b", "c"}},
		Following: {{"b", "c", "d"}},
	}}
	f, _ := newTestFetcher(l, nil)

	a, err := Analyze(context.Background(), f, "me")
	require.NoError(t, err)
	assert.False(t, a.Incomplete())
	assert.Equal(t, []Identity{"b", "c"}, a.Partition.Mutual)
	assert.Equal(t, []Identity{"d"}, a.Partition.OutboundOnly)
	assert.Equal(t, []Identity{"a"}, a.Partition.InboundOnly)

	t.Run("is incomplete when one side is", func(t *testing.T) {
		l := &MockPageLister{
			Pages:    map[Kind][][]Identity{Followers: {{"a"}}},
			Failures: map[Kind]map[int]error{Following: {1: errcodes.New(errcodes.AuthRejected)}},
		}
		f, _ := newTestFetcher(l, nil)

		a, err := Analyze(context.Background(), f, "me")
		require.NoError(t, err)
		assert.True(t, a.Incomplete())
		assert.Equal(t, StatusAuthRejected, a.Following.Status)

		candidates, err := a.UnfollowCandidates()
		assert.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("unfollow candidates need every follower", func(t *testing.T) {
		l := &MockPageLister{
			Pages:    map[Kind][][]Identity{Following: {{"b", "c"}}},
			Failures: map[Kind]map[int]error{Followers: {1: errcodes.WithStatus(errcodes.TransientNetworkFailure, 502)}},
		}
		f, _ := newTestFetcher(l, nil)

		a, err := Analyze(context.Background(), f, "me")
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, a.Followers.Status)

		candidates, err := a.UnfollowCandidates()
		assert.ErrorIs(t, err, errcodes.ErrIncompleteFollowers)
		assert.Equal(t, []Identity{"b", "c"}, candidates)
	})

	t.Run("unfollow candidates of a complete analysis", func(t *testing.T) {
		candidates, err := a.UnfollowCandidates()
		assert.NoError(t, err)
		assert.Equal(t, []Identity{"d"}, candidates)
	})
}
