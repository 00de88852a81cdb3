package relation

import (
	"context"

	"followback/internal/errcodes"

	"github.com/pkg/errors"
)

// Analysis is the follow-back picture of one account.
type Analysis struct {
	Subject   Identity
	Followers *FetchResult
	Following *FetchResult
	Partition *Partition
}

// Incomplete reports whether either collection is only a prefix, in which case
// the partition can misplace identities.
func (a *Analysis) Incomplete() bool {
	return a.Followers.Incomplete || a.Following.Incomplete
}

// UnfollowCandidates returns the identities subject follows that do not
// follow back. When the followers list is only a prefix the candidates are
// still returned but come with ErrIncompleteFollowers, as some of them may
// follow back.
func (a *Analysis) UnfollowCandidates() ([]Identity, error) {
	if a.Followers.Incomplete {
		return a.Partition.OutboundOnly, errors.Wrapf(errcodes.ErrIncompleteFollowers,
			"followers stopped after %d with status %s", len(a.Followers.Items), a.Followers.Status)
	}

	return a.Partition.OutboundOnly, nil
}

func Analyze(ctx context.Context, f *Fetcher, subject Identity) (*Analysis, error) {
	followers, err := f.Fetch(ctx, subject, Followers)
	if err != nil {
		return nil, err
	}

	following, err := f.Fetch(ctx, subject, Following)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Subject:   subject,
		Followers: followers,
		Following: following,
		Partition: Reconcile(followers.Items, following.Items),
	}, nil
}
