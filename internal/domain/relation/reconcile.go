package relation

import (
	"followback/internal/errcodes"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Partition names accepted by Partition.Select.
const (
	PartitionMutual           = "mutual"
	PartitionNotFollowingBack = "not-following-back"
	PartitionFans             = "fans"
)

// Partition splits followers ∪ following into three disjoint sets.
// Every slice is sorted lexicographically.
type Partition struct {
	Mutual       []Identity
	OutboundOnly []Identity
	InboundOnly  []Identity
}

type set map[Identity]struct{}

func newSet(c Collection) set {
	s := make(set, len(c))
	for _, id := range c {
		s[id] = struct{}{}
	}

	return s
}

func sorted(s set) []Identity {
	ids := maps.Keys(s)
	slices.Sort(ids)

	return ids
}

// Reconcile partitions the two collections. It has no side effects and
// duplicate entries do not change membership.
func Reconcile(followers, following Collection) *Partition {
	in := newSet(followers)
	out := newSet(following)

	mutual := set{}
	outbound := set{}
	inbound := set{}

	for id := range out {
		if _, ok := in[id]; ok {
			mutual[id] = struct{}{}
		} else {
			outbound[id] = struct{}{}
		}
	}

	for id := range in {
		if _, ok := out[id]; !ok {
			inbound[id] = struct{}{}
		}
	}

	return &Partition{
		Mutual:       sorted(mutual),
		OutboundOnly: sorted(outbound),
		InboundOnly:  sorted(inbound),
	}
}

func (p *Partition) Followers() int {
	return len(p.Mutual) + len(p.InboundOnly)
}

func (p *Partition) Following() int {
	return len(p.Mutual) + len(p.OutboundOnly)
}

// FollowBackRatio is the percentage of followed accounts that follow back.
// ok is false when nothing is followed.
func (p *Partition) FollowBackRatio() (ratio float64, ok bool) {
	following := p.Following()
	if following == 0 {
		return 0, false
	}

	return float64(len(p.Mutual)) / float64(following) * 100, true
}

func (p *Partition) Select(name string) ([]Identity, error) {
	switch name {
	case PartitionMutual:
		return p.Mutual, nil
	case PartitionNotFollowingBack:
		return p.OutboundOnly, nil
	case PartitionFans:
		return p.InboundOnly, nil
	}

	return nil, errcodes.ErrUnknownPartition
}
