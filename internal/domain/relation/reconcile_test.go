package relation

import (
	"math/rand"
	"testing"

	"followback/internal/errcodes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	t.Run("splits followers and following", func(t *testing.T) {
		p := Reconcile(NewCollection("a", "b", "c"), NewCollection("b", "c", "d"))
		assert.Equal(t, []Identity{"b", "c"}, p.Mutual)
		assert.Equal(t, []Identity{"d"}, p.OutboundOnly)
		assert.Equal(t, []Identity{"a"}, p.InboundOnly)
	})

	t.Run("empty inputs yield empty partitions", func(t *testing.T) {
		p := Reconcile(Collection{}, nil)
		assert.Empty(t, p.Mutual)
		assert.Empty(t, p.OutboundOnly)
		assert.Empty(t, p.InboundOnly)

		_, ok := p.FollowBackRatio()
		assert.False(t, ok)
	})

	t.Run("duplicates do not change membership", func(t *testing.T) {
		p := Reconcile(NewCollection("a", "a", "b"), NewCollection("b", "b", "c", "c"))
		assert.Equal(t, []Identity{"b"}, p.Mutual)
		assert.Equal(t, []Identity{"c"}, p.OutboundOnly)
		assert.Equal(t, []Identity{"a"}, p.InboundOnly)
	})

	t.Run("identities differing in case are distinct", func(t *testing.T) {
		p := Reconcile(NewCollection("Octocat"), NewCollection("octocat"))
		assert.Empty(t, p.Mutual)
		assert.Equal(t, []Identity{"octocat"}, p.OutboundOnly)
		assert.Equal(t, []Identity{"Octocat"}, p.InboundOnly)
	})

	t.Run("output is sorted", func(t *testing.T) {
		p := Reconcile(NewCollection("zed", "amy", "kim"), NewCollection("kim", "zed", "bob", "al"))
		assert.Equal(t, []Identity{"kim", "zed"}, p.Mutual)
		assert.Equal(t, []Identity{"al", "bob"}, p.OutboundOnly)
	})

	t.Run("is deterministic", func(t *testing.T) {
		f := NewCollection("a", "b", "c", "x")
		g := NewCollection("c", "x", "y")
		assert.Equal(t, Reconcile(f, g), Reconcile(f, g))
	})
}

func TestReconcile_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h", "A", "B"}

	randomCollection := func() Collection {
		var c Collection
		for i := rng.Intn(12); i > 0; i-- {
			c = append(c, Identity(pool[rng.Intn(len(pool))]))
		}
		return c
	}

	for i := 0; i < 200; i++ {
		followers := randomCollection()
		following := randomCollection()
		p := Reconcile(followers, following)

		seen := map[Identity]int{}
		for _, part := range [][]Identity{p.Mutual, p.OutboundOnly, p.InboundOnly} {
			for _, id := range part {
				seen[id]++
			}
		}

		union := map[Identity]bool{}
		for _, id := range followers {
			union[id] = true
		}
		for _, id := range following {
			union[id] = true
		}

		require.Len(t, seen, len(union), "union of partitions must equal followers ∪ following")
		for id, n := range seen {
			require.Equal(t, 1, n, "%s appears in more than one partition", id)
			require.True(t, union[id])
		}

		assert.Equal(t, len(newSet(following)), p.Following())
		assert.Equal(t, len(newSet(followers)), p.Followers())
	}
}

func TestPartition_FollowBackRatio(t *testing.T) {
	p := Reconcile(NewCollection("a", "b"), NewCollection("a", "b", "c", "d"))
	ratio, ok := p.FollowBackRatio()
	assert.True(t, ok)
	assert.InDelta(t, 50.0, ratio, 0.0001)
}

func TestPartition_Select(t *testing.T) {
	p := Reconcile(NewCollection("a", "b"), NewCollection("b", "c"))

	got, err := p.Select(PartitionNotFollowingBack)
	assert.NoError(t, err)
	assert.Equal(t, []Identity{"c"}, got)

	got, err = p.Select(PartitionFans)
	assert.NoError(t, err)
	assert.Equal(t, []Identity{"a"}, got)

	got, err = p.Select(PartitionMutual)
	assert.NoError(t, err)
	assert.Equal(t, []Identity{"b"}, got)

	_, err = p.Select("everyone")
	assert.Equal(t, errcodes.ErrUnknownPartition, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("followers")
	assert.NoError(t, err)
	assert.Equal(t, Followers, k)

	_, err = ParseKind("stargazers")
	assert.Equal(t, errcodes.ErrUnknownRelationKind, err)
}
