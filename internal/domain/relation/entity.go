package relation

import (
	"followback/internal/errcodes"
)

// Identity is an account login. It is compared as an exact string, so
// "Octocat" and "octocat" are different identities.
type Identity string

// Collection is a fetched list of identities in the order the API returned them.
type Collection []Identity

type Kind string

const (
	Followers Kind = "followers"
	Following Kind = "following"
)

func (k Kind) IsValid() bool {
	return k == Followers || k == Following
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", errcodes.ErrUnknownRelationKind
	}

	return k, nil
}

func (c Collection) Strings() []string {
	out := make([]string, 0, len(c))
	for _, id := range c {
		out = append(out, string(id))
	}

	return out
}

func NewCollection(ids ...string) Collection {
	c := make(Collection, 0, len(ids))
	for _, id := range ids {
		c = append(c, Identity(id))
	}

	return c
}
