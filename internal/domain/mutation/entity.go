package mutation

import (
	"strings"
	"time"

	"followback/internal/domain/relation"
	"followback/internal/errcodes"

	"github.com/pkg/errors"
)

type Kind string

const (
	Follow   Kind = "follow"
	Unfollow Kind = "unfollow"
	Star     Kind = "star"
	Fork     Kind = "fork"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Follow, Unfollow, Star, Fork:
		return k, nil
	}

	return "", errors.Wrapf(errcodes.ErrUnknownMutationKind, "got %q", s)
}

// OnRepository reports whether the kind targets a repository rather than a
// user.
func (k Kind) OnRepository() bool {
	return k == Star || k == Fork
}

// Jitter is the random pause range applied before a call of this kind.
func (k Kind) Jitter() (time.Duration, time.Duration) {
	if k == Fork {
		return 2 * time.Second, 5 * time.Second
	}

	return time.Second, 3 * time.Second
}

// Target is either a user or an owner/repo pair.
type Target struct {
	User  relation.Identity
	Owner string
	Repo  string
}

func UserTarget(id relation.Identity) Target {
	return Target{User: id}
}

func ParseRepository(s string) (Target, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Target{}, errors.Wrapf(errcodes.ErrRepositoryMustBeInFormOwnerRepo, "got %q", s)
	}

	return Target{Owner: parts[0], Repo: parts[1]}, nil
}

// ParseTarget reads s as a user or a repository depending on kind.
func ParseTarget(kind Kind, s string) (Target, error) {
	if kind.OnRepository() {
		return ParseRepository(s)
	}

	id := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "@"))
	if id == "" {
		return Target{}, errcodes.ErrMissingTarget
	}

	return UserTarget(relation.Identity(id)), nil
}

func ParseTargets(kind Kind, in []string) ([]Target, error) {
	if len(in) == 0 {
		return nil, errcodes.ErrMissingTarget
	}

	out := make([]Target, 0, len(in))
	for _, s := range in {
		t, err := ParseTarget(kind, s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}

func UserTargets(ids []relation.Identity) []Target {
	out := make([]Target, len(ids))
	for i, id := range ids {
		out[i] = UserTarget(id)
	}

	return out
}

func (t Target) IsRepository() bool {
	return t.Owner != "" || t.Repo != ""
}

func (t Target) String() string {
	if t.IsRepository() {
		return t.Owner + "/" + t.Repo
	}

	return string(t.User)
}

type Result struct {
	Target  Target
	Kind    Kind
	OK      bool
	Message string
	Code    errcodes.Kind
	// URL of the new fork.
	URL string
	At  time.Time
}
