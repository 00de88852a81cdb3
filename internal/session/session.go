// Package session holds the verified identity of the acting user and the
// record of what was changed on its behalf during this run.
package session

import (
	"context"
	"strings"
	"time"

	"followback/internal/domain/relation"
	"followback/internal/errcodes"

	"github.com/rs/zerolog/log"
)

type Action string

const (
	ActionFollow   Action = "follow"
	ActionUnfollow Action = "unfollow"
	ActionStar     Action = "star"
	ActionFork     Action = "fork"
)

type Entry struct {
	Action Action
	Target string
	At     time.Time
}

type Verifier interface {
	Verify(ctx context.Context) (relation.Identity, error)
}

// Session is created by Login and passed explicitly to everything that
// mutates on the user's behalf. It is not safe for concurrent writers.
type Session struct {
	Identity relation.Identity
	Started  time.Time

	entries []Entry
	now     func() time.Time
}

func Login(ctx context.Context, v Verifier, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errcodes.New(errcodes.AuthRequired)
	}

	id, err := v.Verify(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("identity", string(id)).Msg("logged in")

	return New(id), nil
}

func New(id relation.Identity) *Session {
	return &Session{
		Identity: id,
		Started:  time.Now(),
		now:      time.Now,
	}
}

// Require fails with AuthRequired unless s is a logged in session.
func Require(s *Session) error {
	if s == nil || s.Identity == "" {
		return errcodes.New(errcodes.AuthRequired)
	}

	return nil
}

func (s *Session) IsSelf(id relation.Identity) bool {
	return s.Identity == id
}

func (s *Session) Record(a Action, target string) {
	s.entries = append(s.entries, Entry{Action: a, Target: target, At: s.now()})
}

func (s *Session) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)

	return out
}

// Followed returns the users followed during this run and not unfollowed
// afterwards, in the order they were first followed.
func (s *Session) Followed() []string {
	following := map[string]bool{}
	order := []string{}
	for _, e := range s.entries {
		switch e.Action {
		case ActionFollow:
			if _, seen := following[e.Target]; !seen {
				order = append(order, e.Target)
			}
			following[e.Target] = true
		case ActionUnfollow:
			if _, seen := following[e.Target]; seen {
				following[e.Target] = false
			}
		}
	}

	out := []string{}
	for _, t := range order {
		if following[t] {
			out = append(out, t)
		}
	}

	return out
}

func (s *Session) Starred() []string {
	out := []string{}
	for _, e := range s.entries {
		if e.Action == ActionStar {
			out = append(out, e.Target)
		}
	}

	return out
}
