package errcodes

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrMissingToken                    = errors.New("github token is missing, set github.token or GITHUB_TOKEN")
	ErrRepositoryMustBeInFormOwnerRepo = errors.New("repository must be in the form of 'owner/repo'")
	ErrMissingTarget                   = errors.New("at least one target is required")
	ErrUnknownPartition                = errors.New("unknown partition, expected (mutual, not-following-back, fans)")
	ErrUnknownMutationKind             = errors.New("unknown mutation kind, expected (follow, unfollow, star, fork)")
	ErrUnknownRelationKind             = errors.New("unknown relation kind, expected (followers, following)")
	ErrNegativeDelay                   = errors.New("delay must not be negative")
	ErrIncompleteFollowers             = errors.New("followers list is incomplete, accounts that follow back could be unfollowed")
)

// Kind classifies the outcome of a remote call so callers can branch on
// expected rejections without inspecting transport details.
type Kind int

const (
	None Kind = iota
	AuthRequired
	AuthRejected
	NotFound
	Forbidden
	AlreadyForked
	RateLimited
	TransientNetworkFailure
	SelfReferenceRejected
	Canceled
	Unexpected
)

var kindNames = map[Kind]string{
	None:                    "none",
	AuthRequired:            "auth-required",
	AuthRejected:            "auth-rejected",
	NotFound:                "not-found",
	Forbidden:               "forbidden",
	AlreadyForked:           "already-forked",
	RateLimited:             "rate-limited",
	TransientNetworkFailure: "transient-network-failure",
	SelfReferenceRejected:   "self-reference-rejected",
	Canceled:                "canceled",
	Unexpected:              "unexpected",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

var defaultReasons = map[Kind]string{
	AuthRequired:            "login required, no credential present",
	AuthRejected:            "credential invalid or expired.",
	NotFound:                "target does not exist.",
	Forbidden:               "forbidden, check your token permissions",
	AlreadyForked:           "repository already forked",
	RateLimited:             "rate limit exhausted",
	TransientNetworkFailure: "network failure",
	SelfReferenceRejected:   "cannot follow yourself",
	Canceled:                "operation interrupted",
	Unexpected:              "unexpected failure",
}

// Error is the tagged error returned for every classified failure.
type Error struct {
	Kind   Kind
	Status int
	Reset  time.Time
	Reason string
	Err    error
}

func (e *Error) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = defaultReasons[e.Kind]
	}

	switch {
	case e.Kind == RateLimited && !e.Reset.IsZero():
		reason = fmt.Sprintf("%s, resets at %s", reason, e.Reset.Format("2006-01-02 15:04:05"))
	case e.Kind == Unexpected && e.Status != 0:
		reason = fmt.Sprintf("%s: HTTP %d", reason, e.Status)
	case e.Kind == TransientNetworkFailure && e.Status != 0:
		reason = fmt.Sprintf("%s: HTTP %d", reason, e.Status)
	case e.Kind == TransientNetworkFailure && e.Err != nil:
		reason = fmt.Sprintf("%s: %v", reason, e.Err)
	}

	return reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, New(NotFound))
// works regardless of status or reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

func WithStatus(kind Kind, status int) *Error {
	return &Error{Kind: kind, Status: status}
}

func WithReason(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the Kind carried by err. Errors that were never classified
// are Unexpected.
func KindOf(err error) Kind {
	if err == nil {
		return None
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Unexpected
}

// ResetOf returns the quota reset time carried by a RateLimited error.
func ResetOf(err error) (time.Time, bool) {
	var e *Error
	if errors.As(err, &e) && !e.Reset.IsZero() {
		return e.Reset, true
	}

	return time.Time{}, false
}
