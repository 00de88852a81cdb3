package paramutils

import (
	"context"
	"os"
	"time"

	"followback/internal/configutils"
	"followback/internal/domain/mutation"
	"followback/internal/domain/quota"
	"followback/internal/domain/relation"
	"followback/internal/logutils"
	"followback/internal/pacing"
	"followback/internal/pkg/github"
	"followback/internal/session"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

type FlagRepo interface {
	GetStringOrDefault(flag, d string) string
	GetBoolOrDefault(flag string, d bool) bool
	GetIntOrDefault(flag string, d int) int
	GetDurationOrDefault(flag string, d time.Duration) time.Duration
	Changed(flag string) bool
}

func NewFlagRepo(flags *pflag.FlagSet) FlagRepo {
	return &PFlagSetWrapper{Flags: flags}
}

type PFlagSetWrapper struct {
	Flags *pflag.FlagSet
}

func (fs *PFlagSetWrapper) GetStringOrDefault(flag, d string) string {
	s, err := fs.Flags.GetString(flag)
	if err != nil || s == "" {
		return d
	}

	return s
}

func (fs *PFlagSetWrapper) GetBoolOrDefault(flag string, d bool) bool {
	s, err := fs.Flags.GetBool(flag)
	if err != nil {
		return d
	}

	return s
}

func (fs *PFlagSetWrapper) GetIntOrDefault(flag string, d int) int {
	if !fs.Changed(flag) {
		return d
	}

	i, err := fs.Flags.GetInt(flag)
	if err != nil {
		return d
	}

	return i
}

func (fs *PFlagSetWrapper) GetDurationOrDefault(flag string, d time.Duration) time.Duration {
	if !fs.Changed(flag) {
		return d
	}

	v, err := fs.Flags.GetDuration(flag)
	if err != nil {
		return d
	}

	return v
}

func (fs *PFlagSetWrapper) Changed(flag string) bool {
	f := fs.Flags.Lookup(flag)

	return f != nil && f.Changed
}

var getwd = os.Getwd

// LoadSettings resolves configuration for the current directory and applies
// the global flags on top of it. It also configures logging.
func LoadSettings(flags FlagRepo) (*configutils.Settings, error) {
	wd, err := getwd()
	if err != nil {
		return nil, errors.Wrap(err, "could not determine working directory")
	}

	v, err := configutils.LoadConfigForPath(wd, flags.GetStringOrDefault("config", ""))
	if err != nil {
		return nil, err
	}

	s, err := configutils.SettingsFrom(v)
	if err != nil {
		return nil, err
	}

	s.Token = flags.GetStringOrDefault("token", s.Token)

	level, err := logutils.Level(s.LogLevel, flags.GetBoolOrDefault("verbose", false))
	if err != nil {
		return nil, err
	}
	logutils.Setup(os.Stderr, level)

	return s, nil
}

// Runtime is everything a command needs to talk to GitHub.
type Runtime struct {
	Settings *configutils.Settings
	Client   *github.GithubClient
	Monitor  *quota.Monitor
	Pacer    *pacing.Pacer
	// Session is nil unless the command asked for a login.
	Session *session.Session
}

func (r *Runtime) Fetcher() *relation.Fetcher {
	return relation.NewFetcher(r.Client, r.Monitor, r.Pacer, relation.DefaultOptions())
}

func (r *Runtime) Executor() *mutation.Executor {
	return mutation.NewExecutor(r.Session, r.Client, r.Monitor, r.Pacer)
}

func NewClient(s *configutils.Settings) *github.GithubClient {
	return github.New(&github.ClientOptions{
		BaseURL:          s.BaseURL,
		Token:            s.Token,
		Timeout:          s.Timeout,
		RetryCount:       s.Retries,
		RetryWaitTime:    github.DefaultRetryWaitTime,
		RetryMaxWaitTime: github.DefaultRetryMaxWaitTime,
	})
}

// LoadRuntime builds the client stack from flags and configuration. With
// login set it also verifies the token and opens a session.
var LoadRuntime = func(ctx context.Context, flags FlagRepo, login bool) (*Runtime, error) {
	s, err := LoadSettings(flags)
	if err != nil {
		return nil, err
	}

	c := NewClient(s)
	r := &Runtime{
		Settings: s,
		Client:   c,
		Monitor:  quota.NewMonitor(c),
		Pacer:    pacing.New(),
	}

	if login {
		r.Session, err = session.Login(ctx, c, s.Token)
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

func ParseIDArg(args []string) string {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	return id
}
