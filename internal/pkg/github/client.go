package github

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"followback/internal/errcodes"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL          = "https://api.github.com"
	DefaultTimeout          = 30 * time.Second
	DefaultRetryCount       = 3
	DefaultRetryWaitTime    = time.Second
	DefaultRetryMaxWaitTime = 30 * time.Second
	DefaultUserAgent        = "followback"

	resetSlack = time.Second
)

type ClientOptions struct {
	BaseURL          string
	Token            string
	Timeout          time.Duration
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
	UserAgent        string
}

func DefaultClientOptions(token string) *ClientOptions {
	return &ClientOptions{
		BaseURL:          DefaultBaseURL,
		Token:            token,
		Timeout:          DefaultTimeout,
		RetryCount:       DefaultRetryCount,
		RetryWaitTime:    DefaultRetryWaitTime,
		RetryMaxWaitTime: DefaultRetryMaxWaitTime,
		UserAgent:        DefaultUserAgent,
	}
}

// GithubClient talks to the GitHub REST API. The token is attached once and
// reused for every request.
type GithubClient struct {
	rc           *resty.Client
	retryMaxWait time.Duration
	now          func() time.Time
}

func New(o *ClientOptions) *GithubClient {
	opts := *o
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	// resty panics on a zero backoff base
	if opts.RetryWaitTime <= 0 {
		opts.RetryWaitTime = DefaultRetryWaitTime
	}
	if opts.RetryMaxWaitTime <= 0 {
		opts.RetryMaxWaitTime = DefaultRetryMaxWaitTime
	}
	if opts.RetryMaxWaitTime < opts.RetryWaitTime {
		opts.RetryMaxWaitTime = opts.RetryWaitTime
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	c := &GithubClient{
		retryMaxWait: opts.RetryMaxWaitTime,
		now:          time.Now,
	}

	c.rc = resty.New().
		SetHostURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("User-Agent", opts.UserAgent).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetRetryMaxWaitTime(opts.RetryMaxWaitTime).
		SetRetryAfter(c.retryAfter).
		AddRetryCondition(c.shouldRetry)

	if opts.Token != "" {
		c.rc.SetAuthToken(opts.Token)
	}

	return c
}

// shouldRetry retries network errors, server errors and rate limits whose
// reset falls inside the backoff window. Other client errors are final.
func (c *GithubClient) shouldRetry(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if r == nil {
		return false
	}

	switch status := r.StatusCode(); {
	case status >= http.StatusInternalServerError:
		return true
	case quotaExceeded(r):
		reset, ok := resetTime(r.Header(), c.now())
		if !ok {
			return status == http.StatusTooManyRequests
		}
		return reset.Sub(c.now()) <= c.retryMaxWait
	}

	return false
}

// retryAfter waits out a rate limit until its reset. Zero falls back to
// resty's jittered backoff.
func (c *GithubClient) retryAfter(_ *resty.Client, r *resty.Response) (time.Duration, error) {
	if r == nil || r.RawResponse == nil || !quotaExceeded(r) {
		return 0, nil
	}

	reset, ok := resetTime(r.Header(), c.now())
	if !ok {
		return 0, nil
	}

	wait := reset.Sub(c.now())
	if wait <= 0 {
		return 0, nil
	}

	// X-RateLimit-Reset has second precision
	return wait + resetSlack, nil
}

func quotaExceeded(r *resty.Response) bool {
	status := r.StatusCode()

	return status == http.StatusTooManyRequests ||
		status == http.StatusForbidden && rateLimited(r.Header())
}

func rateLimited(h http.Header) bool {
	return h.Get("X-RateLimit-Remaining") == "0" || h.Get("Retry-After") != ""
}

func resetTime(h http.Header, now time.Time) (time.Time, bool) {
	if s := h.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil {
			return now.Add(time.Duration(secs) * time.Second), true
		}
	}

	if s := h.Get("X-RateLimit-Reset"); s != "" {
		if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(unix, 0), true
		}
	}

	return time.Time{}, false
}

// classify turns a non-2xx response into a tagged error.
func (c *GithubClient) classify(r *resty.Response) error {
	status := r.StatusCode()
	e := &errcodes.Error{Status: status}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = errcodes.AuthRejected
	case status == http.StatusNotFound:
		e.Kind = errcodes.NotFound
	case quotaExceeded(r):
		e.Kind = errcodes.RateLimited
		if reset, ok := resetTime(r.Header(), c.now()); ok {
			e.Reset = reset
		}
	case status == http.StatusForbidden:
		e.Kind = errcodes.Forbidden
	case status >= http.StatusInternalServerError:
		e.Kind = errcodes.TransientNetworkFailure
	default:
		e.Kind = errcodes.Unexpected
	}

	if msg := gjson.GetBytes(r.Body(), "message").String(); msg != "" {
		e.Err = errors.New(msg)
	}

	return e
}

func (c *GithubClient) send(
	ctx context.Context,
	method, url string,
	configure func(*resty.Request),
) (*resty.Response, error) {
	req := c.rc.R().SetContext(ctx)
	if configure != nil {
		configure(req)
	}

	r, err := req.Execute(method, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errcodes.Wrap(errcodes.Canceled, ctx.Err())
		}

		log.Debug().Err(err).Str("method", method).Str("url", url).Msg("request failed")
		return nil, errcodes.Wrap(errcodes.TransientNetworkFailure, err)
	}

	log.Debug().
		Str("method", method).
		Str("url", r.Request.URL).
		Int("status", r.StatusCode()).
		Str("remaining", r.Header().Get("X-RateLimit-Remaining")).
		Msg("github request")

	if r.IsError() {
		return r, c.classify(r)
	}

	return r, nil
}

func malformed(what string, body []byte) error {
	return &errcodes.Error{
		Kind:   errcodes.Unexpected,
		Reason: "malformed " + what + " response",
		Err:    errors.Errorf("unexpected payload: %.80s", string(body)),
	}
}
