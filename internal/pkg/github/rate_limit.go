package github

import (
	"context"
	"net/http"
	"time"

	"followback/internal/domain/quota"

	"github.com/tidwall/gjson"
)

func parseResource(v gjson.Result) quota.Resource {
	return quota.Resource{
		Limit:     int(v.Get("limit").Int()),
		Remaining: int(v.Get("remaining").Int()),
		Used:      int(v.Get("used").Int()),
		Reset:     time.Unix(v.Get("reset").Int(), 0),
	}
}

// RateLimits reads the quota of every resource class. The call itself does
// not count against the core quota.
func (c *GithubClient) RateLimits(ctx context.Context) (*quota.State, error) {
	r, err := c.send(ctx, http.MethodGet, "/rate_limit", nil)
	if err != nil {
		return nil, err
	}

	resources := gjson.GetBytes(r.Body(), "resources")
	if !resources.Get("core").Exists() {
		return nil, malformed("rate limit", r.Body())
	}

	s := &quota.State{
		Core:   parseResource(resources.Get("core")),
		Search: parseResource(resources.Get("search")),
	}
	if g := resources.Get("graphql"); g.Exists() {
		gr := parseResource(g)
		s.GraphQL = &gr
	}

	return s, nil
}
