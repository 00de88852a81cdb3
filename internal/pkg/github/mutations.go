package github

import (
	"context"
	"net/http"

	"followback/internal/domain/relation"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

func (c *GithubClient) Follow(ctx context.Context, id relation.Identity) error {
	_, err := c.send(ctx, http.MethodPut, "/user/following/{id}", func(req *resty.Request) {
		req.SetPathParams(map[string]string{"id": string(id)})
	})

	return err
}

func (c *GithubClient) Unfollow(ctx context.Context, id relation.Identity) error {
	_, err := c.send(ctx, http.MethodDelete, "/user/following/{id}", func(req *resty.Request) {
		req.SetPathParams(map[string]string{"id": string(id)})
	})

	return err
}

func (c *GithubClient) Star(ctx context.Context, owner, repo string) error {
	_, err := c.send(ctx, http.MethodPut, "/user/starred/{owner}/{repo}", func(req *resty.Request) {
		req.SetPathParams(map[string]string{"owner": owner, "repo": repo})
	})

	return err
}

// Fork requests a fork of owner/repo and returns the new fork's page. GitHub
// answers 202 and creates the fork asynchronously.
func (c *GithubClient) Fork(ctx context.Context, owner, repo string) (string, error) {
	r, err := c.send(ctx, http.MethodPost, "/repos/{owner}/{repo}/forks", func(req *resty.Request) {
		req.SetPathParams(map[string]string{"owner": owner, "repo": repo}).
			SetHeader("Content-Type", "application/json").
			SetBody(`{}`)
	})
	if err != nil {
		return "", err
	}

	return gjson.GetBytes(r.Body(), "html_url").String(), nil
}

// ForkParent looks up owner/repo and reports whether it is a fork and of what.
func (c *GithubClient) ForkParent(ctx context.Context, owner, repo string) (string, bool, error) {
	rp, err := c.GetRepository(ctx, owner, repo)
	if err != nil {
		return "", false, err
	}

	return rp.Parent, rp.Fork, nil
}
