package github

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"followback/internal/domain/profile"
	"followback/internal/domain/relation"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

func (c *GithubClient) getUser(ctx context.Context, url string, params map[string]string) (*profile.User, error) {
	r, err := c.send(ctx, http.MethodGet, url, func(req *resty.Request) {
		req.SetPathParams(params)
	})
	if err != nil {
		return nil, err
	}

	u := &ghUser{}
	err = json.Unmarshal(r.Body(), u)
	if err != nil || u.Login == "" {
		return nil, malformed("user", r.Body())
	}

	return u.toEntity(), nil
}

// CurrentUser returns the account the token belongs to.
func (c *GithubClient) CurrentUser(ctx context.Context) (*profile.User, error) {
	return c.getUser(ctx, "/user", nil)
}

// Verify checks the credential and returns the acting identity.
func (c *GithubClient) Verify(ctx context.Context) (relation.Identity, error) {
	u, err := c.CurrentUser(ctx)
	if err != nil {
		return "", err
	}

	return relation.Identity(u.Login), nil
}

func (c *GithubClient) GetUser(ctx context.Context, id relation.Identity) (*profile.User, error) {
	return c.getUser(ctx, "/users/{id}", map[string]string{"id": string(id)})
}

// ListUserRepositories returns the first page (up to 100) of public
// repositories owned by id.
func (c *GithubClient) ListUserRepositories(ctx context.Context, id relation.Identity) ([]*profile.Repository, error) {
	r, err := c.send(ctx, http.MethodGet, "/users/{id}/repos", func(req *resty.Request) {
		req.SetPathParams(map[string]string{"id": string(id)}).
			SetQueryParam("per_page", "100")
	})
	if err != nil {
		return nil, err
	}

	payload := []*ghRepository{}
	if err := json.Unmarshal(r.Body(), &payload); err != nil {
		return nil, malformed("repository list", r.Body())
	}

	repos := make([]*profile.Repository, len(payload))
	for i, rp := range payload {
		repos[i] = rp.toEntity()
	}

	return repos, nil
}

// ListRelationPage returns one page of the followers or following of subject.
func (c *GithubClient) ListRelationPage(
	ctx context.Context,
	subject relation.Identity,
	kind relation.Kind,
	page, perPage int,
) ([]relation.Identity, error) {
	r, err := c.send(ctx, http.MethodGet, "/users/{id}/{kind}", func(req *resty.Request) {
		req.SetPathParams(map[string]string{
			"id":   string(subject),
			"kind": string(kind),
		}).SetQueryParams(map[string]string{
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(perPage),
		})
	})
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(r.Body()) {
		return nil, malformed(string(kind), r.Body())
	}
	parsed := gjson.ParseBytes(r.Body())
	if !parsed.IsArray() {
		return nil, malformed(string(kind), r.Body())
	}

	ids := []relation.Identity{}
	parsed.ForEach(func(key, value gjson.Result) bool {
		if login := value.Get("login").String(); login != "" {
			ids = append(ids, relation.Identity(login))
		}

		return true
	})

	return ids, nil
}
