package github

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"followback/internal/domain/profile"

	"github.com/go-resty/resty/v2"
)

func repoParams(owner, repo string) map[string]string {
	return map[string]string{"owner": owner, "repo": repo}
}

func (c *GithubClient) GetRepository(ctx context.Context, owner, repo string) (*profile.Repository, error) {
	r, err := c.send(ctx, http.MethodGet, "/repos/{owner}/{repo}", func(req *resty.Request) {
		req.SetPathParams(repoParams(owner, repo))
	})
	if err != nil {
		return nil, err
	}

	rp := &ghRepository{}
	if err := json.Unmarshal(r.Body(), rp); err != nil || rp.FullName == "" {
		return nil, malformed("repository", r.Body())
	}

	return rp.toEntity(), nil
}

// ListLanguages returns bytes of code per language.
func (c *GithubClient) ListLanguages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	r, err := c.send(ctx, http.MethodGet, "/repos/{owner}/{repo}/languages", func(req *resty.Request) {
		req.SetPathParams(repoParams(owner, repo))
	})
	if err != nil {
		return nil, err
	}

	languages := map[string]int64{}
	if err := json.Unmarshal(r.Body(), &languages); err != nil {
		return nil, malformed("languages", r.Body())
	}

	return languages, nil
}

func (c *GithubClient) ListContributors(ctx context.Context, owner, repo string, limit int) ([]*profile.Contributor, error) {
	r, err := c.send(ctx, http.MethodGet, "/repos/{owner}/{repo}/contributors", func(req *resty.Request) {
		req.SetPathParams(repoParams(owner, repo)).
			SetQueryParam("per_page", strconv.Itoa(limit))
	})
	if err != nil {
		return nil, err
	}

	contributors := []*profile.Contributor{}
	// 204 for empty repositories
	if len(r.Body()) == 0 {
		return contributors, nil
	}

	payload := []ghContributor{}
	if err := json.Unmarshal(r.Body(), &payload); err != nil {
		return nil, malformed("contributors", r.Body())
	}
	for _, ct := range payload {
		if len(contributors) == limit {
			break
		}
		contributors = append(contributors, &profile.Contributor{Login: ct.Login, Contributions: ct.Contributions})
	}

	return contributors, nil
}
