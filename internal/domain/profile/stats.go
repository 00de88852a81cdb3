// Package profile gathers read-only statistics about users and repositories.
package profile

import (
	"context"

	"followback/internal/domain/relation"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	TopLanguages    = 5
	TopContributors = 5
)

type UserAPI interface {
	GetUser(ctx context.Context, id relation.Identity) (*User, error)
	ListUserRepositories(ctx context.Context, id relation.Identity) ([]*Repository, error)
}

type RepositoryAPI interface {
	GetRepository(ctx context.Context, owner, repo string) (*Repository, error)
	ListLanguages(ctx context.Context, owner, repo string) (map[string]int64, error)
	ListContributors(ctx context.Context, owner, repo string, limit int) ([]*Contributor, error)
}

type LanguageCount struct {
	Language string
	Count    int64
	Percent  float64
}

type UserReport struct {
	User *User
	// Repositories counted, at most the first page of public repositories.
	Repositories int
	TotalStars   int
	TotalForks   int
	AverageStars float64
	Languages    []LanguageCount
}

type RepositoryReport struct {
	Repository   *Repository
	Languages    []LanguageCount
	Contributors []*Contributor
}

// rank orders counts descending, ties by name, and keeps the first n.
func rank(counts map[string]int64, n int) []LanguageCount {
	var total int64
	for _, c := range counts {
		total += c
	}

	names := maps.Keys(counts)
	slices.SortFunc(names, func(a, b string) bool {
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return a < b
	})
	if len(names) > n {
		names = names[:n]
	}

	out := make([]LanguageCount, len(names))
	for i, name := range names {
		out[i] = LanguageCount{Language: name, Count: counts[name]}
		if total > 0 {
			out[i].Percent = float64(counts[name]) / float64(total) * 100
		}
	}

	return out
}

func UserStats(ctx context.Context, api UserAPI, id relation.Identity) (*UserReport, error) {
	u, err := api.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	repos, err := api.ListUserRepositories(ctx, id)
	if err != nil {
		return nil, err
	}

	r := &UserReport{User: u, Repositories: len(repos)}
	languages := map[string]int64{}
	for _, rp := range repos {
		r.TotalStars += rp.Stars
		r.TotalForks += rp.Forks
		if rp.Language != "" {
			languages[rp.Language]++
		}
	}
	if len(repos) > 0 {
		r.AverageStars = float64(r.TotalStars) / float64(len(repos))
	}
	r.Languages = rank(languages, TopLanguages)

	return r, nil
}

func RepositoryStats(ctx context.Context, api RepositoryAPI, owner, repo string) (*RepositoryReport, error) {
	rp, err := api.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	languages, err := api.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	contributors, err := api.ListContributors(ctx, owner, repo, TopContributors)
	if err != nil {
		return nil, err
	}

	return &RepositoryReport{
		Repository:   rp,
		Languages:    rank(languages, TopLanguages),
		Contributors: contributors,
	}, nil
}
