package profile

import (
	"context"

	"followback/internal/domain/relation"
)

type MockAPI struct {
	User         *User
	Repositories []*Repository
	Repository   *Repository
	Languages    map[string]int64
	Contributors []*Contributor
	ErrorValue   error
}

func (m *MockAPI) GetUser(ctx context.Context, id relation.Identity) (*User, error) {
	return m.User, m.ErrorValue
}

func (m *MockAPI) ListUserRepositories(ctx context.Context, id relation.Identity) ([]*Repository, error) {
	return m.Repositories, m.ErrorValue
}

func (m *MockAPI) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	return m.Repository, m.ErrorValue
}

func (m *MockAPI) ListLanguages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	return m.Languages, m.ErrorValue
}

func (m *MockAPI) ListContributors(ctx context.Context, owner, repo string, limit int) ([]*Contributor, error) {
	if len(m.Contributors) > limit {
		return m.Contributors[:limit], m.ErrorValue
	}

	return m.Contributors, m.ErrorValue
}
