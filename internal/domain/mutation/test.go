package mutation

import (
	"context"

	"followback/internal/domain/quota"
	"followback/internal/domain/relation"
)

type MockAPI struct {
	Calls      []string
	Errors     map[string]error
	ForkURL    string
	Parent     string
	ParentFork bool
	ParentErr  error
}

func (m *MockAPI) record(call string) error {
	m.Calls = append(m.Calls, call)

	return m.Errors[call]
}

func (m *MockAPI) Follow(ctx context.Context, id relation.Identity) error {
	return m.record("follow " + string(id))
}

func (m *MockAPI) Unfollow(ctx context.Context, id relation.Identity) error {
	return m.record("unfollow " + string(id))
}

func (m *MockAPI) Star(ctx context.Context, owner, repo string) error {
	return m.record("star " + owner + "/" + repo)
}

func (m *MockAPI) Fork(ctx context.Context, owner, repo string) (string, error) {
	if err := m.record("fork " + owner + "/" + repo); err != nil {
		return "", err
	}

	return m.ForkURL, nil
}

func (m *MockAPI) ForkParent(ctx context.Context, owner, repo string) (string, bool, error) {
	m.Calls = append(m.Calls, "get "+owner+"/"+repo)

	return m.Parent, m.ParentFork, m.ParentErr
}

type MockQuotaChecker struct {
	State     *quota.State
	Exhausted bool
	Calls     int
}

func (m *MockQuotaChecker) CoreExhausted(ctx context.Context) (*quota.State, bool) {
	m.Calls++

	return m.State, m.Exhausted
}
