package session

import (
	"context"

	"followback/internal/domain/relation"
)

type MockVerifier struct {
	Identity   relation.Identity
	ErrorValue error
	Calls      int
}

func (m *MockVerifier) Verify(ctx context.Context) (relation.Identity, error) {
	m.Calls++
	if m.ErrorValue != nil {
		return "", m.ErrorValue
	}

	return m.Identity, nil
}
