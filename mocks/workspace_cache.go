package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type WorkspaceCache struct {
	mock.Mock
}

func (m *WorkspaceCache) Invalidate(workspaceId string) {
	m.Called(workspaceId)
}

func (m *WorkspaceCache) Refresh(ctx context.Context, workspaceId string, force bool) error {
	args := m.Called(ctx, workspaceId, force)
	return args.Error(0)
}
