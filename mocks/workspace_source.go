package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/usecases/resource_cache"
)

// WorkspaceSource mocks both the cached reads of inbox aggregates and the invalidation the
// mutation coordinator performs after a write.
type WorkspaceSource struct {
	mock.Mock
}

func (m *WorkspaceSource) Get(ctx context.Context, workspaceId string) (
	resource_cache.Snapshot[models.WorkspaceInbox], error,
) {
	args := m.Called(ctx, workspaceId)
	return args.Get(0).(resource_cache.Snapshot[models.WorkspaceInbox]), args.Error(1)
}

func (m *WorkspaceSource) Peek(workspaceId string) resource_cache.Snapshot[models.WorkspaceInbox] {
	args := m.Called(workspaceId)
	return args.Get(0).(resource_cache.Snapshot[models.WorkspaceInbox])
}

func (m *WorkspaceSource) Current(ctx context.Context, workspaceId string) (models.WorkspaceInbox, error) {
	args := m.Called(ctx, workspaceId)
	return args.Get(0).(models.WorkspaceInbox), args.Error(1)
}

func (m *WorkspaceSource) Refresh(ctx context.Context, workspaceId string, force bool) error {
	args := m.Called(ctx, workspaceId, force)
	return args.Error(0)
}

func (m *WorkspaceSource) Invalidate(workspaceId string) {
	m.Called(workspaceId)
}
