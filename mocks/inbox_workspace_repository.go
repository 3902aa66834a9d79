package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/freelancehub/agency-inbox/models"
)

type InboxWorkspaceRepository struct {
	mock.Mock
}

func (m *InboxWorkspaceRepository) GetInboxWorkspace(ctx context.Context, workspaceId string) (models.WorkspaceInbox, error) {
	args := m.Called(ctx, workspaceId)
	return args.Get(0).(models.WorkspaceInbox), args.Error(1)
}

func (m *InboxWorkspaceRepository) UpdatePreferences(ctx context.Context, workspaceId string,
	preferences models.InboxPreferences,
) error {
	args := m.Called(ctx, workspaceId, preferences)
	return args.Error(0)
}

func (m *InboxWorkspaceRepository) SaveAutomations(ctx context.Context, workspaceId string,
	automations models.InboxAutomations,
) error {
	args := m.Called(ctx, workspaceId, automations)
	return args.Error(0)
}
