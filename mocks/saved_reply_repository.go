package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/freelancehub/agency-inbox/models"
)

type SavedReplyRepository struct {
	mock.Mock
}

func (m *SavedReplyRepository) CreateSavedReply(ctx context.Context, workspaceId string,
	input models.SavedReplyInput,
) (models.SavedReply, error) {
	args := m.Called(ctx, workspaceId, input)
	return args.Get(0).(models.SavedReply), args.Error(1)
}

func (m *SavedReplyRepository) UpdateSavedReply(ctx context.Context, workspaceId, replyId string,
	input models.SavedReplyInput,
) (models.SavedReply, error) {
	args := m.Called(ctx, workspaceId, replyId, input)
	return args.Get(0).(models.SavedReply), args.Error(1)
}

func (m *SavedReplyRepository) DeleteSavedReply(ctx context.Context, workspaceId, replyId string) error {
	args := m.Called(ctx, workspaceId, replyId)
	return args.Error(0)
}
