package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/freelancehub/agency-inbox/models"
)

type ThreadRepository struct {
	mock.Mock
}

func (m *ThreadRepository) CreateThread(ctx context.Context, workspaceId string,
	input models.CreateThreadInput,
) (models.Thread, error) {
	args := m.Called(ctx, workspaceId, input)
	return args.Get(0).(models.Thread), args.Error(1)
}

func (m *ThreadRepository) PostMessage(ctx context.Context, threadId, authorId, body string) (models.ThreadMessage, error) {
	args := m.Called(ctx, threadId, authorId, body)
	return args.Get(0).(models.ThreadMessage), args.Error(1)
}

func (m *ThreadRepository) MarkRead(ctx context.Context, threadId, actorId string) error {
	args := m.Called(ctx, threadId, actorId)
	return args.Error(0)
}

func (m *ThreadRepository) SetThreadState(ctx context.Context, threadId, actorId string,
	previousState, newState models.ThreadState,
) error {
	args := m.Called(ctx, threadId, actorId, previousState, newState)
	return args.Error(0)
}

func (m *ThreadRepository) EscalateThread(ctx context.Context, threadId, actorId string,
	input models.EscalateThreadInput,
) (models.SupportCase, error) {
	args := m.Called(ctx, threadId, actorId, input)
	return args.Get(0).(models.SupportCase), args.Error(1)
}

func (m *ThreadRepository) AssignThread(ctx context.Context, actorId string, assignment models.ThreadAssignment) error {
	args := m.Called(ctx, actorId, assignment)
	return args.Error(0)
}
