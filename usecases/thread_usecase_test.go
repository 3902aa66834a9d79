package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/freelancehub/agency-inbox/mocks"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/usecases/inbox_workspace"
)

type ThreadUsecaseTestSuite struct {
	suite.Suite
	threadRepository *mocks.ThreadRepository
	workspaces       *mocks.WorkspaceSource

	ctx             context.Context
	workspaceId     string
	actorId         string
	threadId        string
	thread          models.Thread
	repositoryError error
}

func (suite *ThreadUsecaseTestSuite) SetupTest() {
	suite.threadRepository = new(mocks.ThreadRepository)
	suite.workspaces = new(mocks.WorkspaceSource)

	suite.ctx = context.Background()
	suite.workspaceId = "ws-northwind"
	suite.actorId = "agent-ada"
	suite.threadId = "thread-1"
	suite.thread = models.Thread{
		Id:          suite.threadId,
		Subject:     "Invoice for March",
		ChannelType: models.ChannelProject,
		State:       models.ThreadActive,
		Unread:      true,
		Priority:    models.ThreadPriorityStandard,
	}
	suite.repositoryError = errors.New("some repository error")
}

func (suite *ThreadUsecaseTestSuite) makeUsecase() ThreadUsecase {
	return ThreadUsecase{
		threadRepository: suite.threadRepository,
		workspaces:       suite.workspaces,
		coordinator:      inbox_workspace.NewCoordinator(suite.workspaces),
	}
}

func (suite *ThreadUsecaseTestSuite) expectRefresh() {
	invalidate := suite.workspaces.On("Invalidate", suite.workspaceId).Return().Once()
	suite.workspaces.On("Refresh", mock.Anything, suite.workspaceId, true).Return(nil).Once().NotBefore(invalidate)
}

func (suite *ThreadUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.threadRepository.AssertExpectations(t)
	suite.workspaces.AssertExpectations(t)
}

func (suite *ThreadUsecaseTestSuite) assertNoRefresh() {
	t := suite.T()
	suite.workspaces.AssertNotCalled(t, "Invalidate", mock.Anything)
	suite.workspaces.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ThreadUsecaseTestSuite) Test_MarkRead_nominal() {
	suite.threadRepository.On("MarkRead", mock.Anything, suite.threadId, suite.actorId).Return(nil)
	suite.expectRefresh()

	err := suite.makeUsecase().MarkRead(suite.ctx, suite.workspaceId, suite.actorId, suite.threadId)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *ThreadUsecaseTestSuite) Test_MarkRead_no_actor() {
	err := suite.makeUsecase().MarkRead(suite.ctx, suite.workspaceId, "  ", suite.threadId)

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrUnresolvedActor)
	suite.threadRepository.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	suite.assertNoRefresh()
}

func (suite *ThreadUsecaseTestSuite) Test_MarkRead_repository_error() {
	suite.threadRepository.On("MarkRead", mock.Anything, suite.threadId, suite.actorId).Return(suite.repositoryError)

	err := suite.makeUsecase().MarkRead(suite.ctx, suite.workspaceId, suite.actorId, suite.threadId)

	t := suite.T()
	assert.ErrorIs(t, err, suite.repositoryError)
	suite.assertNoRefresh()
	suite.AssertExpectations()
}

func (suite *ThreadUsecaseTestSuite) Test_SetThreadState_sends_known_previous_state() {
	suite.workspaces.On("Current", suite.ctx, suite.workspaceId).Return(models.WorkspaceInbox{
		WorkspaceId:   suite.workspaceId,
		ActiveThreads: []models.Thread{suite.thread},
	}, nil)
	suite.threadRepository.On("SetThreadState", mock.Anything, suite.threadId, suite.actorId,
		models.ThreadActive, models.ThreadArchived).Return(nil)
	suite.expectRefresh()

	err := suite.makeUsecase().SetThreadState(suite.ctx, suite.workspaceId, suite.actorId, suite.threadId,
		models.ThreadArchived)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *ThreadUsecaseTestSuite) Test_SetThreadState_unknown_thread() {
	suite.workspaces.On("Current", suite.ctx, suite.workspaceId).Return(models.WorkspaceInbox{}, nil)
	suite.threadRepository.On("SetThreadState", mock.Anything, suite.threadId, suite.actorId,
		models.ThreadState(""), models.ThreadActive).Return(nil)
	suite.expectRefresh()

	err := suite.makeUsecase().SetThreadState(suite.ctx, suite.workspaceId, suite.actorId, suite.threadId,
		models.ThreadActive)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *ThreadUsecaseTestSuite) Test_SetThreadState_invalid_target() {
	err := suite.makeUsecase().SetThreadState(suite.ctx, suite.workspaceId, suite.actorId, suite.threadId,
		models.ThreadState("deleted"))

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	suite.workspaces.AssertNotCalled(t, "Current", mock.Anything, mock.Anything)
}

func (suite *ThreadUsecaseTestSuite) Test_ToggleArchive_archived_thread() {
	thread := suite.thread
	thread.State = models.ThreadArchived
	suite.threadRepository.On("SetThreadState", mock.Anything, suite.threadId, suite.actorId,
		models.ThreadArchived, models.ThreadActive).Return(nil)
	suite.expectRefresh()

	state, err := suite.makeUsecase().ToggleArchive(suite.ctx, suite.workspaceId, suite.actorId, thread)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, models.ThreadActive, state)
	suite.AssertExpectations()
}

func (suite *ThreadUsecaseTestSuite) Test_ToggleArchive_rejected_by_collaborator() {
	suite.threadRepository.On("SetThreadState", mock.Anything, suite.threadId, suite.actorId,
		models.ThreadActive, models.ThreadArchived).Return(errors.Mark(suite.repositoryError, models.ConflictError))

	state, err := suite.makeUsecase().ToggleArchive(suite.ctx, suite.workspaceId, suite.actorId, suite.thread)

	t := suite.T()
	assert.True(t, errors.Is(err, models.ConflictError))
	assert.Empty(t, state)
	suite.assertNoRefresh()
}

func (suite *ThreadUsecaseTestSuite) Test_Escalate_defaults_to_high_priority() {
	supportCase := models.SupportCase{
		Id:       "case-1",
		ThreadId: suite.threadId,
		Priority: models.ThreadPriorityHigh,
		Status:   models.SupportCaseOpen,
	}
	suite.threadRepository.On("EscalateThread", mock.Anything, suite.threadId, suite.actorId,
		models.EscalateThreadInput{Reason: "client is angry", Priority: models.ThreadPriorityHigh}).
		Return(supportCase, nil)
	suite.expectRefresh()

	result, err := suite.makeUsecase().Escalate(suite.ctx, suite.workspaceId, suite.actorId, suite.threadId,
		"  client is angry ", "")

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, supportCase, result)
	suite.AssertExpectations()
}

func (suite *ThreadUsecaseTestSuite) Test_Escalate_empty_reason() {
	_, err := suite.makeUsecase().Escalate(suite.ctx, suite.workspaceId, suite.actorId, suite.threadId, "   ", "")

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	suite.threadRepository.AssertNotCalled(t, "EscalateThread", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ThreadUsecaseTestSuite) Test_Assign_missing_assignee() {
	err := suite.makeUsecase().Assign(suite.ctx, suite.workspaceId, suite.actorId, suite.threadId, " ", true)

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrInvalidAssignment)
	assert.NotErrorIs(t, err, models.ErrUnresolvedActor)
	suite.threadRepository.AssertNotCalled(t, "AssignThread", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ThreadUsecaseTestSuite) Test_Assign_missing_actor() {
	err := suite.makeUsecase().Assign(suite.ctx, suite.workspaceId, "", suite.threadId, "agent-bob", true)

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrUnresolvedActor)
	assert.True(t, errors.Is(err, models.ErrInvalidAssignment))
	suite.threadRepository.AssertNotCalled(t, "AssignThread", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ThreadUsecaseTestSuite) Test_Assign_nominal() {
	suite.threadRepository.On("AssignThread", mock.Anything, suite.actorId, models.ThreadAssignment{
		ThreadId:    suite.threadId,
		AssigneeId:  "agent-bob",
		NotifyAgent: true,
	}).Return(nil)
	suite.expectRefresh()

	err := suite.makeUsecase().Assign(suite.ctx, suite.workspaceId, suite.actorId, suite.threadId, " agent-bob", true)

	assert.NoError(suite.T(), err)
	suite.AssertExpectations()
}

func (suite *ThreadUsecaseTestSuite) Test_Reply_empty_body() {
	_, err := suite.makeUsecase().Reply(suite.ctx, suite.workspaceId, suite.actorId, suite.threadId, "\n\t ")

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	suite.threadRepository.AssertNotCalled(t, "PostMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ThreadUsecaseTestSuite) Test_CreateThread_with_initial_message() {
	created := models.Thread{Id: "thread-9", Subject: "Kickoff", ChannelType: models.ChannelDirect}
	mock.InOrder(
		suite.threadRepository.On("CreateThread", mock.Anything, suite.workspaceId, models.CreateThreadInput{
			Subject:        "Kickoff",
			ChannelType:    models.ChannelDirect,
			ParticipantIds: []string{"talent-1", "talent-2", "client-3"},
		}).Return(created, nil).Once(),
		suite.threadRepository.On("PostMessage", mock.Anything, "thread-9", suite.actorId, "Welcome aboard").
			Return(models.ThreadMessage{Id: "msg-1", ThreadId: "thread-9"}, nil).Once(),
	)
	suite.expectRefresh()

	thread, err := suite.makeUsecase().CreateThread(suite.ctx, suite.workspaceId, suite.actorId, models.CreateThreadInput{
		Subject:        " Kickoff ",
		ParticipantIds: []string{"talent-1, talent-2", "", " client-3 "},
		InitialMessage: "Welcome aboard",
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, created, thread)
	suite.AssertExpectations()
}

func (suite *ThreadUsecaseTestSuite) Test_CreateThread_initial_message_fails() {
	created := models.Thread{Id: "thread-9", Subject: "Kickoff", ChannelType: models.ChannelTalent}
	suite.threadRepository.On("CreateThread", mock.Anything, suite.workspaceId, mock.Anything).Return(created, nil)
	suite.threadRepository.On("PostMessage", mock.Anything, "thread-9", suite.actorId, "Welcome aboard").
		Return(models.ThreadMessage{}, suite.repositoryError)
	suite.expectRefresh()

	thread, err := suite.makeUsecase().CreateThread(suite.ctx, suite.workspaceId, suite.actorId, models.CreateThreadInput{
		Subject:        "Kickoff",
		ChannelType:    models.ChannelTalent,
		ParticipantIds: []string{"talent-1"},
		InitialMessage: "Welcome aboard",
	})

	t := suite.T()
	assert.ErrorIs(t, err, suite.repositoryError)
	assert.Equal(t, "thread-9", thread.Id)
	suite.AssertExpectations()
}

func (suite *ThreadUsecaseTestSuite) Test_CreateThread_without_participants() {
	_, err := suite.makeUsecase().CreateThread(suite.ctx, suite.workspaceId, suite.actorId, models.CreateThreadInput{
		Subject:        "Kickoff",
		ParticipantIds: []string{" , ", ""},
	})

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	suite.threadRepository.AssertNotCalled(t, "CreateThread", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ThreadUsecaseTestSuite) Test_CreateThread_invalid_channel() {
	_, err := suite.makeUsecase().CreateThread(suite.ctx, suite.workspaceId, suite.actorId, models.CreateThreadInput{
		Subject:        "Kickoff",
		ChannelType:    "sms",
		ParticipantIds: []string{"talent-1"},
	})

	assert.ErrorIs(suite.T(), err, models.ErrInvalidInput)
}

func TestThreadUsecase(t *testing.T) {
	suite.Run(t, new(ThreadUsecaseTestSuite))
}

// The unread counter is computed by the collaborator service: a thread marked read only shows
// up in the summary once the aggregate has been fetched again.
func TestMarkReadRefreshesUnreadCounter(t *testing.T) {
	ctx := context.Background()
	inboxRepository := new(mocks.InboxWorkspaceRepository)
	threadRepository := new(mocks.ThreadRepository)
	clk := clockAt(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	before := models.WorkspaceInbox{
		WorkspaceId:   "ws-1",
		Summary:       models.InboxSummary{UnreadThreads: 3},
		ActiveThreads: []models.Thread{{Id: "thread-1", State: models.ThreadActive, Unread: true}},
	}
	after := models.WorkspaceInbox{
		WorkspaceId:   "ws-1",
		Summary:       models.InboxSummary{UnreadThreads: 2},
		ActiveThreads: []models.Thread{{Id: "thread-1", State: models.ThreadActive}},
	}
	inboxRepository.On("GetInboxWorkspace", mock.Anything, "ws-1").Return(before, nil).Once()
	inboxRepository.On("GetInboxWorkspace", mock.Anything, "ws-1").Return(after, nil).Once()
	threadRepository.On("MarkRead", mock.Anything, "thread-1", "agent-ada").Return(nil).Once()

	workspaces := newTestWorkspaces(inboxRepository, clk)
	usecase := ThreadUsecase{
		threadRepository: threadRepository,
		workspaces:       workspaces,
		coordinator:      inbox_workspace.NewCoordinator(workspaces),
	}

	current, err := workspaces.Current(ctx, "ws-1")
	assert.NoError(t, err)
	assert.Equal(t, 3, current.Summary.UnreadThreads)

	err = usecase.MarkRead(ctx, "ws-1", "agent-ada", "thread-1")
	assert.NoError(t, err)

	// still within the TTL: served from the entry refreshed after the write
	snapshot, err := workspaces.Get(ctx, "ws-1")
	assert.NoError(t, err)
	assert.True(t, snapshot.FromCache)
	assert.Equal(t, 2, snapshot.Data.Summary.UnreadThreads)
	assert.False(t, snapshot.Data.ActiveThreads[0].Unread)

	inboxRepository.AssertExpectations(t)
	threadRepository.AssertExpectations(t)
}
