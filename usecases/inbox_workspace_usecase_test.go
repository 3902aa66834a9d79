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
	"github.com/freelancehub/agency-inbox/pure_utils"
	"github.com/freelancehub/agency-inbox/usecases/inbox_workspace"
	"github.com/freelancehub/agency-inbox/usecases/resource_cache"
)

type InboxWorkspaceUsecaseTestSuite struct {
	suite.Suite
	workspaces      *mocks.WorkspaceSource
	inboxRepository *mocks.InboxWorkspaceRepository

	ctx         context.Context
	workspaceId string
	actorId     string
	workspace   models.WorkspaceInbox
}

func (suite *InboxWorkspaceUsecaseTestSuite) SetupTest() {
	suite.workspaces = new(mocks.WorkspaceSource)
	suite.inboxRepository = new(mocks.InboxWorkspaceRepository)

	suite.ctx = context.Background()
	suite.workspaceId = "ws-northwind"
	suite.actorId = "agent-ada"
	suite.workspace = inbox_workspace.DefaultWorkspaceInbox(suite.workspaceId)
	suite.workspace.Preferences = models.InboxPreferences{
		Timezone:            "Europe/Paris",
		Notifications:       models.InboxNotifications{Email: true},
		EscalationKeywords:  []string{"refund"},
		DefaultSavedReplyId: "reply-1",
	}
	suite.workspace.SavedReplies = []models.SavedReply{
		{Id: "reply-1", Title: "Thanks", Body: "Thanks, we are on it", Category: models.SavedReplyGeneral, IsDefault: true},
		{Id: "reply-2", Title: "Invoice", Body: "Please find the invoice", Category: models.SavedReplySales},
	}
	suite.workspace.ActiveThreads = []models.Thread{
		{Id: "thread-1", Subject: "Refund request", State: models.ThreadActive, Unread: true},
		{Id: "thread-2", Subject: "Kickoff", State: models.ThreadActive},
	}
}

func (suite *InboxWorkspaceUsecaseTestSuite) makeUsecase() InboxWorkspaceUsecase {
	return InboxWorkspaceUsecase{
		workspaces:  suite.workspaces,
		repository:  suite.inboxRepository,
		coordinator: inbox_workspace.NewCoordinator(suite.workspaces),
	}
}

func (suite *InboxWorkspaceUsecaseTestSuite) expectRefresh() {
	invalidate := suite.workspaces.On("Invalidate", suite.workspaceId).Return().Once()
	suite.workspaces.On("Refresh", mock.Anything, suite.workspaceId, true).Return(nil).Once().NotBefore(invalidate)
}

func (suite *InboxWorkspaceUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.workspaces.AssertExpectations(t)
	suite.inboxRepository.AssertExpectations(t)
}

func (suite *InboxWorkspaceUsecaseTestSuite) Test_GetWorkspace_from_cache() {
	lastUpdated := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.workspaces.On("Get", suite.ctx, suite.workspaceId).Return(resource_cache.Snapshot[models.WorkspaceInbox]{
		Data:        suite.workspace,
		HasData:     true,
		FromCache:   true,
		LastUpdated: lastUpdated,
	}, nil)

	view, err := suite.makeUsecase().GetWorkspace(suite.ctx, suite.workspaceId, false, "thread-2")

	t := suite.T()
	assert.NoError(t, err)
	assert.True(t, view.FromCache)
	assert.Equal(t, lastUpdated, view.LastUpdated)
	assert.Equal(t, "thread-2", view.SelectedThreadId)
	assert.Equal(t, suite.workspace, view.Workspace)
	suite.AssertExpectations()
}

func (suite *InboxWorkspaceUsecaseTestSuite) Test_GetWorkspace_fetch_failed_serves_default() {
	fetchErr := errors.Mark(errors.New("collaborator down"), models.ErrFetchFailed)
	suite.workspaces.On("Get", suite.ctx, suite.workspaceId).Return(resource_cache.Snapshot[models.WorkspaceInbox]{
		Err: fetchErr,
	}, nil)

	view, err := suite.makeUsecase().GetWorkspace(suite.ctx, suite.workspaceId, false, "")

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, fetchErr, view.FetchError)
	assert.Equal(t, suite.workspaceId, view.Workspace.WorkspaceId)
	assert.Empty(t, view.Workspace.ActiveThreads)
	assert.Empty(t, view.SelectedThreadId)
}

func (suite *InboxWorkspaceUsecaseTestSuite) Test_GetWorkspace_forced_refresh() {
	refresh := suite.workspaces.On("Refresh", suite.ctx, suite.workspaceId, true).Return(nil).Once()
	suite.workspaces.On("Peek", suite.workspaceId).Return(resource_cache.Snapshot[models.WorkspaceInbox]{
		Data:      suite.workspace,
		HasData:   true,
		FromCache: true,
	}).NotBefore(refresh)

	view, err := suite.makeUsecase().GetWorkspace(suite.ctx, suite.workspaceId, true, "unknown")

	t := suite.T()
	assert.NoError(t, err)
	assert.False(t, view.FromCache)
	assert.Equal(t, "thread-1", view.SelectedThreadId)
	suite.workspaces.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *InboxWorkspaceUsecaseTestSuite) Test_GetThread_not_found() {
	suite.workspaces.On("Current", suite.ctx, suite.workspaceId).Return(suite.workspace, nil)

	_, err := suite.makeUsecase().GetThread(suite.ctx, suite.workspaceId, "thread-404")

	assert.ErrorIs(suite.T(), err, models.NotFoundError)
}

func (suite *InboxWorkspaceUsecaseTestSuite) Test_UpdatePreferences_applies_patch() {
	suite.workspaces.On("Current", suite.ctx, suite.workspaceId).Return(suite.workspace, nil)
	suite.inboxRepository.On("UpdatePreferences", mock.Anything, suite.workspaceId, models.InboxPreferences{
		Timezone:            "Europe/Paris",
		Notifications:       models.InboxNotifications{Email: true, Push: true},
		EscalationKeywords:  []string{"Urgent", "lawyer"},
		DefaultSavedReplyId: "reply-2",
	}).Return(nil).Once()
	suite.expectRefresh()

	preferences, err := suite.makeUsecase().UpdatePreferences(suite.ctx, suite.workspaceId, suite.actorId,
		models.PreferencesPatch{
			PushNotifications:   pure_utils.Ptr(true),
			EscalationKeywords:  &[]string{" Urgent", "urgent", "", "lawyer"},
			DefaultSavedReplyId: pure_utils.Ptr("reply-2"),
		})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, "Europe/Paris", preferences.Timezone)
	assert.True(t, preferences.Notifications.Push)
	assert.Equal(t, []string{"Urgent", "lawyer"}, preferences.EscalationKeywords)
	suite.AssertExpectations()
}

func (suite *InboxWorkspaceUsecaseTestSuite) Test_UpdatePreferences_unknown_default_reply() {
	suite.workspaces.On("Current", suite.ctx, suite.workspaceId).Return(suite.workspace, nil)

	_, err := suite.makeUsecase().UpdatePreferences(suite.ctx, suite.workspaceId, suite.actorId,
		models.PreferencesPatch{DefaultSavedReplyId: pure_utils.Ptr("reply-404")})

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	suite.inboxRepository.AssertNotCalled(t, "UpdatePreferences", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InboxWorkspaceUsecaseTestSuite) Test_UpdatePreferences_empty_timezone() {
	_, err := suite.makeUsecase().UpdatePreferences(suite.ctx, suite.workspaceId, suite.actorId,
		models.PreferencesPatch{Timezone: pure_utils.Ptr("  ")})

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	suite.workspaces.AssertNotCalled(t, "Current", mock.Anything, mock.Anything)
}

func (suite *InboxWorkspaceUsecaseTestSuite) Test_SaveAutomations_write_rejected() {
	writeErr := errors.Mark(errors.New("escalation matrix is invalid"), models.ErrWriteFailed)
	suite.inboxRepository.On("SaveAutomations", mock.Anything, suite.workspaceId, models.InboxAutomations{
		AutoEscalateUrgent: true,
		EscalationMatrix:   map[string]any{},
		Routing:            map[string]any{"fallback": "operations"},
		TalentAlerts:       map[string]any{},
	}).Return(writeErr)

	err := suite.makeUsecase().SaveAutomations(suite.ctx, suite.workspaceId, suite.actorId, models.InboxAutomations{
		AutoEscalateUrgent: true,
		Routing:            map[string]any{"fallback": "operations"},
	})

	t := suite.T()
	assert.Equal(t, writeErr, err)
	suite.workspaces.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *InboxWorkspaceUsecaseTestSuite) Test_SaveAutomations_no_actor() {
	err := suite.makeUsecase().SaveAutomations(suite.ctx, suite.workspaceId, "", models.InboxAutomations{})

	t := suite.T()
	assert.ErrorIs(t, err, models.ErrUnresolvedActor)
	suite.inboxRepository.AssertNotCalled(t, "SaveAutomations", mock.Anything, mock.Anything, mock.Anything)
}

func TestInboxWorkspaceUsecase(t *testing.T) {
	suite.Run(t, new(InboxWorkspaceUsecaseTestSuite))
}

func TestGetWorkspaceKeepsLastKnownGood(t *testing.T) {
	ctx := context.Background()
	repository := new(mocks.InboxWorkspaceRepository)
	clk := clockAt(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	repository.On("GetInboxWorkspace", mock.Anything, "ws-1").Return(models.WorkspaceInbox{
		WorkspaceId:   "ws-1",
		ActiveThreads: []models.Thread{{Id: "thread-1", State: models.ThreadActive}},
	}, nil).Once()
	repository.On("GetInboxWorkspace", mock.Anything, "ws-1").
		Return(models.WorkspaceInbox{}, errors.New("connection reset")).Once()

	usecase := InboxWorkspaceUsecase{workspaces: newTestWorkspaces(repository, clk)}

	view, err := usecase.GetWorkspace(ctx, "ws-1", false, "")
	assert.NoError(t, err)
	assert.NoError(t, view.FetchError)
	assert.Equal(t, "thread-1", view.SelectedThreadId)

	clk.Advance(testCacheTTL + time.Second)

	view, err = usecase.GetWorkspace(ctx, "ws-1", false, "")
	assert.NoError(t, err)
	assert.True(t, errors.Is(view.FetchError, models.ErrFetchFailed))
	assert.True(t, view.FromCache)
	assert.Len(t, view.Workspace.ActiveThreads, 1)
	repository.AssertExpectations(t)
}

func TestGetWorkspaceForcedRefresh(t *testing.T) {
	ctx := context.Background()
	repository := new(mocks.InboxWorkspaceRepository)
	clk := clockAt(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	repository.On("GetInboxWorkspace", mock.Anything, "ws-1").Return(models.WorkspaceInbox{
		WorkspaceId:   "ws-1",
		ActiveThreads: []models.Thread{{Id: "thread-1", State: models.ThreadActive}},
	}, nil).Once()
	repository.On("GetInboxWorkspace", mock.Anything, "ws-1").Return(models.WorkspaceInbox{
		WorkspaceId: "ws-1",
		ActiveThreads: []models.Thread{
			{Id: "thread-1", State: models.ThreadActive},
			{Id: "thread-2", State: models.ThreadActive},
		},
	}, nil).Once()
	repository.On("GetInboxWorkspace", mock.Anything, "ws-1").
		Return(models.WorkspaceInbox{}, errors.New("connection reset")).Once()

	usecase := InboxWorkspaceUsecase{workspaces: newTestWorkspaces(repository, clk)}

	_, err := usecase.GetWorkspace(ctx, "ws-1", false, "")
	assert.NoError(t, err)

	view, err := usecase.GetWorkspace(ctx, "ws-1", true, "thread-2")
	assert.NoError(t, err)
	assert.False(t, view.FromCache)
	assert.NoError(t, view.FetchError)
	assert.Len(t, view.Workspace.ActiveThreads, 2)
	assert.Equal(t, "thread-2", view.SelectedThreadId)

	view, err = usecase.GetWorkspace(ctx, "ws-1", true, "thread-2")
	assert.NoError(t, err)
	assert.True(t, view.FromCache)
	assert.True(t, errors.Is(view.FetchError, models.ErrFetchFailed))
	assert.Len(t, view.Workspace.ActiveThreads, 2)

	repository.AssertExpectations(t)
	repository.AssertNumberOfCalls(t, "GetInboxWorkspace", 3)
}
