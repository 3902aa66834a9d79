package inbox_workspace

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
	"github.com/freelancehub/agency-inbox/repositories/clock"
)

type WorkspaceReaderTestSuite struct {
	suite.Suite
	repository *mocks.InboxWorkspaceRepository
	clock      *clock.Mock

	workspaceId string
	now         time.Time
}

func (suite *WorkspaceReaderTestSuite) SetupTest() {
	suite.repository = new(mocks.InboxWorkspaceRepository)
	suite.now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	suite.clock = clock.NewMock(suite.now)
	suite.workspaceId = "ws-agency-1"
}

func (suite *WorkspaceReaderTestSuite) makeReader() WorkspaceReader {
	return NewWorkspaceReader(suite.repository, suite.clock)
}

func (suite *WorkspaceReaderTestSuite) AssertExpectations() {
	suite.repository.AssertExpectations(suite.T())
}

func (suite *WorkspaceReaderTestSuite) Test_FetchWorkspace_empty_id() {
	inbox, err := suite.makeReader().FetchWorkspace(context.Background(), "")

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, "", inbox.WorkspaceId)
	assert.NotNil(t, inbox.ActiveThreads)
	assert.Empty(t, inbox.ActiveThreads)
	suite.repository.AssertNotCalled(t, "GetInboxWorkspace", mock.Anything, mock.Anything)
}

func (suite *WorkspaceReaderTestSuite) Test_FetchWorkspace_default_is_not_shared() {
	first, _ := suite.makeReader().FetchWorkspace(context.Background(), "")
	first.Preferences.EscalationKeywords = append(first.Preferences.EscalationKeywords, "urgent")
	first.Automations.Routing["mutated"] = true

	second, _ := suite.makeReader().FetchWorkspace(context.Background(), "")

	t := suite.T()
	assert.Empty(t, second.Preferences.EscalationKeywords)
	assert.Empty(t, second.Automations.Routing)
}

func (suite *WorkspaceReaderTestSuite) Test_FetchWorkspace_nominal_normalizes() {
	suite.repository.On("GetInboxWorkspace", mock.Anything, suite.workspaceId).Return(models.WorkspaceInbox{
		WorkspaceId: suite.workspaceId,
		ActiveThreads: []models.Thread{
			{Id: "t-1", State: models.ThreadArchived, Unread: true},
			{Id: "t-2", State: models.ThreadActive, Unread: true},
		},
	}, nil)

	inbox, err := suite.makeReader().FetchWorkspace(context.Background(), suite.workspaceId)

	t := suite.T()
	assert.NoError(t, err)
	assert.False(t, inbox.ActiveThreads[0].Unread)
	assert.True(t, inbox.ActiveThreads[1].Unread)
	assert.NotNil(t, inbox.ActiveThreads[0].Participants)
	assert.NotNil(t, inbox.SavedReplies)
	assert.NotNil(t, inbox.RoutingRules)
	assert.NotNil(t, inbox.SupportCases)
	assert.NotNil(t, inbox.ParticipantDirectory)
	assert.NotNil(t, inbox.Automations.TalentAlerts)
	assert.Equal(t, suite.now, inbox.LastSyncedAt)
	suite.AssertExpectations()
}

func (suite *WorkspaceReaderTestSuite) Test_FetchWorkspace_not_found_serves_default() {
	suite.repository.On("GetInboxWorkspace", mock.Anything, suite.workspaceId).
		Return(models.WorkspaceInbox{}, errors.Mark(errors.New("404"), models.NotFoundError))

	inbox, err := suite.makeReader().FetchWorkspace(context.Background(), suite.workspaceId)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, suite.workspaceId, inbox.WorkspaceId)
	assert.Equal(t, "UTC", inbox.Preferences.Timezone)
	assert.Equal(t, suite.now, inbox.LastSyncedAt)
	suite.AssertExpectations()
}

func (suite *WorkspaceReaderTestSuite) Test_FetchWorkspace_failure_returns_default_and_error() {
	suite.repository.On("GetInboxWorkspace", mock.Anything, suite.workspaceId).
		Return(models.WorkspaceInbox{}, errors.New("connection refused"))

	inbox, err := suite.makeReader().FetchWorkspace(context.Background(), suite.workspaceId)

	t := suite.T()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrFetchFailed))
	assert.Equal(t, suite.workspaceId, inbox.WorkspaceId)
	assert.Empty(t, inbox.ActiveThreads)
	suite.AssertExpectations()
}

func (suite *WorkspaceReaderTestSuite) Test_FetchWorkspace_cancelled() {
	suite.repository.On("GetInboxWorkspace", mock.Anything, suite.workspaceId).
		Return(models.WorkspaceInbox{}, errors.Wrap(context.Canceled, "request failed"))

	_, err := suite.makeReader().FetchWorkspace(context.Background(), suite.workspaceId)

	t := suite.T()
	assert.True(t, errors.Is(err, models.ErrCancelled))
	assert.False(t, errors.Is(err, models.ErrFetchFailed))
	suite.AssertExpectations()
}

func TestWorkspaceReader(t *testing.T) {
	suite.Run(t, new(WorkspaceReaderTestSuite))
}

func TestNormalizeIsDeterministic(t *testing.T) {
	syncedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	raw := models.WorkspaceInbox{
		ActiveThreads: []models.Thread{{Id: "t-1", State: models.ThreadArchived, Unread: true}},
		RoutingRules:  []models.RoutingRule{{Id: "r-1"}},
	}

	first := Normalize(raw, "ws-1", syncedAt)
	second := Normalize(raw, "ws-1", syncedAt)

	assert.Equal(t, first, second)
	assert.Equal(t, "ws-1", first.WorkspaceId)
	assert.NotNil(t, first.RoutingRules[0].Channels)
	assert.True(t, raw.ActiveThreads[0].Unread)
	assert.Nil(t, raw.RoutingRules[0].Channels)
}
