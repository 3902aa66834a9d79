package usecases

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/freelancehub/agency-inbox/mocks"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/usecases/inbox_workspace"
)

type RoutingRulesUsecaseTestSuite struct {
	suite.Suite
	routingRuleRepository *mocks.RoutingRuleRepository
	workspaces            *mocks.WorkspaceSource

	ctx         context.Context
	workspaceId string
	actorId     string
	validInput  models.RoutingRuleInput
}

func (suite *RoutingRulesUsecaseTestSuite) SetupTest() {
	suite.routingRuleRepository = new(mocks.RoutingRuleRepository)
	suite.workspaces = new(mocks.WorkspaceSource)

	suite.ctx = context.Background()
	suite.workspaceId = "ws-northwind"
	suite.actorId = "agent-ada"
	suite.validInput = models.RoutingRuleInput{
		Name:      "Invoices to finance",
		Channels:  []models.ChannelType{models.ChannelProject},
		Condition: models.ContainsCondition("invoice"),
		Target:    models.RoutingTargetFinance,
		Priority:  models.RoutingPriorityHigh,
	}
}

func (suite *RoutingRulesUsecaseTestSuite) makeUsecase() RoutingRulesUsecase {
	return RoutingRulesUsecase{
		routingRuleRepository: suite.routingRuleRepository,
		workspaces:            suite.workspaces,
		coordinator:           inbox_workspace.NewCoordinator(suite.workspaces),
	}
}

func (suite *RoutingRulesUsecaseTestSuite) expectRefresh() {
	invalidate := suite.workspaces.On("Invalidate", suite.workspaceId).Return().Once()
	suite.workspaces.On("Refresh", mock.Anything, suite.workspaceId, true).Return(nil).Once().NotBefore(invalidate)
}

func (suite *RoutingRulesUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.routingRuleRepository.AssertExpectations(t)
	suite.workspaces.AssertExpectations(t)
}

func (suite *RoutingRulesUsecaseTestSuite) Test_CreateRule_normalizes_input() {
	created := models.RoutingRule{Id: "rule-1", Name: "Invoices to finance", Target: models.RoutingTargetFinance}
	suite.routingRuleRepository.On("CreateRoutingRule", mock.Anything, suite.workspaceId, models.RoutingRuleInput{
		Name:      "Invoices to finance",
		Channels:  []models.ChannelType{models.ChannelProject, models.ChannelSupport},
		Condition: models.ContainsCondition("invoice"),
		Target:    models.RoutingTargetFinance,
		Priority:  models.RoutingPriorityMedium,
	}).Return(created, nil)
	suite.expectRefresh()

	rule, err := suite.makeUsecase().CreateRule(suite.ctx, suite.workspaceId, suite.actorId, models.RoutingRuleInput{
		Name:      " Invoices to finance",
		Channels:  []models.ChannelType{models.ChannelProject, models.ChannelSupport, models.ChannelProject},
		Condition: models.RoutingCondition{Value: " invoice "},
		Target:    models.RoutingTargetFinance,
	})

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, created, rule)
	suite.AssertExpectations()
}

func (suite *RoutingRulesUsecaseTestSuite) Test_CreateRule_validation() {
	cases := []struct {
		name   string
		update func(input *models.RoutingRuleInput)
	}{
		{name: "missing name", update: func(input *models.RoutingRuleInput) { input.Name = "" }},
		{name: "missing condition", update: func(input *models.RoutingRuleInput) { input.Condition.Value = "  " }},
		{name: "unknown condition kind", update: func(input *models.RoutingRuleInput) { input.Condition.Kind = "regex" }},
		{name: "unknown channel", update: func(input *models.RoutingRuleInput) {
			input.Channels = append(input.Channels, "sms")
		}},
		{name: "unknown target", update: func(input *models.RoutingRuleInput) { input.Target = "legal" }},
		{name: "unknown priority", update: func(input *models.RoutingRuleInput) { input.Priority = "urgent" }},
	}

	for _, c := range cases {
		suite.Run(c.name, func() {
			input := suite.validInput
			input.Channels = append([]models.ChannelType{}, suite.validInput.Channels...)
			c.update(&input)

			_, err := suite.makeUsecase().CreateRule(suite.ctx, suite.workspaceId, suite.actorId, input)
			assert.ErrorIs(suite.T(), err, models.ErrInvalidInput)
		})
	}
	suite.routingRuleRepository.AssertNotCalled(suite.T(), "CreateRoutingRule", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RoutingRulesUsecaseTestSuite) Test_CreateRule_missing_workspace() {
	_, err := suite.makeUsecase().CreateRule(suite.ctx, "", suite.actorId, suite.validInput)

	assert.ErrorIs(suite.T(), err, models.ErrInvalidInput)
}

func (suite *RoutingRulesUsecaseTestSuite) Test_DeleteRule_rejected() {
	writeErr := errors.Mark(errors.New("rule is locked"), models.ErrWriteFailed)
	suite.routingRuleRepository.On("DeleteRoutingRule", mock.Anything, suite.workspaceId, "rule-1").Return(writeErr)

	err := suite.makeUsecase().DeleteRule(suite.ctx, suite.workspaceId, suite.actorId, "rule-1")

	t := suite.T()
	assert.Equal(t, writeErr, err)
	suite.workspaces.AssertNotCalled(t, "Invalidate", mock.Anything)
	suite.AssertExpectations()
}

func (suite *RoutingRulesUsecaseTestSuite) Test_RouteThread_first_match() {
	workspace := inbox_workspace.DefaultWorkspaceInbox(suite.workspaceId)
	workspace.ActiveThreads = []models.Thread{
		{Id: "thread-1", Subject: "Overdue INVOICE and refund", ChannelType: models.ChannelProject, State: models.ThreadActive},
	}
	workspace.RoutingRules = []models.RoutingRule{
		{Id: "rule-talent", Channels: []models.ChannelType{models.ChannelTalent}, Condition: models.ContainsCondition("invoice")},
		{Id: "rule-finance", Condition: models.ContainsCondition("invoice"), Target: models.RoutingTargetFinance},
		{Id: "rule-success", Condition: models.ContainsCondition("refund"), Target: models.RoutingTargetSuccess},
	}
	suite.workspaces.On("Current", suite.ctx, suite.workspaceId).Return(workspace, nil)

	rule, routed, err := suite.makeUsecase().RouteThread(suite.ctx, suite.workspaceId, "thread-1")

	t := suite.T()
	assert.NoError(t, err)
	assert.True(t, routed)
	assert.Equal(t, "rule-finance", rule.Id)
}

func (suite *RoutingRulesUsecaseTestSuite) Test_RouteThread_unknown_thread() {
	suite.workspaces.On("Current", suite.ctx, suite.workspaceId).
		Return(inbox_workspace.DefaultWorkspaceInbox(suite.workspaceId), nil)

	_, _, err := suite.makeUsecase().RouteThread(suite.ctx, suite.workspaceId, "thread-404")

	assert.ErrorIs(suite.T(), err, models.NotFoundError)
}

func TestRoutingRulesUsecase(t *testing.T) {
	suite.Run(t, new(RoutingRulesUsecaseTestSuite))
}
