package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/freelancehub/agency-inbox/models"
)

type RoutingRuleRepository struct {
	mock.Mock
}

func (m *RoutingRuleRepository) CreateRoutingRule(ctx context.Context, workspaceId string,
	input models.RoutingRuleInput,
) (models.RoutingRule, error) {
	args := m.Called(ctx, workspaceId, input)
	return args.Get(0).(models.RoutingRule), args.Error(1)
}

func (m *RoutingRuleRepository) UpdateRoutingRule(ctx context.Context, workspaceId, ruleId string,
	input models.RoutingRuleInput,
) (models.RoutingRule, error) {
	args := m.Called(ctx, workspaceId, ruleId, input)
	return args.Get(0).(models.RoutingRule), args.Error(1)
}

func (m *RoutingRuleRepository) DeleteRoutingRule(ctx context.Context, workspaceId, ruleId string) error {
	args := m.Called(ctx, workspaceId, ruleId)
	return args.Error(0)
}
