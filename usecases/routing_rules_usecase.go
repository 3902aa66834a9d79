package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/usecases/analytics"
	"github.com/freelancehub/agency-inbox/usecases/inbox_workspace"
	"github.com/freelancehub/agency-inbox/usecases/routing"
	"github.com/hashicorp/go-set/v2"
)

type RoutingRuleRepository interface {
	CreateRoutingRule(ctx context.Context, workspaceId string, input models.RoutingRuleInput) (models.RoutingRule, error)
	UpdateRoutingRule(ctx context.Context, workspaceId, ruleId string, input models.RoutingRuleInput) (models.RoutingRule, error)
	DeleteRoutingRule(ctx context.Context, workspaceId, ruleId string) error
}

type RoutingRulesUsecase struct {
	routingRuleRepository RoutingRuleRepository
	workspaces            WorkspaceSource
	coordinator           inbox_workspace.Coordinator
}

func validateRoutingRuleInput(input models.RoutingRuleInput) (models.RoutingRuleInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Condition.Value = strings.TrimSpace(input.Condition.Value)

	if input.Name == "" {
		return input, models.InvalidInput("name", "is required")
	}
	if input.Condition.Kind == "" {
		input.Condition.Kind = models.RoutingConditionContains
	}
	if input.Condition.Kind != models.RoutingConditionContains {
		return input, models.InvalidInput("condition", "kind must be contains")
	}
	if input.Condition.Value == "" {
		return input, models.InvalidInput("condition", "is required")
	}

	channels := set.New[models.ChannelType](len(input.Channels))
	deduplicated := make([]models.ChannelType, 0, len(input.Channels))
	for _, channel := range input.Channels {
		if !channel.IsValid() {
			return input, models.InvalidInput("channels", "must only contain direct, project, support or talent")
		}
		if channels.Insert(channel) {
			deduplicated = append(deduplicated, channel)
		}
	}
	input.Channels = deduplicated

	if !input.Target.IsValid() {
		return input, models.InvalidInput("target", "must be operations, finance, success or talent")
	}
	if input.Priority == "" {
		input.Priority = models.RoutingPriorityMedium
	}
	if !input.Priority.IsValid() {
		return input, models.InvalidInput("priority", "must be low, medium or high")
	}
	return input, nil
}

func (usecase RoutingRulesUsecase) CreateRule(ctx context.Context, workspaceId, actorId string,
	input models.RoutingRuleInput,
) (models.RoutingRule, error) {
	if err := validateAction(workspaceId, actorId); err != nil {
		return models.RoutingRule{}, err
	}
	input, err := validateRoutingRuleInput(input)
	if err != nil {
		return models.RoutingRule{}, err
	}

	rule, err := inbox_workspace.MutateReturn(ctx, usecase.coordinator, workspaceId,
		func(ctx context.Context) (models.RoutingRule, error) {
			return usecase.routingRuleRepository.CreateRoutingRule(ctx, workspaceId, input)
		})
	if err != nil {
		return models.RoutingRule{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsRoutingRuleCreated, map[string]any{
		"workspace_id":    workspaceId,
		"routing_rule_id": rule.Id,
		"target":          string(rule.Target),
	})
	return rule, nil
}

func (usecase RoutingRulesUsecase) UpdateRule(ctx context.Context, workspaceId, actorId, ruleId string,
	input models.RoutingRuleInput,
) (models.RoutingRule, error) {
	if err := validateAction(workspaceId, actorId); err != nil {
		return models.RoutingRule{}, err
	}
	if strings.TrimSpace(ruleId) == "" {
		return models.RoutingRule{}, models.InvalidInput("routing_rule_id", "is required")
	}
	input, err := validateRoutingRuleInput(input)
	if err != nil {
		return models.RoutingRule{}, err
	}

	rule, err := inbox_workspace.MutateReturn(ctx, usecase.coordinator, workspaceId,
		func(ctx context.Context) (models.RoutingRule, error) {
			return usecase.routingRuleRepository.UpdateRoutingRule(ctx, workspaceId, ruleId, input)
		})
	if err != nil {
		return models.RoutingRule{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsRoutingRuleUpdated, map[string]any{
		"workspace_id":    workspaceId,
		"routing_rule_id": rule.Id,
	})
	return rule, nil
}

func (usecase RoutingRulesUsecase) DeleteRule(ctx context.Context, workspaceId, actorId, ruleId string) error {
	if err := validateAction(workspaceId, actorId); err != nil {
		return err
	}
	if strings.TrimSpace(ruleId) == "" {
		return models.InvalidInput("routing_rule_id", "is required")
	}

	err := usecase.coordinator.Mutate(ctx, workspaceId, func(ctx context.Context) error {
		return usecase.routingRuleRepository.DeleteRoutingRule(ctx, workspaceId, ruleId)
	})
	if err != nil {
		return err
	}

	analytics.TrackEvent(ctx, models.AnalyticsRoutingRuleDeleted, map[string]any{
		"workspace_id":    workspaceId,
		"routing_rule_id": ruleId,
	})
	return nil
}

// RouteThread returns the rule routing an active thread of the workspace, read through the cache.
// The returned boolean is false when no rule applies.
func (usecase RoutingRulesUsecase) RouteThread(ctx context.Context, workspaceId, threadId string) (models.RoutingRule, bool, error) {
	workspace, err := usecase.workspaces.Current(ctx, workspaceId)
	if err != nil {
		return models.RoutingRule{}, false, err
	}
	thread, ok := workspace.FindThread(threadId)
	if !ok {
		return models.RoutingRule{}, false, errors.Wrapf(models.NotFoundError,
			"thread %s is not in the inbox of workspace %s", threadId, workspaceId)
	}

	rule, routed := routing.Route(thread, workspace.RoutingRules)
	return rule, routed, nil
}
