package repositories

import (
	"context"
	"net/http"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/repositories/httpmodels"
)

type RoutingRuleRepository struct {
	client *CollaboratorClient
}

func (repo RoutingRuleRepository) CreateRoutingRule(ctx context.Context, workspaceId string,
	input models.RoutingRuleInput,
) (models.RoutingRule, error) {
	var created httpmodels.HTTPRoutingRule
	err := repo.client.send(ctx, "create_routing_rule", http.MethodPost,
		workspacePath(workspaceId, "inbox", "routing-rules"),
		httpmodels.AdaptHTTPRoutingRuleInput(input), &created)
	if err != nil {
		return models.RoutingRule{}, err
	}
	return httpmodels.AdaptRoutingRule(created), nil
}

func (repo RoutingRuleRepository) UpdateRoutingRule(ctx context.Context, workspaceId, ruleId string,
	input models.RoutingRuleInput,
) (models.RoutingRule, error) {
	var updated httpmodels.HTTPRoutingRule
	err := repo.client.send(ctx, "update_routing_rule", http.MethodPatch,
		workspacePath(workspaceId, "inbox", "routing-rules", ruleId),
		httpmodels.AdaptHTTPRoutingRuleInput(input), &updated)
	if err != nil {
		return models.RoutingRule{}, err
	}

	rule := httpmodels.AdaptRoutingRule(updated)
	if rule.Id == "" {
		rule.Id = ruleId
	}
	return rule, nil
}

func (repo RoutingRuleRepository) DeleteRoutingRule(ctx context.Context, workspaceId, ruleId string) error {
	return repo.client.send(ctx, "delete_routing_rule", http.MethodDelete,
		workspacePath(workspaceId, "inbox", "routing-rules", ruleId), nil, nil)
}
