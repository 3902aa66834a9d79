package dto

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
)

type RoutingRuleDto struct {
	Id        string              `json:"id"`
	Name      string              `json:"name"`
	Channels  []string            `json:"channels"`
	Condition RoutingConditionDto `json:"condition"`
	Target    string              `json:"target"`
	Priority  string              `json:"priority"`
}

func AdaptRoutingRuleDto(r models.RoutingRule) RoutingRuleDto {
	return RoutingRuleDto{
		Id:   r.Id,
		Name: r.Name,
		Channels: nonNilSlice(pure_utils.Map(r.Channels, func(c models.ChannelType) string {
			return string(c)
		})),
		Condition: RoutingConditionDto{Kind: string(r.Condition.Kind), Value: r.Condition.Value},
		Target:    string(r.Target),
		Priority:  string(r.Priority),
	}
}

// RoutingConditionDto is written as an object. A bare string is read as a "contains" condition.
type RoutingConditionDto struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (c *RoutingConditionDto) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = RoutingConditionDto{Kind: string(models.RoutingConditionContains), Value: s}
		return nil
	}

	type plain RoutingConditionDto
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.New("condition must be either a string or an object with a kind and a value")
	}
	*c = RoutingConditionDto(p)
	return nil
}

type RoutingRuleBody struct {
	Name      string              `json:"name" binding:"required"`
	Channels  []string            `json:"channels" binding:"dive,oneof=direct project support talent"`
	Condition RoutingConditionDto `json:"condition"`
	Target    string              `json:"target" binding:"required,oneof=operations finance success talent"`
	Priority  string              `json:"priority" binding:"omitempty,oneof=low medium high"`
}

func AdaptRoutingRuleInput(body RoutingRuleBody) models.RoutingRuleInput {
	return models.RoutingRuleInput{
		Name: body.Name,
		Channels: pure_utils.Map(body.Channels, func(c string) models.ChannelType {
			return models.ChannelType(c)
		}),
		Condition: models.RoutingCondition{
			Kind:  models.RoutingConditionKind(body.Condition.Kind),
			Value: body.Condition.Value,
		},
		Target:   models.RoutingTarget(body.Target),
		Priority: models.RoutingPriority(body.Priority),
	}
}

type RouteThreadResponse struct {
	ThreadId string          `json:"thread_id"`
	Routed   bool            `json:"routed"`
	Rule     *RoutingRuleDto `json:"rule"`
}

func AdaptRouteThreadResponse(threadId string, rule models.RoutingRule, routed bool) RouteThreadResponse {
	response := RouteThreadResponse{ThreadId: threadId, Routed: routed}
	if routed {
		ruleDto := AdaptRoutingRuleDto(rule)
		response.Rule = &ruleDto
	}
	return response
}
