package httpmodels

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
)

type HTTPRoutingRule struct {
	Id        string               `json:"id,omitempty"`
	Name      string               `json:"name"`
	Channels  []string             `json:"channels"`
	Condition HTTPRoutingCondition `json:"condition"`
	Target    string               `json:"target"`
	Priority  string               `json:"priority"`
}

// HTTPRoutingCondition is stored by the collaborator service either as a bare string, which is
// a "contains" condition, or as an object with an explicit kind.
type HTTPRoutingCondition struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (c *HTTPRoutingCondition) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Kind = string(models.RoutingConditionContains)
		c.Value = s
		return nil
	}

	type object HTTPRoutingCondition
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return errors.New("routing condition must be either a string or an object")
	}
	if o.Kind == "" {
		o.Kind = string(models.RoutingConditionContains)
	}
	*c = HTTPRoutingCondition(o)
	return nil
}

func (c HTTPRoutingCondition) MarshalJSON() ([]byte, error) {
	if c.Kind == "" || c.Kind == string(models.RoutingConditionContains) {
		return json.Marshal(c.Value)
	}
	type object HTTPRoutingCondition
	return json.Marshal(object(c))
}

func AdaptRoutingRule(h HTTPRoutingRule) models.RoutingRule {
	return models.RoutingRule{
		Id:   h.Id,
		Name: h.Name,
		Channels: pure_utils.Map(h.Channels, func(c string) models.ChannelType {
			return models.ChannelType(c)
		}),
		Condition: models.RoutingCondition{
			Kind:  models.RoutingConditionKind(h.Condition.Kind),
			Value: h.Condition.Value,
		},
		Target:   models.RoutingTarget(h.Target),
		Priority: models.RoutingPriority(h.Priority),
	}
}

func AdaptHTTPRoutingRuleInput(input models.RoutingRuleInput) HTTPRoutingRule {
	channels := pure_utils.Map(input.Channels, func(c models.ChannelType) string { return string(c) })
	if channels == nil {
		channels = []string{}
	}
	return HTTPRoutingRule{
		Name:     input.Name,
		Channels: channels,
		Condition: HTTPRoutingCondition{
			Kind:  string(input.Condition.Kind),
			Value: input.Condition.Value,
		},
		Target:   string(input.Target),
		Priority: string(input.Priority),
	}
}
