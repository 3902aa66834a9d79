package routing

import (
	"slices"
	"strings"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
)

// Evaluate reports whether rule applies to thread.
func Evaluate(rule models.RoutingRule, thread models.Thread) bool {
	return evaluate(rule, thread, searchableText(thread, ""))
}

// Route returns the first rule, in stored order, that applies to thread.
func Route(thread models.Thread, rules []models.RoutingRule) (models.RoutingRule, bool) {
	return RouteMessage(thread, "", rules)
}

// RouteMessage is Route with the body of an inbound message added to the searchable text.
func RouteMessage(thread models.Thread, body string, rules []models.RoutingRule) (models.RoutingRule, bool) {
	text := searchableText(thread, body)
	for _, rule := range rules {
		if evaluate(rule, thread, text) {
			return rule, true
		}
	}
	return models.RoutingRule{}, false
}

func evaluate(rule models.RoutingRule, thread models.Thread, text string) bool {
	if len(rule.Channels) > 0 && !slices.Contains(rule.Channels, thread.ChannelType) {
		return false
	}
	return matchCondition(rule.Condition, text)
}

func matchCondition(condition models.RoutingCondition, text string) bool {
	switch condition.Kind {
	case models.RoutingConditionContains:
		value := strings.TrimSpace(condition.Value)
		if value == "" {
			return true
		}
		return strings.Contains(text, pure_utils.FoldCase(value))
	default:
		return false
	}
}

// searchableText is the case folded text a condition is matched against: subject, last message
// preview, the optional body and the participant names and emails.
func searchableText(thread models.Thread, body string) string {
	parts := make([]string, 0, 3+2*len(thread.Participants))
	parts = append(parts, thread.Subject, thread.LastMessagePreview, body)
	for _, p := range thread.Participants {
		parts = append(parts, p.Name, p.Email)
	}
	return pure_utils.FoldCase(strings.Join(parts, "\n"))
}
