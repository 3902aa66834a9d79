package dto

import (
	"github.com/freelancehub/agency-inbox/models"
	"github.com/guregu/null/v5"
)

type ThreadTriageDto struct {
	ThreadId   string                  `json:"thread_id"`
	Routed     bool                    `json:"routed"`
	Rule       *RoutingRuleDto         `json:"rule"`
	Escalation EscalationSuggestionDto `json:"escalation"`
}

type EscalationSuggestionDto struct {
	Suggested bool        `json:"suggested"`
	Reason    null.String `json:"reason"`
	Keyword   null.String `json:"keyword"`
}

func AdaptThreadTriageDto(t models.ThreadTriage) ThreadTriageDto {
	triage := ThreadTriageDto{
		ThreadId: t.Thread.Id,
		Routed:   t.Routed,
		Escalation: EscalationSuggestionDto{
			Suggested: t.Escalation.Suggested,
			Reason:    null.NewString(string(t.Escalation.Reason), t.Escalation.Reason != ""),
			Keyword:   null.NewString(t.Escalation.Keyword, t.Escalation.Keyword != ""),
		},
	}
	if t.Routed {
		rule := AdaptRoutingRuleDto(t.Rule)
		triage.Rule = &rule
	}
	return triage
}
