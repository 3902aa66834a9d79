package inbox_workspace

import (
	"strings"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
	"github.com/freelancehub/agency-inbox/usecases/routing"
)

// EscalationSuggested tells whether a thread should be escalated under the workspace automations.
// Nothing is suggested unless urgent auto-escalation is enabled, nor for archived threads, nor for
// threads that already have an open support case.
func EscalationSuggested(workspace models.WorkspaceInbox, thread models.Thread) models.EscalationSuggestion {
	if !workspace.Automations.AutoEscalateUrgent || thread.State == models.ThreadArchived {
		return models.EscalationSuggestion{}
	}
	for _, c := range workspace.SupportCases {
		if c.ThreadId == thread.Id && c.Status.IsOpen() {
			return models.EscalationSuggestion{}
		}
	}

	text := thread.Subject + "\n" + thread.LastMessagePreview
	for _, keyword := range workspace.Preferences.EscalationKeywords {
		keyword = strings.TrimSpace(keyword)
		if keyword != "" && pure_utils.ContainsFold(text, keyword) {
			return models.EscalationSuggestion{Suggested: true, Reason: models.EscalationReasonKeyword, Keyword: keyword}
		}
	}

	if thread.Priority == models.ThreadPriorityHigh {
		return models.EscalationSuggestion{Suggested: true, Reason: models.EscalationReasonHighPriority}
	}
	return models.EscalationSuggestion{}
}

// Triage routes every active thread of the workspace and computes its escalation suggestion.
func Triage(workspace models.WorkspaceInbox) []models.ThreadTriage {
	out := make([]models.ThreadTriage, 0, len(workspace.ActiveThreads))
	for _, thread := range workspace.ActiveThreads {
		if thread.State == models.ThreadArchived {
			continue
		}
		rule, routed := routing.Route(thread, workspace.RoutingRules)
		out = append(out, models.ThreadTriage{
			Thread:     thread,
			Rule:       rule,
			Routed:     routed,
			Escalation: EscalationSuggested(workspace, thread),
		})
	}
	return out
}
