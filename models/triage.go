package models

type EscalationReason string

const (
	EscalationReasonKeyword      EscalationReason = "keyword"
	EscalationReasonHighPriority EscalationReason = "high_priority"
)

type EscalationSuggestion struct {
	Suggested bool
	Reason    EscalationReason
	Keyword   string
}

// ThreadTriage is the routing decision and escalation suggestion computed for an active thread.
type ThreadTriage struct {
	Thread     Thread
	Rule       RoutingRule
	Routed     bool
	Escalation EscalationSuggestion
}
