package models

import "slices"

type RoutingTarget string

const (
	RoutingTargetOperations RoutingTarget = "operations"
	RoutingTargetFinance    RoutingTarget = "finance"
	RoutingTargetSuccess    RoutingTarget = "success"
	RoutingTargetTalent     RoutingTarget = "talent"
)

var ValidRoutingTargets = []RoutingTarget{
	RoutingTargetOperations, RoutingTargetFinance, RoutingTargetSuccess, RoutingTargetTalent,
}

func (t RoutingTarget) IsValid() bool {
	return slices.Contains(ValidRoutingTargets, t)
}

type RoutingPriority string

const (
	RoutingPriorityLow    RoutingPriority = "low"
	RoutingPriorityMedium RoutingPriority = "medium"
	RoutingPriorityHigh   RoutingPriority = "high"
)

var ValidRoutingPriorities = []RoutingPriority{RoutingPriorityLow, RoutingPriorityMedium, RoutingPriorityHigh}

func (p RoutingPriority) IsValid() bool {
	return slices.Contains(ValidRoutingPriorities, p)
}

type RoutingConditionKind string

// RoutingConditionContains matches when the searchable text of a thread contains the value,
// case-insensitively. It is the only kind stored by the collaborator service today.
const RoutingConditionContains RoutingConditionKind = "contains"

type RoutingCondition struct {
	Kind  RoutingConditionKind
	Value string
}

func ContainsCondition(value string) RoutingCondition {
	return RoutingCondition{Kind: RoutingConditionContains, Value: value}
}

// RoutingRule directs threads to a queue. Rules are evaluated in stored order and the first
// match wins: Priority is informative for operators and is not used as a tie-break.
type RoutingRule struct {
	Id        string
	Name      string
	Channels  []ChannelType // empty means every channel
	Condition RoutingCondition
	Target    RoutingTarget
	Priority  RoutingPriority
}

type RoutingRuleInput struct {
	Name      string
	Channels  []ChannelType
	Condition RoutingCondition
	Target    RoutingTarget
	Priority  RoutingPriority
}
