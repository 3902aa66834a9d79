package models

type AnalyticsEvent string

const (
	AnalyticsThreadCreated         AnalyticsEvent = "Created a Thread"
	AnalyticsThreadReplied         AnalyticsEvent = "Replied to a Thread"
	AnalyticsThreadArchived        AnalyticsEvent = "Archived a Thread"
	AnalyticsThreadUnarchived      AnalyticsEvent = "Unarchived a Thread"
	AnalyticsThreadEscalated       AnalyticsEvent = "Escalated a Thread"
	AnalyticsThreadAssigned        AnalyticsEvent = "Assigned a Thread"
	AnalyticsSavedReplyCreated     AnalyticsEvent = "Created a Saved Reply"
	AnalyticsSavedReplyUpdated     AnalyticsEvent = "Updated a Saved Reply"
	AnalyticsSavedReplyDeleted     AnalyticsEvent = "Deleted a Saved Reply"
	AnalyticsRoutingRuleCreated    AnalyticsEvent = "Created a Routing Rule"
	AnalyticsRoutingRuleUpdated    AnalyticsEvent = "Updated a Routing Rule"
	AnalyticsRoutingRuleDeleted    AnalyticsEvent = "Deleted a Routing Rule"
	AnalyticsInboxPreferencesSaved AnalyticsEvent = "Saved Inbox Preferences"
	AnalyticsInboxAutomationsSaved AnalyticsEvent = "Saved Inbox Automations"
)
