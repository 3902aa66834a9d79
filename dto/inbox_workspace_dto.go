package dto

import (
	"time"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
	"github.com/guregu/null/v5"
)

type InboxWorkspaceViewDto struct {
	Workspace        WorkspaceInboxDto `json:"workspace"`
	FromCache        bool              `json:"from_cache"`
	Loading          bool              `json:"loading"`
	LastUpdated      null.Time         `json:"last_updated"`
	Error            null.String       `json:"error"`
	SelectedThreadId null.String       `json:"selected_thread_id"`
}

// AdaptInboxWorkspaceViewDto renders the view. errorMessage is the message to expose for the
// fetch error of the view, if any.
func AdaptInboxWorkspaceViewDto(view models.InboxWorkspaceView, errorMessage string) InboxWorkspaceViewDto {
	return InboxWorkspaceViewDto{
		Workspace:        AdaptWorkspaceInboxDto(view.Workspace),
		FromCache:        view.FromCache,
		Loading:          view.Loading,
		LastUpdated:      null.NewTime(view.LastUpdated, !view.LastUpdated.IsZero()),
		Error:            null.NewString(errorMessage, view.FetchError != nil),
		SelectedThreadId: null.NewString(view.SelectedThreadId, view.SelectedThreadId != ""),
	}
}

type WorkspaceInboxDto struct {
	WorkspaceId          string              `json:"workspace_id"`
	Summary              InboxSummaryDto     `json:"summary"`
	Preferences          InboxPreferencesDto `json:"preferences"`
	Automations          InboxAutomationsDto `json:"automations"`
	SavedReplies         []SavedReplyDto     `json:"saved_replies"`
	RoutingRules         []RoutingRuleDto    `json:"routing_rules"`
	ActiveThreads        []ThreadDto         `json:"active_threads"`
	SupportCases         []SupportCaseDto    `json:"support_cases"`
	ParticipantDirectory []ParticipantDto    `json:"participant_directory"`
	LastSyncedAt         null.Time           `json:"last_synced_at"`
}

func AdaptWorkspaceInboxDto(w models.WorkspaceInbox) WorkspaceInboxDto {
	return WorkspaceInboxDto{
		WorkspaceId:          w.WorkspaceId,
		Summary:              InboxSummaryDto(w.Summary),
		Preferences:          AdaptInboxPreferencesDto(w.Preferences),
		Automations:          AdaptInboxAutomationsDto(w.Automations),
		SavedReplies:         nonNilSlice(pure_utils.Map(w.SavedReplies, AdaptSavedReplyDto)),
		RoutingRules:         nonNilSlice(pure_utils.Map(w.RoutingRules, AdaptRoutingRuleDto)),
		ActiveThreads:        nonNilSlice(pure_utils.Map(w.ActiveThreads, AdaptThreadDto)),
		SupportCases:         nonNilSlice(pure_utils.Map(w.SupportCases, AdaptSupportCaseDto)),
		ParticipantDirectory: nonNilSlice(pure_utils.Map(w.ParticipantDirectory, AdaptParticipantDto)),
		LastSyncedAt:         null.NewTime(w.LastSyncedAt, !w.LastSyncedAt.IsZero()),
	}
}

type InboxSummaryDto struct {
	UnreadThreads      int     `json:"unread_threads"`
	AwaitingReply      int     `json:"awaiting_reply"`
	AvgResponseMinutes float64 `json:"avg_response_minutes"`
	AssignmentsActive  int     `json:"assignments_active"`
	OpenSupportCases   int     `json:"open_support_cases"`
	EscalationsOpen    int     `json:"escalations_open"`
	SentimentScore     float64 `json:"sentiment_score"`
}

type InboxPreferencesDto struct {
	Timezone             string   `json:"timezone"`
	EmailNotifications   bool     `json:"email_notifications"`
	PushNotifications    bool     `json:"push_notifications"`
	AutoResponderEnabled bool     `json:"auto_responder_enabled"`
	AutoResponderMessage string   `json:"auto_responder_message"`
	EscalationKeywords   []string `json:"escalation_keywords"`
	DefaultSavedReplyId  string   `json:"default_saved_reply_id"`
}

func AdaptInboxPreferencesDto(p models.InboxPreferences) InboxPreferencesDto {
	keywords := p.EscalationKeywords
	if keywords == nil {
		keywords = []string{}
	}
	return InboxPreferencesDto{
		Timezone:             p.Timezone,
		EmailNotifications:   p.Notifications.Email,
		PushNotifications:    p.Notifications.Push,
		AutoResponderEnabled: p.AutoResponder.Enabled,
		AutoResponderMessage: p.AutoResponder.Message,
		EscalationKeywords:   keywords,
		DefaultSavedReplyId:  p.DefaultSavedReplyId,
	}
}

// UpdatePreferencesInput is a partial update: absent fields keep their current value.
type UpdatePreferencesInput struct {
	Timezone             null.String `json:"timezone"`
	EmailNotifications   null.Bool   `json:"email_notifications"`
	PushNotifications    null.Bool   `json:"push_notifications"`
	AutoResponderEnabled null.Bool   `json:"auto_responder_enabled"`
	AutoResponderMessage null.String `json:"auto_responder_message"`
	EscalationKeywords   *[]string   `json:"escalation_keywords"`
	DefaultSavedReplyId  null.String `json:"default_saved_reply_id"`
}

func AdaptPreferencesPatch(input UpdatePreferencesInput) models.PreferencesPatch {
	return models.PreferencesPatch{
		Timezone:             input.Timezone.Ptr(),
		EmailNotifications:   input.EmailNotifications.Ptr(),
		PushNotifications:    input.PushNotifications.Ptr(),
		AutoResponderEnabled: input.AutoResponderEnabled.Ptr(),
		AutoResponderMessage: input.AutoResponderMessage.Ptr(),
		EscalationKeywords:   input.EscalationKeywords,
		DefaultSavedReplyId:  input.DefaultSavedReplyId.Ptr(),
	}
}

type InboxAutomationsDto struct {
	AutoEscalateUrgent bool           `json:"auto_escalate_urgent"`
	ShareDailyDigest   bool           `json:"share_daily_digest"`
	NotifyTalent       bool           `json:"notify_talent"`
	EscalationMatrix   map[string]any `json:"escalation_matrix"`
	Routing            map[string]any `json:"routing"`
	TalentAlerts       map[string]any `json:"talent_alerts"`
}

func AdaptInboxAutomationsDto(a models.InboxAutomations) InboxAutomationsDto {
	return InboxAutomationsDto{
		AutoEscalateUrgent: a.AutoEscalateUrgent,
		ShareDailyDigest:   a.ShareDailyDigest,
		NotifyTalent:       a.NotifyTalent,
		EscalationMatrix:   nonNilMap(a.EscalationMatrix),
		Routing:            nonNilMap(a.Routing),
		TalentAlerts:       nonNilMap(a.TalentAlerts),
	}
}

func AdaptInboxAutomations(a InboxAutomationsDto) models.InboxAutomations {
	return models.InboxAutomations{
		AutoEscalateUrgent: a.AutoEscalateUrgent,
		ShareDailyDigest:   a.ShareDailyDigest,
		NotifyTalent:       a.NotifyTalent,
		EscalationMatrix:   a.EscalationMatrix,
		Routing:            a.Routing,
		TalentAlerts:       a.TalentAlerts,
	}
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

type ParticipantDto struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func AdaptParticipantDto(p models.Participant) ParticipantDto {
	return ParticipantDto(p)
}

type SupportCaseDto struct {
	Id        string    `json:"id"`
	ThreadId  string    `json:"thread_id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func AdaptSupportCaseDto(c models.SupportCase) SupportCaseDto {
	return SupportCaseDto{
		Id:        c.Id,
		ThreadId:  c.ThreadId,
		Title:     c.Title,
		Priority:  string(c.Priority),
		Status:    string(c.Status),
		Summary:   c.Summary,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
