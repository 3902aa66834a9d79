package httpmodels

import (
	"encoding/json"
	"time"

	"github.com/TwiN/deepmerge"
	"github.com/cockroachdb/errors"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
)

type HTTPWorkspaceInbox struct {
	WorkspaceId          string               `json:"workspaceId"`
	Summary              HTTPInboxSummary     `json:"summary"`
	Preferences          HTTPInboxPreferences `json:"preferences"`
	Automations          HTTPInboxAutomations `json:"automations"`
	SavedReplies         []HTTPSavedReply     `json:"savedReplies"`
	RoutingRules         []HTTPRoutingRule    `json:"routingRules"`
	ActiveThreads        []HTTPThread         `json:"activeThreads"`
	SupportCases         []HTTPSupportCase    `json:"supportCases"`
	ParticipantDirectory []HTTPParticipant    `json:"participantDirectory"`
	LastSyncedAt         *time.Time           `json:"lastSyncedAt,omitempty"`
}

type HTTPInboxSummary struct {
	UnreadThreads      int     `json:"unreadThreads"`
	AwaitingReply      int     `json:"awaitingReply"`
	AvgResponseMinutes float64 `json:"avgResponseMinutes"`
	AssignmentsActive  int     `json:"assignmentsActive"`
	OpenSupportCases   int     `json:"openSupportCases"`
	EscalationsOpen    int     `json:"escalationsOpen"`
	SentimentScore     float64 `json:"sentimentScore"`
}

type HTTPInboxPreferences struct {
	Timezone            string                 `json:"timezone"`
	Notifications       HTTPInboxNotifications `json:"notifications"`
	AutoResponder       HTTPInboxAutoResponder `json:"autoResponder"`
	EscalationKeywords  []string               `json:"escalationKeywords"`
	DefaultSavedReplyId string                 `json:"defaultSavedReplyId"`
}

type HTTPInboxNotifications struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

type HTTPInboxAutoResponder struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

type HTTPInboxAutomations struct {
	AutoEscalateUrgent bool           `json:"autoEscalateUrgent"`
	ShareDailyDigest   bool           `json:"shareDailyDigest"`
	NotifyTalent       bool           `json:"notifyTalent"`
	EscalationMatrix   map[string]any `json:"escalationMatrix"`
	Routing            map[string]any `json:"routing"`
	TalentAlerts       map[string]any `json:"talentAlerts"`
}

// DefaultHTTPWorkspaceInbox is the shape every collaborator response is merged onto. All the
// collections and extension maps are non-nil so that the merge never meets a null value where
// a response carries an object or an array.
func DefaultHTTPWorkspaceInbox() HTTPWorkspaceInbox {
	return HTTPWorkspaceInbox{
		Preferences: HTTPInboxPreferences{
			Timezone:           "UTC",
			Notifications:      HTTPInboxNotifications{Email: true},
			EscalationKeywords: []string{},
		},
		Automations: HTTPInboxAutomations{
			EscalationMatrix: map[string]any{},
			Routing:          map[string]any{},
			TalentAlerts:     map[string]any{},
		},
		SavedReplies:         []HTTPSavedReply{},
		RoutingRules:         []HTTPRoutingRule{},
		ActiveThreads:        []HTTPThread{},
		SupportCases:         []HTTPSupportCase{},
		ParticipantDirectory: []HTTPParticipant{},
	}
}

// MergeWorkspaceInbox overlays a raw collaborator response on the default shape: fields present
// in the response win, missing fields keep their default value.
func MergeWorkspaceInbox(raw []byte) (HTTPWorkspaceInbox, error) {
	defaults, err := json.Marshal(DefaultHTTPWorkspaceInbox())
	if err != nil {
		return HTTPWorkspaceInbox{}, errors.Wrap(err, "could not encode the default inbox workspace")
	}

	merged, err := deepmerge.JSON(defaults, raw, deepmerge.Config{
		PreventMultipleDefinitionsOfKeysWithPrimitiveValue: false,
	})
	if err != nil {
		return HTTPWorkspaceInbox{}, errors.Wrap(err, "could not merge the inbox workspace response")
	}

	var out HTTPWorkspaceInbox
	if err := json.Unmarshal(merged, &out); err != nil {
		return HTTPWorkspaceInbox{}, errors.Wrap(err, "could not parse the inbox workspace response")
	}
	return out, nil
}

func AdaptWorkspaceInbox(h HTTPWorkspaceInbox) models.WorkspaceInbox {
	inbox := models.WorkspaceInbox{
		WorkspaceId:          h.WorkspaceId,
		Summary:              models.InboxSummary(h.Summary),
		Preferences:          AdaptInboxPreferences(h.Preferences),
		Automations:          AdaptInboxAutomations(h.Automations),
		SavedReplies:         pure_utils.Map(h.SavedReplies, AdaptSavedReply),
		RoutingRules:         pure_utils.Map(h.RoutingRules, AdaptRoutingRule),
		ActiveThreads:        pure_utils.Map(h.ActiveThreads, AdaptThread),
		SupportCases:         pure_utils.Map(h.SupportCases, AdaptSupportCase),
		ParticipantDirectory: pure_utils.Map(h.ParticipantDirectory, AdaptParticipant),
	}
	if h.LastSyncedAt != nil {
		inbox.LastSyncedAt = *h.LastSyncedAt
	}
	return inbox
}

func AdaptInboxPreferences(h HTTPInboxPreferences) models.InboxPreferences {
	return models.InboxPreferences{
		Timezone:            h.Timezone,
		Notifications:       models.InboxNotifications(h.Notifications),
		AutoResponder:       models.InboxAutoResponder(h.AutoResponder),
		EscalationKeywords:  h.EscalationKeywords,
		DefaultSavedReplyId: h.DefaultSavedReplyId,
	}
}

func AdaptHTTPInboxPreferences(p models.InboxPreferences) HTTPInboxPreferences {
	keywords := p.EscalationKeywords
	if keywords == nil {
		keywords = []string{}
	}
	return HTTPInboxPreferences{
		Timezone:            p.Timezone,
		Notifications:       HTTPInboxNotifications(p.Notifications),
		AutoResponder:       HTTPInboxAutoResponder(p.AutoResponder),
		EscalationKeywords:  keywords,
		DefaultSavedReplyId: p.DefaultSavedReplyId,
	}
}

func AdaptInboxAutomations(h HTTPInboxAutomations) models.InboxAutomations {
	return models.InboxAutomations(h)
}

func AdaptHTTPInboxAutomations(a models.InboxAutomations) HTTPInboxAutomations {
	return HTTPInboxAutomations{
		AutoEscalateUrgent: a.AutoEscalateUrgent,
		ShareDailyDigest:   a.ShareDailyDigest,
		NotifyTalent:       a.NotifyTalent,
		EscalationMatrix:   nonNilMap(a.EscalationMatrix),
		Routing:            nonNilMap(a.Routing),
		TalentAlerts:       nonNilMap(a.TalentAlerts),
	}
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
