package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"
)

const inboxWorkspaceCacheNamespace = "agency:inbox-workspace"

// InboxWorkspaceCacheKey namespaces the cache entry of a workspace inbox so that entries of
// different workspaces (or of other entity types) never collide.
func InboxWorkspaceCacheKey(workspaceId string) string {
	return fmt.Sprintf("%s:%s", inboxWorkspaceCacheNamespace, workspaceId)
}

// WorkspaceInbox is the composed read model of an agency workspace inbox. It is never mutated
// locally: every change goes through a write to the collaborator service followed by a refetch.
type WorkspaceInbox struct {
	WorkspaceId          string
	Summary              InboxSummary
	Preferences          InboxPreferences
	Automations          InboxAutomations
	SavedReplies         []SavedReply
	RoutingRules         []RoutingRule
	ActiveThreads        []Thread
	SupportCases         []SupportCase
	ParticipantDirectory []Participant
	LastSyncedAt         time.Time `hash:"ignore"`
}

// InboxSummary counters are computed server side on each fetch and are only informative.
type InboxSummary struct {
	UnreadThreads      int
	AwaitingReply      int
	AvgResponseMinutes float64
	AssignmentsActive  int
	OpenSupportCases   int
	EscalationsOpen    int
	SentimentScore     float64
}

type InboxPreferences struct {
	Timezone            string
	Notifications       InboxNotifications
	AutoResponder       InboxAutoResponder
	EscalationKeywords  []string
	DefaultSavedReplyId string
}

type InboxNotifications struct {
	Email bool
	Push  bool
}

type InboxAutoResponder struct {
	Enabled bool
	Message string
}

type InboxAutomations struct {
	AutoEscalateUrgent bool
	ShareDailyDigest   bool
	NotifyTalent       bool

	// Free-form extension areas, stored and returned as-is.
	EscalationMatrix map[string]any
	Routing          map[string]any
	TalentAlerts     map[string]any
}

// PreferencesPatch carries a partial preferences update. Unset fields keep their current value.
type PreferencesPatch struct {
	Timezone             *string
	EmailNotifications   *bool
	PushNotifications    *bool
	AutoResponderEnabled *bool
	AutoResponderMessage *string
	EscalationKeywords   *[]string
	DefaultSavedReplyId  *string
}

// Apply returns a copy of the preferences with the fields of the patch applied.
func (p PreferencesPatch) Apply(current InboxPreferences) InboxPreferences {
	next := current
	next.EscalationKeywords = append([]string{}, current.EscalationKeywords...)

	if p.Timezone != nil {
		next.Timezone = *p.Timezone
	}
	if p.EmailNotifications != nil {
		next.Notifications.Email = *p.EmailNotifications
	}
	if p.PushNotifications != nil {
		next.Notifications.Push = *p.PushNotifications
	}
	if p.AutoResponderEnabled != nil {
		next.AutoResponder.Enabled = *p.AutoResponderEnabled
	}
	if p.AutoResponderMessage != nil {
		next.AutoResponder.Message = *p.AutoResponderMessage
	}
	if p.EscalationKeywords != nil {
		next.EscalationKeywords = append([]string{}, (*p.EscalationKeywords)...)
	}
	if p.DefaultSavedReplyId != nil {
		next.DefaultSavedReplyId = *p.DefaultSavedReplyId
	}
	return next
}

func (w WorkspaceInbox) FindThread(threadId string) (Thread, bool) {
	for _, t := range w.ActiveThreads {
		if t.Id == threadId {
			return t, true
		}
	}
	return Thread{}, false
}

func (w WorkspaceInbox) FindSavedReply(replyId string) (SavedReply, bool) {
	for _, r := range w.SavedReplies {
		if r.Id == replyId {
			return r, true
		}
	}
	return SavedReply{}, false
}

func (w WorkspaceInbox) FindRoutingRule(ruleId string) (RoutingRule, bool) {
	for _, r := range w.RoutingRules {
		if r.Id == ruleId {
			return r, true
		}
	}
	return RoutingRule{}, false
}

// Fingerprint is a stable hash of the aggregate content, excluding the sync timestamp.
func (w WorkspaceInbox) Fingerprint() (uint64, error) {
	return hashstructure.Hash(w, hashstructure.FormatV2, nil)
}

// InboxWorkspaceView is the aggregate as served to a reader, with the state of its cache entry.
type InboxWorkspaceView struct {
	Workspace        WorkspaceInbox
	FromCache        bool
	Loading          bool
	LastUpdated      time.Time
	FetchError       error
	SelectedThreadId string
}
