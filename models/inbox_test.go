package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInboxWorkspaceCacheKey(t *testing.T) {
	assert.Equal(t, "agency:inbox-workspace:ws-1", InboxWorkspaceCacheKey("ws-1"))
	assert.NotEqual(t, InboxWorkspaceCacheKey("ws-1"), InboxWorkspaceCacheKey("ws-2"))
}

func TestPreferencesPatchApply(t *testing.T) {
	current := InboxPreferences{
		Timezone:            "UTC",
		Notifications:       InboxNotifications{Email: true},
		AutoResponder:       InboxAutoResponder{Enabled: true, Message: "Back on Monday"},
		EscalationKeywords:  []string{"refund"},
		DefaultSavedReplyId: "reply-1",
	}
	push := true
	keywords := []string{"lawyer"}
	empty := ""

	next := PreferencesPatch{
		PushNotifications:   &push,
		EscalationKeywords:  &keywords,
		DefaultSavedReplyId: &empty,
	}.Apply(current)

	assert.Equal(t, InboxPreferences{
		Timezone:            "UTC",
		Notifications:       InboxNotifications{Email: true, Push: true},
		AutoResponder:       InboxAutoResponder{Enabled: true, Message: "Back on Monday"},
		EscalationKeywords:  []string{"lawyer"},
		DefaultSavedReplyId: "",
	}, next)

	keywords[0] = "changed"
	assert.Equal(t, []string{"lawyer"}, next.EscalationKeywords)
	assert.Equal(t, []string{"refund"}, current.EscalationKeywords)
}

func TestPreferencesPatchApplyEmpty(t *testing.T) {
	current := InboxPreferences{Timezone: "Europe/Paris", EscalationKeywords: []string{"refund"}}

	next := PreferencesPatch{}.Apply(current)
	next.EscalationKeywords[0] = "changed"

	assert.Equal(t, "Europe/Paris", next.Timezone)
	assert.Equal(t, []string{"refund"}, current.EscalationKeywords)
}

func TestWorkspaceInboxFingerprint(t *testing.T) {
	inbox := WorkspaceInbox{
		WorkspaceId:   "ws-1",
		ActiveThreads: []Thread{{Id: "thread-1", Subject: "Kickoff"}},
		LastSyncedAt:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	first, err := inbox.Fingerprint()
	require.NoError(t, err)

	inbox.LastSyncedAt = inbox.LastSyncedAt.Add(time.Hour)
	resynced, err := inbox.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, first, resynced, "the sync time is not part of the content")

	inbox.ActiveThreads[0].Unread = true
	changed, err := inbox.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestWorkspaceInboxFind(t *testing.T) {
	inbox := WorkspaceInbox{
		ActiveThreads: []Thread{{Id: "thread-1"}},
		SavedReplies:  []SavedReply{{Id: "reply-1"}},
		RoutingRules:  []RoutingRule{{Id: "rule-1"}},
	}

	_, ok := inbox.FindThread("thread-1")
	assert.True(t, ok)
	_, ok = inbox.FindSavedReply("reply-2")
	assert.False(t, ok)
	rule, ok := inbox.FindRoutingRule("rule-1")
	assert.True(t, ok)
	assert.Equal(t, "rule-1", rule.Id)
}
