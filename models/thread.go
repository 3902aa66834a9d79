package models

import (
	"slices"
	"time"
)

type ChannelType string

const (
	ChannelDirect  ChannelType = "direct"
	ChannelProject ChannelType = "project"
	ChannelSupport ChannelType = "support"
	ChannelTalent  ChannelType = "talent"
)

var ValidChannelTypes = []ChannelType{ChannelDirect, ChannelProject, ChannelSupport, ChannelTalent}

func (c ChannelType) IsValid() bool {
	return slices.Contains(ValidChannelTypes, c)
}

type ThreadState string

const (
	ThreadActive   ThreadState = "active"
	ThreadArchived ThreadState = "archived"
)

func (s ThreadState) IsValid() bool {
	return s == ThreadActive || s == ThreadArchived
}

// Toggle returns the opposite state. Anything that is not archived is considered active.
func (s ThreadState) Toggle() ThreadState {
	if s == ThreadArchived {
		return ThreadActive
	}
	return ThreadArchived
}

func (s ThreadState) CanTransition(newState ThreadState) bool {
	if !s.IsValid() || !newState.IsValid() {
		return false
	}
	return true
}

type ThreadPriority string

const (
	ThreadPriorityStandard ThreadPriority = "standard"
	ThreadPriorityHigh     ThreadPriority = "high"
)

// ThreadLifecycleState is the state seen by the inbox operator. It is derived from the
// persisted state and unread flag.
type ThreadLifecycleState string

const (
	ThreadUnreadActive ThreadLifecycleState = "unread-active"
	ThreadReadActive   ThreadLifecycleState = "read-active"
	ThreadArchivedOnly ThreadLifecycleState = "archived"
)

type Thread struct {
	Id                 string
	Subject            string
	ChannelType        ChannelType
	State              ThreadState
	Unread             bool
	Priority           ThreadPriority
	Participants       []Participant
	LastMessageAt      time.Time
	LastMessagePreview string
}

func (t Thread) LifecycleState() ThreadLifecycleState {
	switch {
	case t.State == ThreadArchived:
		return ThreadArchivedOnly
	case t.Unread:
		return ThreadUnreadActive
	default:
		return ThreadReadActive
	}
}

type CreateThreadInput struct {
	Subject        string
	ChannelType    ChannelType
	ParticipantIds []string
	InitialMessage string
}

type ThreadMessage struct {
	Id        string
	ThreadId  string
	AuthorId  string
	Body      string
	CreatedAt time.Time
}

type ThreadAssignment struct {
	ThreadId    string
	AssigneeId  string
	NotifyAgent bool
}
