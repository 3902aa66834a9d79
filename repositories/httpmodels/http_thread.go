package httpmodels

import (
	"time"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
)

type HTTPThread struct {
	Id                 string            `json:"id"`
	Subject            string            `json:"subject"`
	ChannelType        string            `json:"channelType"`
	State              string            `json:"state"`
	Unread             bool              `json:"unread"`
	Priority           string            `json:"priority"`
	Participants       []HTTPParticipant `json:"participants"`
	LastMessageAt      *time.Time        `json:"lastMessageAt,omitempty"`
	LastMessagePreview string            `json:"lastMessagePreview"`
}

type HTTPParticipant struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type HTTPThreadMessage struct {
	Id        string     `json:"id"`
	ThreadId  string     `json:"threadId"`
	AuthorId  string     `json:"authorId"`
	Body      string     `json:"body"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type HTTPCreateThread struct {
	Subject        string   `json:"subject"`
	ChannelType    string   `json:"channelType"`
	ParticipantIds []string `json:"participantIds"`
	WorkspaceId    string   `json:"workspaceId"`
}

type HTTPPostMessage struct {
	Body     string `json:"body"`
	AuthorId string `json:"authorId"`
}

type HTTPMarkRead struct {
	ActorId string `json:"actorId"`
}

type HTTPThreadStateChange struct {
	State         string `json:"state"`
	PreviousState string `json:"previousState,omitempty"`
	ActorId       string `json:"actorId"`
}

type HTTPEscalateThread struct {
	Reason   string `json:"reason"`
	Priority string `json:"priority"`
	ActorId  string `json:"actorId"`
}

type HTTPAssignThread struct {
	AssigneeId  string `json:"assigneeId"`
	NotifyAgent bool   `json:"notifyAgent"`
	ActorId     string `json:"actorId"`
}

func AdaptThread(h HTTPThread) models.Thread {
	thread := models.Thread{
		Id:                 h.Id,
		Subject:            h.Subject,
		ChannelType:        models.ChannelType(h.ChannelType),
		State:              models.ThreadState(h.State),
		Unread:             h.Unread,
		Priority:           models.ThreadPriority(h.Priority),
		Participants:       pure_utils.Map(h.Participants, AdaptParticipant),
		LastMessagePreview: h.LastMessagePreview,
	}
	if thread.State == "" {
		thread.State = models.ThreadActive
	}
	if thread.Priority == "" {
		thread.Priority = models.ThreadPriorityStandard
	}
	if h.LastMessageAt != nil {
		thread.LastMessageAt = *h.LastMessageAt
	}
	return thread
}

func AdaptParticipant(h HTTPParticipant) models.Participant {
	return models.Participant(h)
}

func AdaptThreadMessage(h HTTPThreadMessage) models.ThreadMessage {
	msg := models.ThreadMessage{
		Id:       h.Id,
		ThreadId: h.ThreadId,
		AuthorId: h.AuthorId,
		Body:     h.Body,
	}
	if h.CreatedAt != nil {
		msg.CreatedAt = *h.CreatedAt
	}
	return msg
}
