package dto

import (
	"time"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
	"github.com/guregu/null/v5"
)

type ThreadDto struct {
	Id                 string           `json:"id"`
	Subject            string           `json:"subject"`
	ChannelType        string           `json:"channel_type"`
	State              string           `json:"state"`
	LifecycleState     string           `json:"lifecycle_state"`
	Unread             bool             `json:"unread"`
	Priority           string           `json:"priority"`
	Participants       []ParticipantDto `json:"participants"`
	LastMessageAt      null.Time        `json:"last_message_at"`
	LastMessagePreview string           `json:"last_message_preview"`
}

func AdaptThreadDto(t models.Thread) ThreadDto {
	return ThreadDto{
		Id:                 t.Id,
		Subject:            t.Subject,
		ChannelType:        string(t.ChannelType),
		State:              string(t.State),
		LifecycleState:     string(t.LifecycleState()),
		Unread:             t.Unread,
		Priority:           string(t.Priority),
		Participants:       nonNilSlice(pure_utils.Map(t.Participants, AdaptParticipantDto)),
		LastMessageAt:      null.NewTime(t.LastMessageAt, !t.LastMessageAt.IsZero()),
		LastMessagePreview: t.LastMessagePreview,
	}
}

type ThreadMessageDto struct {
	Id        string    `json:"id"`
	ThreadId  string    `json:"thread_id"`
	AuthorId  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func AdaptThreadMessageDto(m models.ThreadMessage) ThreadMessageDto {
	return ThreadMessageDto(m)
}

type CreateThreadBody struct {
	Subject        string       `json:"subject" binding:"required"`
	ChannelType    string       `json:"channel_type" binding:"omitempty,oneof=direct project support talent"`
	ParticipantIds StringOrList `json:"participant_ids" binding:"required"`
	InitialMessage string       `json:"initial_message"`
}

func AdaptCreateThreadInput(body CreateThreadBody) models.CreateThreadInput {
	return models.CreateThreadInput{
		Subject:        body.Subject,
		ChannelType:    models.ChannelType(body.ChannelType),
		ParticipantIds: body.ParticipantIds,
		InitialMessage: body.InitialMessage,
	}
}

// CreateThreadResponse carries the created thread, and the error of the initial message when
// the thread was created without it.
type CreateThreadResponse struct {
	Thread              ThreadDto   `json:"thread"`
	InitialMessageError null.String `json:"initial_message_error"`
}

type PostMessageBody struct {
	Body string `json:"body" binding:"required"`
}

type ThreadStateBody struct {
	State string `json:"state" binding:"required,oneof=active archived"`
}

type ToggleArchiveBody struct {
	State string `json:"state" binding:"omitempty,oneof=active archived"`
}

type ThreadStateResponse struct {
	ThreadId string `json:"thread_id"`
	State    string `json:"state"`
}

type EscalateThreadBody struct {
	Reason   string `json:"reason" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=standard high"`
}

type AssignThreadBody struct {
	AssigneeId  string `json:"assignee_id"`
	NotifyAgent bool   `json:"notify_agent"`
}
