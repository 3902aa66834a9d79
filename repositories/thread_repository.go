package repositories

import (
	"context"
	"net/http"
	"net/url"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/repositories/httpmodels"
)

type ThreadRepository struct {
	client *CollaboratorClient
}

func threadPath(threadId string, action string) string {
	return "/threads/" + url.PathEscape(threadId) + "/" + action
}

func (repo ThreadRepository) CreateThread(ctx context.Context, workspaceId string,
	input models.CreateThreadInput,
) (models.Thread, error) {
	var created httpmodels.HTTPThread
	err := repo.client.send(ctx, "create_thread", http.MethodPost, "/threads",
		httpmodels.HTTPCreateThread{
			Subject:        input.Subject,
			ChannelType:    string(input.ChannelType),
			ParticipantIds: input.ParticipantIds,
			WorkspaceId:    workspaceId,
		}, &created)
	if err != nil {
		return models.Thread{}, err
	}
	return httpmodels.AdaptThread(created), nil
}

func (repo ThreadRepository) PostMessage(ctx context.Context, threadId, authorId, body string) (models.ThreadMessage, error) {
	var msg httpmodels.HTTPThreadMessage
	err := repo.client.send(ctx, "post_thread_message", http.MethodPost, threadPath(threadId, "messages"),
		httpmodels.HTTPPostMessage{Body: body, AuthorId: authorId}, &msg)
	if err != nil {
		return models.ThreadMessage{}, err
	}

	message := httpmodels.AdaptThreadMessage(msg)
	if message.ThreadId == "" {
		message.ThreadId = threadId
	}
	return message, nil
}

func (repo ThreadRepository) MarkRead(ctx context.Context, threadId, actorId string) error {
	return repo.client.send(ctx, "mark_thread_read", http.MethodPost, threadPath(threadId, "read"),
		httpmodels.HTTPMarkRead{ActorId: actorId}, nil)
}

// SetThreadState moves a thread to newState. The previous state is sent along so that the
// collaborator service can reject a transition computed from a stale view.
func (repo ThreadRepository) SetThreadState(ctx context.Context, threadId, actorId string,
	previousState, newState models.ThreadState,
) error {
	return repo.client.send(ctx, "set_thread_state", http.MethodPost, threadPath(threadId, "state"),
		httpmodels.HTTPThreadStateChange{
			State:         string(newState),
			PreviousState: string(previousState),
			ActorId:       actorId,
		}, nil)
}

// EscalateThread opens a support case on the thread and returns it.
func (repo ThreadRepository) EscalateThread(ctx context.Context, threadId, actorId string,
	input models.EscalateThreadInput,
) (models.SupportCase, error) {
	var created httpmodels.HTTPSupportCase
	err := repo.client.send(ctx, "escalate_thread", http.MethodPost, threadPath(threadId, "escalate"),
		httpmodels.HTTPEscalateThread{
			Reason:   input.Reason,
			Priority: string(input.Priority),
			ActorId:  actorId,
		}, &created)
	if err != nil {
		return models.SupportCase{}, err
	}

	supportCase := httpmodels.AdaptSupportCase(created)
	if supportCase.ThreadId == "" {
		supportCase.ThreadId = threadId
	}
	if supportCase.Priority == "" {
		supportCase.Priority = input.Priority
	}
	return supportCase, nil
}

func (repo ThreadRepository) AssignThread(ctx context.Context, actorId string, assignment models.ThreadAssignment) error {
	return repo.client.send(ctx, "assign_thread", http.MethodPost, threadPath(assignment.ThreadId, "assign"),
		httpmodels.HTTPAssignThread{
			AssigneeId:  assignment.AssigneeId,
			NotifyAgent: assignment.NotifyAgent,
			ActorId:     actorId,
		}, nil)
}
