package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
	"github.com/freelancehub/agency-inbox/usecases/analytics"
	"github.com/freelancehub/agency-inbox/usecases/inbox_workspace"
)

type ThreadRepository interface {
	CreateThread(ctx context.Context, workspaceId string, input models.CreateThreadInput) (models.Thread, error)
	PostMessage(ctx context.Context, threadId, authorId, body string) (models.ThreadMessage, error)
	MarkRead(ctx context.Context, threadId, actorId string) error
	SetThreadState(ctx context.Context, threadId, actorId string, previousState, newState models.ThreadState) error
	EscalateThread(ctx context.Context, threadId, actorId string, input models.EscalateThreadInput) (models.SupportCase, error)
	AssignThread(ctx context.Context, actorId string, assignment models.ThreadAssignment) error
}

type ThreadUsecase struct {
	threadRepository ThreadRepository
	workspaces       WorkspaceSource
	coordinator      inbox_workspace.Coordinator
}

// MarkRead always calls through, even for a thread that is already read: the refresh that
// follows is what brings the unread counter up to date.
func (usecase ThreadUsecase) MarkRead(ctx context.Context, workspaceId, actorId, threadId string) error {
	if err := validateThreadAction(workspaceId, actorId, threadId); err != nil {
		return err
	}

	return usecase.coordinator.Mutate(ctx, workspaceId, func(ctx context.Context) error {
		return usecase.threadRepository.MarkRead(ctx, threadId, actorId)
	})
}

// SetThreadState moves the thread to target. The state of the thread in the cached aggregate,
// when known, is sent as the expected previous state.
func (usecase ThreadUsecase) SetThreadState(ctx context.Context, workspaceId, actorId, threadId string,
	target models.ThreadState,
) error {
	if err := validateThreadAction(workspaceId, actorId, threadId); err != nil {
		return err
	}
	if !target.IsValid() {
		return models.InvalidInput("state", "must be active or archived")
	}

	var previous models.ThreadState
	if workspace, err := usecase.workspaces.Current(ctx, workspaceId); err == nil {
		if thread, ok := workspace.FindThread(threadId); ok {
			previous = thread.State
		}
	} else if models.IsCancellation(err) {
		return err
	}

	return usecase.setThreadState(ctx, workspaceId, actorId, threadId, previous, target)
}

// ToggleArchive inverts the state of thread as last seen by the caller. Two operators toggling
// the same thread concurrently both compute their target from a possibly stale value; the
// expected previous state sent along lets the collaborator service reject the second one.
func (usecase ThreadUsecase) ToggleArchive(ctx context.Context, workspaceId, actorId string,
	thread models.Thread,
) (models.ThreadState, error) {
	if err := validateThreadAction(workspaceId, actorId, thread.Id); err != nil {
		return "", err
	}

	current := thread.State
	if current == "" {
		current = models.ThreadActive
	}
	target := current.Toggle()
	if !current.CanTransition(target) {
		return "", models.InvalidInput("state", "unknown current state")
	}

	if err := usecase.setThreadState(ctx, workspaceId, actorId, thread.Id, current, target); err != nil {
		return "", err
	}
	return target, nil
}

func (usecase ThreadUsecase) setThreadState(ctx context.Context, workspaceId, actorId, threadId string,
	previous, target models.ThreadState,
) error {
	err := usecase.coordinator.Mutate(ctx, workspaceId, func(ctx context.Context) error {
		return usecase.threadRepository.SetThreadState(ctx, threadId, actorId, previous, target)
	})
	if err != nil {
		return err
	}

	event := models.AnalyticsThreadArchived
	if target == models.ThreadActive {
		event = models.AnalyticsThreadUnarchived
	}
	analytics.TrackEvent(ctx, event, map[string]any{"workspace_id": workspaceId, "thread_id": threadId})
	return nil
}

func (usecase ThreadUsecase) Escalate(ctx context.Context, workspaceId, actorId, threadId, reason string,
	priority models.ThreadPriority,
) (models.SupportCase, error) {
	if err := validateThreadAction(workspaceId, actorId, threadId); err != nil {
		return models.SupportCase{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.SupportCase{}, models.InvalidInput("reason", "is required")
	}
	if priority == "" {
		priority = models.ThreadPriorityHigh
	}
	if priority != models.ThreadPriorityHigh && priority != models.ThreadPriorityStandard {
		return models.SupportCase{}, models.InvalidInput("priority", "must be standard or high")
	}

	supportCase, err := inbox_workspace.MutateReturn(ctx, usecase.coordinator, workspaceId,
		func(ctx context.Context) (models.SupportCase, error) {
			return usecase.threadRepository.EscalateThread(ctx, threadId, actorId, models.EscalateThreadInput{
				Reason:   reason,
				Priority: priority,
			})
		})
	if err != nil {
		return models.SupportCase{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsThreadEscalated, map[string]any{
		"workspace_id": workspaceId,
		"thread_id":    threadId,
		"priority":     string(priority),
	})
	return supportCase, nil
}

func (usecase ThreadUsecase) Assign(ctx context.Context, workspaceId, actorId, threadId, assigneeId string,
	notifyAgent bool,
) error {
	if strings.TrimSpace(actorId) == "" {
		return errors.Mark(errors.WithStack(models.ErrUnresolvedActor), models.ErrInvalidAssignment)
	}
	assigneeId = strings.TrimSpace(assigneeId)
	if assigneeId == "" {
		return errors.Wrap(models.ErrInvalidAssignment, "assignee_id is required")
	}
	if err := validateThreadAction(workspaceId, actorId, threadId); err != nil {
		return err
	}

	err := usecase.coordinator.Mutate(ctx, workspaceId, func(ctx context.Context) error {
		return usecase.threadRepository.AssignThread(ctx, actorId, models.ThreadAssignment{
			ThreadId:    threadId,
			AssigneeId:  assigneeId,
			NotifyAgent: notifyAgent,
		})
	})
	if err != nil {
		return err
	}

	analytics.TrackEvent(ctx, models.AnalyticsThreadAssigned, map[string]any{
		"workspace_id": workspaceId,
		"thread_id":    threadId,
	})
	return nil
}

func (usecase ThreadUsecase) Reply(ctx context.Context, workspaceId, actorId, threadId, body string) (models.ThreadMessage, error) {
	if err := validateThreadAction(workspaceId, actorId, threadId); err != nil {
		return models.ThreadMessage{}, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return models.ThreadMessage{}, models.InvalidInput("body", "is required")
	}

	message, err := inbox_workspace.MutateReturn(ctx, usecase.coordinator, workspaceId,
		func(ctx context.Context) (models.ThreadMessage, error) {
			return usecase.threadRepository.PostMessage(ctx, threadId, actorId, body)
		})
	if err != nil {
		return models.ThreadMessage{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsThreadReplied, map[string]any{
		"workspace_id": workspaceId,
		"thread_id":    threadId,
	})
	return message, nil
}

// CreateThread creates the thread, then posts the initial message when there is one. These are
// two separate calls: when the second one fails, the created thread is returned along with the
// error, and the message can be sent again with Reply.
func (usecase ThreadUsecase) CreateThread(ctx context.Context, workspaceId, actorId string,
	input models.CreateThreadInput,
) (models.Thread, error) {
	if err := validateAction(workspaceId, actorId); err != nil {
		return models.Thread{}, err
	}

	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return models.Thread{}, models.InvalidInput("subject", "is required")
	}
	participantIds := pure_utils.SplitAndTrim(input.ParticipantIds...)
	if len(participantIds) == 0 {
		return models.Thread{}, models.InvalidInput("participant_ids", "must contain at least one participant")
	}
	channelType := input.ChannelType
	if channelType == "" {
		channelType = models.ChannelDirect
	}
	if !channelType.IsValid() {
		return models.Thread{}, models.InvalidInput("channel_type", "must be direct, project, support or talent")
	}
	initialMessage := strings.TrimSpace(input.InitialMessage)

	var messageErr error
	thread, err := inbox_workspace.MutateReturn(ctx, usecase.coordinator, workspaceId,
		func(ctx context.Context) (models.Thread, error) {
			thread, err := usecase.threadRepository.CreateThread(ctx, workspaceId, models.CreateThreadInput{
				Subject:        subject,
				ChannelType:    channelType,
				ParticipantIds: participantIds,
			})
			if err != nil {
				return models.Thread{}, err
			}

			if initialMessage != "" {
				if _, err := usecase.threadRepository.PostMessage(ctx, thread.Id, actorId, initialMessage); err != nil {
					messageErr = errors.Wrapf(err, "thread %s was created without its initial message", thread.Id)
				}
			}
			return thread, nil
		})
	if err != nil {
		return models.Thread{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsThreadCreated, map[string]any{
		"workspace_id": workspaceId,
		"thread_id":    thread.Id,
		"channel_type": string(channelType),
	})
	return thread, messageErr
}
