package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/usecases/analytics"
	"github.com/freelancehub/agency-inbox/usecases/inbox_workspace"
)

type SavedReplyRepository interface {
	CreateSavedReply(ctx context.Context, workspaceId string, input models.SavedReplyInput) (models.SavedReply, error)
	UpdateSavedReply(ctx context.Context, workspaceId, replyId string, input models.SavedReplyInput) (models.SavedReply, error)
	DeleteSavedReply(ctx context.Context, workspaceId, replyId string) error
}

type SavedRepliesUsecase struct {
	savedReplyRepository SavedReplyRepository
	workspaces           WorkspaceSource
	coordinator          inbox_workspace.Coordinator
}

func validateSavedReplyInput(input models.SavedReplyInput) (models.SavedReplyInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Body = strings.TrimSpace(input.Body)
	input.Shortcut = strings.TrimSpace(input.Shortcut)

	if input.Title == "" {
		return input, models.InvalidInput("title", "is required")
	}
	if input.Body == "" {
		return input, models.InvalidInput("body", "is required")
	}
	if input.Category == "" {
		input.Category = models.SavedReplyGeneral
	}
	if !input.Category.IsValid() {
		return input, models.InvalidInput("category", "must be general, sales, support or talent")
	}
	return input, nil
}

func (usecase SavedRepliesUsecase) CreateSavedReply(ctx context.Context, workspaceId, actorId string,
	input models.SavedReplyInput,
) (models.SavedReply, error) {
	if err := validateAction(workspaceId, actorId); err != nil {
		return models.SavedReply{}, err
	}
	input, err := validateSavedReplyInput(input)
	if err != nil {
		return models.SavedReply{}, err
	}

	reply, err := inbox_workspace.MutateReturn(ctx, usecase.coordinator, workspaceId,
		func(ctx context.Context) (models.SavedReply, error) {
			return usecase.savedReplyRepository.CreateSavedReply(ctx, workspaceId, input)
		})
	if err != nil {
		return models.SavedReply{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsSavedReplyCreated, map[string]any{
		"workspace_id":   workspaceId,
		"saved_reply_id": reply.Id,
		"category":       string(reply.Category),
	})
	return reply, nil
}

func (usecase SavedRepliesUsecase) UpdateSavedReply(ctx context.Context, workspaceId, actorId, replyId string,
	input models.SavedReplyInput,
) (models.SavedReply, error) {
	if err := validateAction(workspaceId, actorId); err != nil {
		return models.SavedReply{}, err
	}
	if strings.TrimSpace(replyId) == "" {
		return models.SavedReply{}, models.InvalidInput("saved_reply_id", "is required")
	}
	input, err := validateSavedReplyInput(input)
	if err != nil {
		return models.SavedReply{}, err
	}

	reply, err := inbox_workspace.MutateReturn(ctx, usecase.coordinator, workspaceId,
		func(ctx context.Context) (models.SavedReply, error) {
			return usecase.savedReplyRepository.UpdateSavedReply(ctx, workspaceId, replyId, input)
		})
	if err != nil {
		return models.SavedReply{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsSavedReplyUpdated, map[string]any{
		"workspace_id":   workspaceId,
		"saved_reply_id": reply.Id,
	})
	return reply, nil
}

// DeleteSavedReply refuses to delete the default reply of the workspace: the preferences would
// be left pointing to a reply that does not exist. The default must be changed first.
func (usecase SavedRepliesUsecase) DeleteSavedReply(ctx context.Context, workspaceId, actorId, replyId string) error {
	if err := validateAction(workspaceId, actorId); err != nil {
		return err
	}
	if strings.TrimSpace(replyId) == "" {
		return models.InvalidInput("saved_reply_id", "is required")
	}

	workspace, err := usecase.workspaces.Current(ctx, workspaceId)
	if err != nil {
		return err
	}
	reply, found := workspace.FindSavedReply(replyId)
	if workspace.Preferences.DefaultSavedReplyId == replyId || (found && reply.IsDefault) {
		return errors.Wrapf(models.ConflictError,
			"saved reply %s is the default reply of the workspace, choose another default before deleting it", replyId)
	}

	err = usecase.coordinator.Mutate(ctx, workspaceId, func(ctx context.Context) error {
		return usecase.savedReplyRepository.DeleteSavedReply(ctx, workspaceId, replyId)
	})
	if err != nil {
		return err
	}

	analytics.TrackEvent(ctx, models.AnalyticsSavedReplyDeleted, map[string]any{
		"workspace_id":   workspaceId,
		"saved_reply_id": replyId,
	})
	return nil
}
