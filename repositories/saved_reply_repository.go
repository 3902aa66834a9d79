package repositories

import (
	"context"
	"net/http"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/repositories/httpmodels"
)

type SavedReplyRepository struct {
	client *CollaboratorClient
}

func (repo SavedReplyRepository) CreateSavedReply(ctx context.Context, workspaceId string,
	input models.SavedReplyInput,
) (models.SavedReply, error) {
	var created httpmodels.HTTPSavedReply
	err := repo.client.send(ctx, "create_saved_reply", http.MethodPost,
		workspacePath(workspaceId, "inbox", "saved-replies"),
		httpmodels.AdaptHTTPSavedReplyInput(input), &created)
	if err != nil {
		return models.SavedReply{}, err
	}
	return httpmodels.AdaptSavedReply(created), nil
}

func (repo SavedReplyRepository) UpdateSavedReply(ctx context.Context, workspaceId, replyId string,
	input models.SavedReplyInput,
) (models.SavedReply, error) {
	var updated httpmodels.HTTPSavedReply
	err := repo.client.send(ctx, "update_saved_reply", http.MethodPatch,
		workspacePath(workspaceId, "inbox", "saved-replies", replyId),
		httpmodels.AdaptHTTPSavedReplyInput(input), &updated)
	if err != nil {
		return models.SavedReply{}, err
	}

	reply := httpmodels.AdaptSavedReply(updated)
	if reply.Id == "" {
		reply.Id = replyId
	}
	return reply, nil
}

func (repo SavedReplyRepository) DeleteSavedReply(ctx context.Context, workspaceId, replyId string) error {
	return repo.client.send(ctx, "delete_saved_reply", http.MethodDelete,
		workspacePath(workspaceId, "inbox", "saved-replies", replyId), nil, nil)
}
