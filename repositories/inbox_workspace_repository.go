package repositories

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/repositories/httpmodels"
)

type InboxWorkspaceRepository struct {
	client *CollaboratorClient
}

func workspacePath(workspaceId string, segments ...string) string {
	path := fmt.Sprintf("/workspaces/%s", url.PathEscape(workspaceId))
	for _, s := range segments {
		path += "/" + url.PathEscape(s)
	}
	return path
}

// GetInboxWorkspace reads the inbox aggregate of a workspace. The response is completed with the
// default aggregate: collections missing from the response are empty, never nil.
func (repo InboxWorkspaceRepository) GetInboxWorkspace(ctx context.Context, workspaceId string) (models.WorkspaceInbox, error) {
	body, err := repo.client.get(ctx, "get_inbox_workspace", workspacePath(workspaceId, "inbox"))
	if err != nil {
		return models.WorkspaceInbox{}, err
	}

	merged, err := httpmodels.MergeWorkspaceInbox(body)
	if err != nil {
		return models.WorkspaceInbox{}, errors.Mark(err, models.ErrFetchFailed)
	}

	inbox := httpmodels.AdaptWorkspaceInbox(merged)
	if inbox.WorkspaceId == "" {
		inbox.WorkspaceId = workspaceId
	}
	return inbox, nil
}

func (repo InboxWorkspaceRepository) UpdatePreferences(ctx context.Context, workspaceId string,
	preferences models.InboxPreferences,
) error {
	return repo.client.send(ctx, "update_inbox_preferences", http.MethodPut,
		workspacePath(workspaceId, "inbox", "preferences"),
		httpmodels.AdaptHTTPInboxPreferences(preferences), nil)
}

func (repo InboxWorkspaceRepository) SaveAutomations(ctx context.Context, workspaceId string,
	automations models.InboxAutomations,
) error {
	return repo.client.send(ctx, "save_inbox_automations", http.MethodPut,
		workspacePath(workspaceId, "inbox", "automations"),
		httpmodels.AdaptHTTPInboxAutomations(automations), nil)
}
