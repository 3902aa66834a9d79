package usecases

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/freelancehub/agency-inbox/models"
)

// validateAction checks what every mutating action needs before any call is made: an actor
// identity and the workspace owning the cached aggregate.
func validateAction(workspaceId, actorId string) error {
	if strings.TrimSpace(actorId) == "" {
		return errors.WithStack(models.ErrUnresolvedActor)
	}
	if strings.TrimSpace(workspaceId) == "" {
		return models.InvalidInput("workspace_id", "is required")
	}
	return nil
}

func validateThreadAction(workspaceId, actorId, threadId string) error {
	if err := validateAction(workspaceId, actorId); err != nil {
		return err
	}
	if strings.TrimSpace(threadId) == "" {
		return models.InvalidInput("thread_id", "is required")
	}
	return nil
}
