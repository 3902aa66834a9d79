package inbox_workspace

import (
	"context"

	"github.com/freelancehub/agency-inbox/utils"
)

type WorkspaceCache interface {
	Invalidate(workspaceId string)
	Refresh(ctx context.Context, workspaceId string, force bool) error
}

// Coordinator runs writes against the collaborator service and refreshes the cached aggregate
// of the workspace once each write succeeds. The aggregate is never patched locally.
type Coordinator struct {
	cache WorkspaceCache
}

func NewCoordinator(cache WorkspaceCache) Coordinator {
	return Coordinator{cache: cache}
}

// Mutate runs write. On success the workspace entry is invalidated and refreshed exactly once;
// on failure the write error is returned untouched and nothing is refreshed.
func (c Coordinator) Mutate(ctx context.Context, workspaceId string, write func(ctx context.Context) error) error {
	if err := write(ctx); err != nil {
		return err
	}
	c.refreshAfterWrite(ctx, workspaceId)
	return nil
}

// MutateReturn is Mutate for writes that return a value.
func MutateReturn[T any](ctx context.Context, c Coordinator, workspaceId string,
	write func(ctx context.Context) (T, error),
) (T, error) {
	var result T
	err := c.Mutate(ctx, workspaceId, func(ctx context.Context) error {
		var err error
		result, err = write(ctx)
		return err
	})
	return result, err
}

// The write is confirmed at this point: a failed refresh only leaves the entry stale, and the
// next read fetches it again.
func (c Coordinator) refreshAfterWrite(ctx context.Context, workspaceId string) {
	c.cache.Invalidate(workspaceId)
	if err := c.cache.Refresh(ctx, workspaceId, true); err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "could not refresh inbox workspace after write",
			"workspace_id", workspaceId,
			"error", err.Error())
	}
}
