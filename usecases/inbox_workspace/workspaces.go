package inbox_workspace

import (
	"context"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/usecases/resource_cache"
)

// Workspaces serves inbox aggregates through the resource cache, one entry per workspace.
type Workspaces struct {
	store  *resource_cache.Store[models.WorkspaceInbox]
	reader WorkspaceReader
}

func NewWorkspaces(store *resource_cache.Store[models.WorkspaceInbox], reader WorkspaceReader) Workspaces {
	return Workspaces{
		store:  store,
		reader: reader,
	}
}

func (w Workspaces) fetcher(workspaceId string) resource_cache.Fetcher[models.WorkspaceInbox] {
	return func(ctx context.Context) (models.WorkspaceInbox, error) {
		return w.reader.FetchWorkspace(ctx, workspaceId)
	}
}

// Get returns the cached aggregate of the workspace, fetching it when stale. An empty workspace
// id is served the default aggregate without going through the cache.
func (w Workspaces) Get(ctx context.Context, workspaceId string) (resource_cache.Snapshot[models.WorkspaceInbox], error) {
	if workspaceId == "" {
		return resource_cache.Snapshot[models.WorkspaceInbox]{
			Data:    DefaultWorkspaceInbox(""),
			HasData: true,
		}, nil
	}
	return w.store.Get(ctx, models.InboxWorkspaceCacheKey(workspaceId), w.fetcher(workspaceId))
}

func (w Workspaces) Peek(workspaceId string) resource_cache.Snapshot[models.WorkspaceInbox] {
	if workspaceId == "" {
		return resource_cache.Snapshot[models.WorkspaceInbox]{
			Data:    DefaultWorkspaceInbox(""),
			HasData: true,
		}
	}
	return w.store.Peek(models.InboxWorkspaceCacheKey(workspaceId))
}

func (w Workspaces) Refresh(ctx context.Context, workspaceId string, force bool) error {
	if workspaceId == "" {
		return nil
	}
	return w.store.Refresh(ctx, models.InboxWorkspaceCacheKey(workspaceId), w.fetcher(workspaceId), force)
}

func (w Workspaces) Invalidate(workspaceId string) {
	w.store.Invalidate(models.InboxWorkspaceCacheKey(workspaceId))
}

// Current returns the aggregate to act upon: the cached one when any, the default otherwise.
// The fetch error, if any, is returned along with it.
func (w Workspaces) Current(ctx context.Context, workspaceId string) (models.WorkspaceInbox, error) {
	snapshot, err := w.Get(ctx, workspaceId)
	if err != nil {
		return DefaultWorkspaceInbox(workspaceId), err
	}
	if !snapshot.HasData {
		return DefaultWorkspaceInbox(workspaceId), snapshot.Err
	}
	return snapshot.Data, nil
}
