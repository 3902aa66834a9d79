package usecases

import (
	"time"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/repositories/clock"
	"github.com/freelancehub/agency-inbox/usecases/inbox_workspace"
	"github.com/freelancehub/agency-inbox/usecases/resource_cache"
)

const testCacheTTL = 45 * time.Second

func clockAt(now time.Time) *clock.Mock {
	return clock.NewMock(now)
}

// newTestWorkspaces wires a real cache in front of the given repository.
func newTestWorkspaces(repository inbox_workspace.InboxWorkspaceRepository, c clock.Clock) inbox_workspace.Workspaces {
	store := resource_cache.NewStore[models.WorkspaceInbox](
		resource_cache.WithName("test_inbox_workspace"),
		resource_cache.WithTTL(testCacheTTL),
		resource_cache.WithClock(c),
	)
	return inbox_workspace.NewWorkspaces(store, inbox_workspace.NewWorkspaceReader(repository, c))
}
