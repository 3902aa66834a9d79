package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
	"github.com/freelancehub/agency-inbox/usecases/analytics"
	"github.com/freelancehub/agency-inbox/usecases/inbox_workspace"
	"github.com/freelancehub/agency-inbox/usecases/resource_cache"
	"github.com/freelancehub/agency-inbox/utils"
	"github.com/hashicorp/go-set/v2"
)

// WorkspaceSource gives access to the cached inbox aggregates.
type WorkspaceSource interface {
	Get(ctx context.Context, workspaceId string) (resource_cache.Snapshot[models.WorkspaceInbox], error)
	Peek(workspaceId string) resource_cache.Snapshot[models.WorkspaceInbox]
	Refresh(ctx context.Context, workspaceId string, force bool) error
	Current(ctx context.Context, workspaceId string) (models.WorkspaceInbox, error)
}

type InboxWorkspaceWriter interface {
	UpdatePreferences(ctx context.Context, workspaceId string, preferences models.InboxPreferences) error
	SaveAutomations(ctx context.Context, workspaceId string, automations models.InboxAutomations) error
}

type InboxWorkspaceUsecase struct {
	workspaces  WorkspaceSource
	repository  InboxWorkspaceWriter
	coordinator inbox_workspace.Coordinator
}

// GetWorkspace returns the aggregate of the workspace along with the state of its cache entry.
// When the aggregate could never be fetched, the default one is served and the fetch error is
// reported in the view rather than returned.
func (usecase InboxWorkspaceUsecase) GetWorkspace(ctx context.Context, workspaceId string,
	forceRefresh bool, selectedThreadId string,
) (models.InboxWorkspaceView, error) {
	var snapshot resource_cache.Snapshot[models.WorkspaceInbox]
	if forceRefresh {
		err := usecase.workspaces.Refresh(ctx, workspaceId, true)
		if err != nil && models.IsCancellation(err) {
			return models.InboxWorkspaceView{}, err
		}
		// a failed refresh is reported through the entry, with the last known aggregate
		snapshot = usecase.workspaces.Peek(workspaceId)
		snapshot.FromCache = err != nil && snapshot.HasData
	} else {
		var err error
		snapshot, err = usecase.workspaces.Get(ctx, workspaceId)
		if err != nil {
			return models.InboxWorkspaceView{}, err
		}
	}

	workspace := snapshot.Data
	if !snapshot.HasData {
		workspace = inbox_workspace.DefaultWorkspaceInbox(workspaceId)
	}
	if snapshot.Err != nil {
		utils.LoggerFromContext(ctx).DebugContext(ctx, "serving inbox workspace despite fetch error",
			"workspace_id", workspaceId,
			"has_data", snapshot.HasData)
	}

	return models.InboxWorkspaceView{
		Workspace:        workspace,
		FromCache:        snapshot.FromCache,
		Loading:          snapshot.Loading,
		LastUpdated:      snapshot.LastUpdated,
		FetchError:       snapshot.Err,
		SelectedThreadId: inbox_workspace.SelectThread(workspace.ActiveThreads, selectedThreadId),
	}, nil
}

func (usecase InboxWorkspaceUsecase) GetThread(ctx context.Context, workspaceId, threadId string) (models.Thread, error) {
	workspace, err := usecase.workspaces.Current(ctx, workspaceId)
	if err != nil {
		return models.Thread{}, err
	}
	thread, ok := workspace.FindThread(threadId)
	if !ok {
		return models.Thread{}, errors.Wrapf(models.NotFoundError, "thread %s is not in the inbox of workspace %s",
			threadId, workspaceId)
	}
	return thread, nil
}

func (usecase InboxWorkspaceUsecase) Triage(ctx context.Context, workspaceId string) ([]models.ThreadTriage, error) {
	workspace, err := usecase.workspaces.Current(ctx, workspaceId)
	if err != nil {
		return nil, err
	}
	return inbox_workspace.Triage(workspace), nil
}

// UpdatePreferences applies patch onto the current preferences and writes the result as a whole.
func (usecase InboxWorkspaceUsecase) UpdatePreferences(ctx context.Context, workspaceId, actorId string,
	patch models.PreferencesPatch,
) (models.InboxPreferences, error) {
	if err := validateAction(workspaceId, actorId); err != nil {
		return models.InboxPreferences{}, err
	}
	if patch.Timezone != nil {
		timezone := strings.TrimSpace(*patch.Timezone)
		if timezone == "" {
			return models.InboxPreferences{}, models.InvalidInput("timezone", "cannot be empty")
		}
		patch.Timezone = &timezone
	}
	if patch.EscalationKeywords != nil {
		keywords := cleanKeywords(*patch.EscalationKeywords)
		patch.EscalationKeywords = &keywords
	}

	current, err := usecase.workspaces.Current(ctx, workspaceId)
	if err != nil {
		return models.InboxPreferences{}, err
	}
	if patch.DefaultSavedReplyId != nil && *patch.DefaultSavedReplyId != "" {
		if _, ok := current.FindSavedReply(*patch.DefaultSavedReplyId); !ok {
			return models.InboxPreferences{}, models.InvalidInput("default_saved_reply_id", "is not a saved reply of the workspace")
		}
	}

	next := patch.Apply(current.Preferences)
	err = usecase.coordinator.Mutate(ctx, workspaceId, func(ctx context.Context) error {
		return usecase.repository.UpdatePreferences(ctx, workspaceId, next)
	})
	if err != nil {
		return models.InboxPreferences{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsInboxPreferencesSaved, map[string]any{"workspace_id": workspaceId})
	return next, nil
}

// SaveAutomations replaces the automations of the workspace.
func (usecase InboxWorkspaceUsecase) SaveAutomations(ctx context.Context, workspaceId, actorId string,
	automations models.InboxAutomations,
) error {
	if err := validateAction(workspaceId, actorId); err != nil {
		return err
	}
	if automations.EscalationMatrix == nil {
		automations.EscalationMatrix = map[string]any{}
	}
	if automations.Routing == nil {
		automations.Routing = map[string]any{}
	}
	if automations.TalentAlerts == nil {
		automations.TalentAlerts = map[string]any{}
	}

	err := usecase.coordinator.Mutate(ctx, workspaceId, func(ctx context.Context) error {
		return usecase.repository.SaveAutomations(ctx, workspaceId, automations)
	})
	if err != nil {
		return err
	}

	analytics.TrackEvent(ctx, models.AnalyticsInboxAutomationsSaved, map[string]any{"workspace_id": workspaceId})
	return nil
}

// cleanKeywords trims the keywords and drops the empty ones and the caseless duplicates.
func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := set.New[string](len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" || !seen.Insert(pure_utils.FoldCase(k)) {
			continue
		}
		out = append(out, k)
	}
	return out
}
