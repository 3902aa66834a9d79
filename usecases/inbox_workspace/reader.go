package inbox_workspace

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/repositories/clock"
	"github.com/freelancehub/agency-inbox/repositories/httpmodels"
	"github.com/freelancehub/agency-inbox/utils"
	"github.com/mohae/deepcopy"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type InboxWorkspaceRepository interface {
	GetInboxWorkspace(ctx context.Context, workspaceId string) (models.WorkspaceInbox, error)
}

// defaultWorkspaceInbox is never handed out directly, only deep copies of it.
var defaultWorkspaceInbox = httpmodels.AdaptWorkspaceInbox(httpmodels.DefaultHTTPWorkspaceInbox())

// DefaultWorkspaceInbox returns the aggregate of a workspace that has no inbox data yet.
func DefaultWorkspaceInbox(workspaceId string) models.WorkspaceInbox {
	inbox := deepcopy.Copy(defaultWorkspaceInbox).(models.WorkspaceInbox)
	inbox.WorkspaceId = workspaceId
	return inbox
}

type WorkspaceReader struct {
	repository InboxWorkspaceRepository
	clock      clock.Clock
}

func NewWorkspaceReader(repository InboxWorkspaceRepository, c clock.Clock) WorkspaceReader {
	return WorkspaceReader{
		repository: repository,
		clock:      c,
	}
}

// FetchWorkspace reads and normalizes the inbox aggregate of a workspace. It never returns a
// partially filled aggregate: on failure, the default aggregate is returned along with an error
// marked models.ErrFetchFailed, and the caller decides what to show.
func (r WorkspaceReader) FetchWorkspace(ctx context.Context, workspaceId string) (models.WorkspaceInbox, error) {
	if workspaceId == "" {
		return DefaultWorkspaceInbox(""), nil
	}

	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(
		ctx,
		"WorkspaceReader.FetchWorkspace",
		trace.WithAttributes(attribute.String("workspace_id", workspaceId)))
	defer span.End()

	logger := utils.LoggerFromContext(ctx).With("workspace_id", workspaceId)

	inbox, err := r.repository.GetInboxWorkspace(ctx, workspaceId)
	switch {
	case err == nil:
	case models.IsCancellation(err):
		return DefaultWorkspaceInbox(workspaceId), errors.Mark(err, models.ErrCancelled)
	case errors.Is(err, models.NotFoundError):
		logger.DebugContext(ctx, "no inbox data for workspace yet, serving the default aggregate")
		inbox = DefaultWorkspaceInbox(workspaceId)
	default:
		logger.WarnContext(ctx, "could not fetch inbox workspace", "error", err.Error())
		return DefaultWorkspaceInbox(workspaceId), errors.Mark(
			errors.Wrap(err, "could not fetch inbox workspace"),
			models.ErrFetchFailed)
	}

	return Normalize(inbox, workspaceId, r.clock.Now()), nil
}

// Normalize enforces the aggregate invariants: every collection is non-nil, archived threads are
// never unread, and the sync time is set.
func Normalize(inbox models.WorkspaceInbox, workspaceId string, syncedAt time.Time) models.WorkspaceInbox {
	if inbox.WorkspaceId == "" {
		inbox.WorkspaceId = workspaceId
	}

	inbox.SavedReplies = nonNil(inbox.SavedReplies)
	inbox.RoutingRules = nonNil(inbox.RoutingRules)
	inbox.SupportCases = nonNil(inbox.SupportCases)
	inbox.ParticipantDirectory = nonNil(inbox.ParticipantDirectory)
	inbox.Preferences.EscalationKeywords = nonNil(inbox.Preferences.EscalationKeywords)

	if inbox.Automations.EscalationMatrix == nil {
		inbox.Automations.EscalationMatrix = map[string]any{}
	}
	if inbox.Automations.Routing == nil {
		inbox.Automations.Routing = map[string]any{}
	}
	if inbox.Automations.TalentAlerts == nil {
		inbox.Automations.TalentAlerts = map[string]any{}
	}

	threads := make([]models.Thread, len(inbox.ActiveThreads))
	for i, thread := range inbox.ActiveThreads {
		if thread.State == models.ThreadArchived {
			thread.Unread = false
		}
		thread.Participants = nonNil(thread.Participants)
		threads[i] = thread
	}
	inbox.ActiveThreads = threads

	rules := make([]models.RoutingRule, len(inbox.RoutingRules))
	for i, rule := range inbox.RoutingRules {
		rule.Channels = nonNil(rule.Channels)
		rules[i] = rule
	}
	inbox.RoutingRules = rules

	inbox.LastSyncedAt = syncedAt
	return inbox
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
