package usecases

import (
	"time"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/repositories"
	"github.com/freelancehub/agency-inbox/usecases/inbox_workspace"
	"github.com/freelancehub/agency-inbox/usecases/resource_cache"
	"github.com/freelancehub/agency-inbox/utils"
)

type Usecases struct {
	Repositories repositories.Repositories
	appName      string
	apiVersion   string
	workspaces   inbox_workspace.Workspaces
	coordinator  inbox_workspace.Coordinator
}

type Option func(*options)

func WithAppName(appName string) Option {
	return func(o *options) {
		o.appName = appName
	}
}

func WithApiVersion(apiVersion string) Option {
	return func(o *options) {
		o.apiVersion = apiVersion
	}
}

func WithInboxCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.inboxCacheTTL = ttl
		}
	}
}

func WithInboxCacheMaxKeys(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.inboxCacheMaxKeys = n
		}
	}
}

type options struct {
	appName           string
	apiVersion        string
	inboxCacheTTL     time.Duration
	inboxCacheMaxKeys int
}

func newUsecasesWithOptions(repositories repositories.Repositories, o *options) Usecases {
	store := resource_cache.NewStore[models.WorkspaceInbox](
		resource_cache.WithName("inbox_workspace"),
		resource_cache.WithTTL(o.inboxCacheTTL),
		resource_cache.WithMaxKeys(o.inboxCacheMaxKeys),
		resource_cache.WithClock(repositories.Clock),
	)
	workspaces := inbox_workspace.NewWorkspaces(store,
		inbox_workspace.NewWorkspaceReader(repositories.InboxWorkspaceRepository, repositories.Clock))

	return Usecases{
		Repositories: repositories,
		appName:      o.appName,
		apiVersion:   o.apiVersion,
		workspaces:   workspaces,
		coordinator:  inbox_workspace.NewCoordinator(workspaces),
	}
}

// NewUsecases builds the usecases around a single inbox workspace cache, shared by every reader
// and every action.
func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{
		inboxCacheTTL:     utils.InboxWorkspaceCacheDuration(),
		inboxCacheMaxKeys: utils.InboxWorkspaceCacheMaxKeys(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return newUsecasesWithOptions(repositories, o)
}

func (usecases Usecases) AppName() string {
	return usecases.appName
}

func (usecases Usecases) ApiVersion() string {
	return usecases.apiVersion
}

func (usecases Usecases) NewInboxWorkspaceUsecase() InboxWorkspaceUsecase {
	return InboxWorkspaceUsecase{
		workspaces:  usecases.workspaces,
		repository:  usecases.Repositories.InboxWorkspaceRepository,
		coordinator: usecases.coordinator,
	}
}

func (usecases Usecases) NewThreadUsecase() ThreadUsecase {
	return ThreadUsecase{
		threadRepository: usecases.Repositories.ThreadRepository,
		workspaces:       usecases.workspaces,
		coordinator:      usecases.coordinator,
	}
}

func (usecases Usecases) NewSavedRepliesUsecase() SavedRepliesUsecase {
	return SavedRepliesUsecase{
		savedReplyRepository: usecases.Repositories.SavedReplyRepository,
		workspaces:           usecases.workspaces,
		coordinator:          usecases.coordinator,
	}
}

func (usecases Usecases) NewRoutingRulesUsecase() RoutingRulesUsecase {
	return RoutingRulesUsecase{
		routingRuleRepository: usecases.Repositories.RoutingRuleRepository,
		workspaces:            usecases.workspaces,
		coordinator:           usecases.coordinator,
	}
}

func (usecases Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		collaborator: usecases.Repositories.CollaboratorClient,
	}
}
