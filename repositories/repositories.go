package repositories

import (
	"github.com/freelancehub/agency-inbox/infra"
	"github.com/freelancehub/agency-inbox/repositories/clock"
)

type Repositories struct {
	CollaboratorClient       *CollaboratorClient
	InboxWorkspaceRepository InboxWorkspaceRepository
	ThreadRepository         ThreadRepository
	SavedReplyRepository     SavedReplyRepository
	RoutingRuleRepository    RoutingRuleRepository
	Clock                    clock.Clock
}

type Option func(*options)

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

type options struct {
	clock clock.Clock
}

func NewRepositories(collaborator infra.CollaboratorConfig, opts ...Option) Repositories {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = clock.New()
	}

	client := NewCollaboratorClient(collaborator)

	return Repositories{
		CollaboratorClient:       client,
		InboxWorkspaceRepository: InboxWorkspaceRepository{client: client},
		ThreadRepository:         ThreadRepository{client: client},
		SavedReplyRepository:     SavedReplyRepository{client: client},
		RoutingRuleRepository:    RoutingRuleRepository{client: client},
		Clock:                    o.clock,
	}
}
