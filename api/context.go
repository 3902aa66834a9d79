package api

import (
	"context"

	"github.com/freelancehub/agency-inbox/utils"
)

// actorIdFromContext returns the actor forwarded by the gateway, or an empty string. The
// usecases reject mutations without an actor.
func actorIdFromContext(ctx context.Context) string {
	actorId, _ := utils.ActorIdFromContext(ctx)
	return actorId
}
