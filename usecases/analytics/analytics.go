package analytics

import (
	"context"

	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/utils"
	segment "github.com/segmentio/analytics-go/v3"
)

const anonymousActor = "anonymous"

// TrackEvent enqueues a product analytics event for the actor of the context. It does nothing
// when no analytics client is configured.
func TrackEvent(ctx context.Context, event models.AnalyticsEvent, properties map[string]any) {
	client, found := utils.SegmentClientFromContext(ctx)
	if !found || client == nil {
		return
	}

	props := segment.NewProperties()
	for key, value := range properties {
		props.Set(key, value)
	}

	track := segment.Track{
		Event:      string(event),
		Properties: props,
	}
	if actorId, ok := utils.ActorIdFromContext(ctx); ok {
		track.UserId = actorId
	} else {
		track.AnonymousId = anonymousActor
	}

	if err := client.Enqueue(track); err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "could not enqueue analytics event",
			"event", string(event),
			"error", err.Error())
	}
}
