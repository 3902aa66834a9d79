package utils

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/analytics-go/v3"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// The actor is resolved by the session gateway in front of this service and forwarded as an
// opaque identifier. This service never authenticates it.
const ActorIdHeader = "X-Actor-Id"

func ActorIdFromContext(ctx context.Context) (string, bool) {
	actorId, found := ctx.Value(ContextKeyActor).(string)
	return actorId, found && actorId != ""
}

func StoreActorIdInContext(ctx context.Context, actorId string) context.Context {
	return context.WithValue(ctx, ContextKeyActor, actorId)
}

func StoreActorIdInContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorId := strings.TrimSpace(c.GetHeader(ActorIdHeader))
		if actorId != "" {
			ctx := StoreActorIdInContext(c.Request.Context(), actorId)
			logger := LoggerFromContext(ctx).With(slog.String("actor_id", actorId))
			ctx = StoreLoggerInContext(ctx, logger)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, found := ctx.Value(ContextKeyLogger).(*slog.Logger)
	if !found {
		return slog.Default()
	}
	return logger
}

func StoreLoggerInContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, logger)
}

func StoreLoggerInContextMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctxWithLogger := StoreLoggerInContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctxWithLogger)
		c.Next()
	}
}

func SegmentClientFromContext(ctx context.Context) (analytics.Client, bool) {
	client, found := ctx.Value(ContextKeySegmentClient).(analytics.Client)
	return client, found
}

func StoreSegmentClientInContext(ctx context.Context, client analytics.Client) context.Context {
	return context.WithValue(ctx, ContextKeySegmentClient, client)
}

func StoreSegmentClientInContextMiddleware(client analytics.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(StoreSegmentClientInContext(c.Request.Context(), client))
		c.Next()
	}
}

// OpenTelemetryTracerFromContext falls back to a noop tracer, so spans can always be started.
func OpenTelemetryTracerFromContext(ctx context.Context) trace.Tracer {
	tracer, found := ctx.Value(ContextKeyOpenTelemetryTracer).(trace.Tracer)
	if !found {
		return noop.NewTracerProvider().Tracer("")
	}
	return tracer
}

func StoreOpenTelemetryTracerInContext(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, ContextKeyOpenTelemetryTracer, tracer)
}

func StoreOpenTelemetryTracerInContextMiddleware(tracer trace.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(StoreOpenTelemetryTracerInContext(c.Request.Context(), tracer))
		c.Next()
	}
}
