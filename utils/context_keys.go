package utils

type ContextKey int

const (
	ContextKeyActor ContextKey = iota
	ContextKeyLogger
	ContextKeySegmentClient
	ContextKeyOpenTelemetryTracer
)
