package infra

import "time"

// CollaboratorConfig locates the persistence service that owns the inbox data.
type CollaboratorConfig struct {
	ApiUrl string
	ApiKey string
	// Requests per second sent to the collaborator. Zero disables client side limiting.
	RateLimit int
	Timeout   time.Duration
}

type TelemetryConfiguration struct {
	Enabled         bool
	ApplicationName string
}
