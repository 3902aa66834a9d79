package cmd

import (
	"net/url"

	"github.com/cockroachdb/errors"
)

// CompiledConfig holds the values set at build time with -ldflags.
type CompiledConfig struct {
	Version         string
	SegmentWriteKey string
}

type ServerConfig struct {
	loggingFormat      string
	sentryDsn          string
	enableTracing      bool
	collaboratorApiUrl string
	collaboratorApiKey string
	collaboratorRate   int
	inboxCacheMaxKeys  int
}

func (config ServerConfig) Validate() error {
	parsed, err := url.Parse(config.collaboratorApiUrl)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.Newf("COLLABORATOR_API_URL must be an absolute url, got %q", config.collaboratorApiUrl)
	}
	if config.collaboratorRate < 0 {
		return errors.New("COLLABORATOR_RATE_LIMIT must not be negative")
	}
	if config.inboxCacheMaxKeys < 0 {
		return errors.New("INBOX_CACHE_MAX_KEYS must not be negative")
	}
	return nil
}
