package utils

import (
	"testing"
	"time"
)

var (
	inboxWorkspaceCacheDuration = 45 * time.Second
	inboxWorkspaceCacheMaxKeys  = 1024
)

func InboxWorkspaceCacheDuration() time.Duration {
	if testing.Testing() {
		return time.Microsecond
	}

	return inboxWorkspaceCacheDuration
}

func InboxWorkspaceCacheMaxKeys() int {
	return inboxWorkspaceCacheMaxKeys
}
