package api

import (
	"github.com/segmentio/analytics-go/v3"
)

type dependencies struct {
	SegmentClient analytics.Client
}

// InitDependencies builds the clients shared by the request middlewares. Product analytics are
// disabled when no segment write key is configured.
func InitDependencies(conf Configuration) dependencies {
	var segmentClient analytics.Client
	if conf.SegmentWriteKey != "" {
		segmentClient = analytics.New(conf.SegmentWriteKey)
	}

	return dependencies{
		SegmentClient: segmentClient,
	}
}

func (deps dependencies) Close() {
	if deps.SegmentClient != nil {
		_ = deps.SegmentClient.Close()
	}
}
