package api

import (
	"time"
)

type Configuration struct {
	Env                 string
	AppName             string
	AppVersion          string
	Port                string
	AppUrl              string
	RequestLoggingLevel string
	SegmentWriteKey     string
	DefaultTimeout      time.Duration
}
