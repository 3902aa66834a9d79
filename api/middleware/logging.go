package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freelancehub/agency-inbox/utils"
)

type LoggerOption func(*requestLogger)

type requestLogger struct {
	logger       *slog.Logger
	ignored      map[string]bool
	successLevel slog.Level
}

// WithIgnorePath skips the requests to the given paths, such as probes.
func WithIgnorePath(paths []string) LoggerOption {
	return func(l *requestLogger) {
		for _, p := range paths {
			l.ignored[p] = true
		}
	}
}

// WithDefaultLevel sets the level of successful requests. Unknown levels keep info.
func WithDefaultLevel(level string) LoggerOption {
	return func(l *requestLogger) {
		var parsed slog.Level
		if level != "" && parsed.UnmarshalText([]byte(level)) == nil {
			l.successLevel = parsed
		}
	}
}

func (l *requestLogger) levelOf(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return l.successLevel
	}
}

// NewLogging logs one line per inbox request, with the workspace and the acting agent.
func NewLogging(logger *slog.Logger, options ...LoggerOption) gin.HandlerFunc {
	l := &requestLogger{
		logger:       logger,
		ignored:      map[string]bool{},
		successLevel: slog.LevelInfo,
	}
	for _, option := range options {
		option(l)
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if l.ignored[path] {
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.Int("status", status),
			slog.Int64("latency", time.Since(start).Milliseconds()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("data_length", max(c.Writer.Size(), 0)),
			slog.String("client_ip", c.ClientIP()),
		}
		if route := c.FullPath(); route != "" {
			attrs = append(attrs, slog.String("route", route))
		}
		if workspaceId := c.Param("workspace_id"); workspaceId != "" {
			attrs = append(attrs, slog.String("workspace_id", workspaceId))
		}
		if actorId := c.GetHeader(utils.ActorIdHeader); actorId != "" {
			attrs = append(attrs, slog.String("actor_id", actorId))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
		}
		l.logger.LogAttrs(c.Request.Context(), l.levelOf(status), c.Request.Method+" "+path, attrs...)
	}
}
