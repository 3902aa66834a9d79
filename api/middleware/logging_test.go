package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freelancehub/agency-inbox/utils"
)

func newLoggedRouter(buf *bytes.Buffer, options ...LoggerOption) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := gin.New()
	r.Use(NewLogging(logger, options...))
	r.GET("/liveness", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/workspaces/:workspace_id/inbox", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/workspaces/:workspace_id/inbox/threads", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})
	return r
}

func TestLoggingAttributes(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf, WithDefaultLevel("debug"))

	req := httptest.NewRequest(http.MethodGet, "/workspaces/ws-1/inbox", nil)
	req.Header.Set(utils.ActorIdHeader, "agent-ada")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "DEBUG", line["level"])
	assert.Equal(t, "/workspaces/:workspace_id/inbox", line["route"])
	assert.Equal(t, "ws-1", line["workspace_id"])
	assert.Equal(t, "agent-ada", line["actor_id"])
	assert.EqualValues(t, http.StatusOK, line["status"])
}

func TestLoggingClientErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/workspaces/ws-1/inbox/threads", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.NotContains(t, line, "actor_id")
}

func TestLoggingIgnoredPath(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf, WithIgnorePath([]string{"/liveness"}), WithDefaultLevel("not-a-level"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/liveness", nil))

	assert.Empty(t, buf.String())
}
