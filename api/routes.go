package api

import (
	"net/http"
	"time"

	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	timeout "github.com/vearne/gin-timeout"

	"github.com/freelancehub/agency-inbox/usecases"
)

const (
	defaultRequestTimeout = 30 * time.Second
	maxMessageBodySize    = 1 << 20
)

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	if duration <= 0 {
		duration = defaultRequestTimeout
	}
	return timeout.Timeout(
		timeout.WithTimeout(duration),
		timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		timeout.WithDefaultMsg(`{"message":"request timeout","error_code":"cancelled"}`),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe(uc))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	inbox := r.Group("/workspaces/:workspace_id/inbox", timeoutMiddleware(conf.DefaultTimeout))

	inbox.GET("", handleGetInboxWorkspace(uc))
	inbox.GET("/triage", handleGetInboxTriage(uc))
	inbox.PATCH("/preferences", handlePatchInboxPreferences(uc))
	inbox.PUT("/automations", handlePutInboxAutomations(uc))

	inbox.POST("/saved-replies", handleCreateSavedReply(uc))
	inbox.PATCH("/saved-replies/:saved_reply_id", handleUpdateSavedReply(uc))
	inbox.DELETE("/saved-replies/:saved_reply_id", handleDeleteSavedReply(uc))

	inbox.POST("/routing-rules", handleCreateRoutingRule(uc))
	inbox.PATCH("/routing-rules/:routing_rule_id", handleUpdateRoutingRule(uc))
	inbox.DELETE("/routing-rules/:routing_rule_id", handleDeleteRoutingRule(uc))

	inbox.POST("/threads", limits.RequestSizeLimiter(maxMessageBodySize), handleCreateThread(uc))
	inbox.GET("/threads/:thread_id", handleGetThread(uc))
	inbox.GET("/threads/:thread_id/route", handleRouteThread(uc))
	inbox.POST("/threads/:thread_id/messages", limits.RequestSizeLimiter(maxMessageBodySize), handlePostThreadMessage(uc))
	inbox.POST("/threads/:thread_id/read", handleMarkThreadRead(uc))
	inbox.POST("/threads/:thread_id/state", handleSetThreadState(uc))
	inbox.POST("/threads/:thread_id/archive-toggle", handleToggleThreadArchive(uc))
	inbox.POST("/threads/:thread_id/escalate", handleEscalateThread(uc))
	inbox.POST("/threads/:thread_id/assign", handleAssignThread(uc))
}
