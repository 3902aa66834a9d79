package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freelancehub/agency-inbox/dto"
	"github.com/freelancehub/agency-inbox/usecases"
)

func handleCreateRoutingRule(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")

		var body dto.RoutingRuleBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewRoutingRulesUsecase()
		rule, err := usecase.CreateRule(ctx, workspaceId, actorIdFromContext(ctx), dto.AdaptRoutingRuleInput(body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"routing_rule": dto.AdaptRoutingRuleDto(rule)})
	}
}

func handleUpdateRoutingRule(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		ruleId := c.Param("routing_rule_id")

		var body dto.RoutingRuleBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewRoutingRulesUsecase()
		rule, err := usecase.UpdateRule(ctx, workspaceId, actorIdFromContext(ctx), ruleId, dto.AdaptRoutingRuleInput(body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"routing_rule": dto.AdaptRoutingRuleDto(rule)})
	}
}

func handleDeleteRoutingRule(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		ruleId := c.Param("routing_rule_id")

		usecase := uc.NewRoutingRulesUsecase()
		if err := usecase.DeleteRule(ctx, workspaceId, actorIdFromContext(ctx), ruleId); presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleRouteThread(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		threadId := c.Param("thread_id")

		usecase := uc.NewRoutingRulesUsecase()
		rule, routed, err := usecase.RouteThread(ctx, workspaceId, threadId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptRouteThreadResponse(threadId, rule, routed))
	}
}
