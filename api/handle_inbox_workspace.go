package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freelancehub/agency-inbox/dto"
	"github.com/freelancehub/agency-inbox/pure_utils"
	"github.com/freelancehub/agency-inbox/usecases"
	"github.com/freelancehub/agency-inbox/utils"
)

type inboxWorkspaceQuery struct {
	Refresh          bool   `form:"refresh"`
	SelectedThreadId string `form:"selected_thread_id"`
}

func workspaceETag(fingerprint uint64) string {
	return fmt.Sprintf(`W/"%s"`, strconv.FormatUint(fingerprint, 16))
}

func handleGetInboxWorkspace(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")

		var query inboxWorkspaceQuery
		if err := c.ShouldBindQuery(&query); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewInboxWorkspaceUsecase()
		view, err := usecase.GetWorkspace(ctx, workspaceId, query.Refresh, query.SelectedThreadId)
		if presentError(ctx, c, err) {
			return
		}

		errorMessage := ""
		if view.FetchError != nil {
			_, response := adaptError(view.FetchError)
			errorMessage = response.Message
			utils.LoggerFromContext(ctx).WarnContext(ctx, "serving inbox workspace without a fresh fetch",
				"workspace_id", workspaceId, "error", view.FetchError.Error())
		}

		fingerprint, err := view.Workspace.Fingerprint()
		if err == nil && view.FetchError == nil {
			etag := workspaceETag(fingerprint)
			c.Header("ETag", etag)
			if c.GetHeader("If-None-Match") == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"inbox": dto.AdaptInboxWorkspaceViewDto(view, errorMessage)})
	}
}

func handleGetInboxTriage(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")

		usecase := uc.NewInboxWorkspaceUsecase()
		triage, err := usecase.Triage(ctx, workspaceId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"triage": pure_utils.Map(triage, dto.AdaptThreadTriageDto)})
	}
}

func handlePatchInboxPreferences(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")

		var input dto.UpdatePreferencesInput
		if err := c.ShouldBindJSON(&input); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewInboxWorkspaceUsecase()
		preferences, err := usecase.UpdatePreferences(ctx, workspaceId, actorIdFromContext(ctx),
			dto.AdaptPreferencesPatch(input))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"preferences": dto.AdaptInboxPreferencesDto(preferences)})
	}
}

func handlePutInboxAutomations(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")

		var input dto.InboxAutomationsDto
		if err := c.ShouldBindJSON(&input); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewInboxWorkspaceUsecase()
		automations := dto.AdaptInboxAutomations(input)
		if err := usecase.SaveAutomations(ctx, workspaceId, actorIdFromContext(ctx), automations); presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"automations": dto.AdaptInboxAutomationsDto(automations)})
	}
}
