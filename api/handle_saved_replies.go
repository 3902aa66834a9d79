package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freelancehub/agency-inbox/dto"
	"github.com/freelancehub/agency-inbox/usecases"
)

func handleCreateSavedReply(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")

		var body dto.SavedReplyBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewSavedRepliesUsecase()
		reply, err := usecase.CreateSavedReply(ctx, workspaceId, actorIdFromContext(ctx), dto.AdaptSavedReplyInput(body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"saved_reply": dto.AdaptSavedReplyDto(reply)})
	}
}

func handleUpdateSavedReply(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		replyId := c.Param("saved_reply_id")

		var body dto.SavedReplyBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewSavedRepliesUsecase()
		reply, err := usecase.UpdateSavedReply(ctx, workspaceId, actorIdFromContext(ctx), replyId,
			dto.AdaptSavedReplyInput(body))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"saved_reply": dto.AdaptSavedReplyDto(reply)})
	}
}

func handleDeleteSavedReply(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		replyId := c.Param("saved_reply_id")

		usecase := uc.NewSavedRepliesUsecase()
		err := usecase.DeleteSavedReply(ctx, workspaceId, actorIdFromContext(ctx), replyId)
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}
