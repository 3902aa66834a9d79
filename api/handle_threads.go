package api

import (
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/guregu/null/v5"

	"github.com/freelancehub/agency-inbox/dto"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/usecases"
	"github.com/freelancehub/agency-inbox/utils"
)

func handleGetThread(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		threadId := c.Param("thread_id")

		usecase := uc.NewInboxWorkspaceUsecase()
		thread, err := usecase.GetThread(ctx, workspaceId, threadId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"thread": dto.AdaptThreadDto(thread)})
	}
}

func handleCreateThread(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")

		var body dto.CreateThreadBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewThreadUsecase()
		thread, err := usecase.CreateThread(ctx, workspaceId, actorIdFromContext(ctx), dto.AdaptCreateThreadInput(body))
		if err != nil && thread.Id != "" {
			utils.LoggerFromContext(ctx).WarnContext(ctx, "thread created without its initial message",
				"thread_id", thread.Id, "error", err.Error())
			_, response := adaptError(err)
			c.JSON(http.StatusCreated, dto.CreateThreadResponse{
				Thread:              dto.AdaptThreadDto(thread),
				InitialMessageError: null.StringFrom(response.Message),
			})
			return
		}
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, dto.CreateThreadResponse{Thread: dto.AdaptThreadDto(thread)})
	}
}

func handlePostThreadMessage(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		threadId := c.Param("thread_id")

		var body dto.PostMessageBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewThreadUsecase()
		message, err := usecase.Reply(ctx, workspaceId, actorIdFromContext(ctx), threadId, body.Body)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": dto.AdaptThreadMessageDto(message)})
	}
}

func handleMarkThreadRead(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		threadId := c.Param("thread_id")

		usecase := uc.NewThreadUsecase()
		if err := usecase.MarkRead(ctx, workspaceId, actorIdFromContext(ctx), threadId); presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleSetThreadState(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		threadId := c.Param("thread_id")

		var body dto.ThreadStateBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewThreadUsecase()
		state := models.ThreadState(body.State)
		err := usecase.SetThreadState(ctx, workspaceId, actorIdFromContext(ctx), threadId, state)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.ThreadStateResponse{ThreadId: threadId, State: string(state)})
	}
}

// handleToggleThreadArchive toggles from the state the caller last saw. Without one in the body,
// the state of the thread in the current aggregate is used.
func handleToggleThreadArchive(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		threadId := c.Param("thread_id")

		var body dto.ToggleArchiveBody
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) && presentError(ctx, c, err) {
			return
		}

		thread := models.Thread{Id: threadId, State: models.ThreadState(body.State)}
		if body.State == "" {
			var err error
			thread, err = uc.NewInboxWorkspaceUsecase().GetThread(ctx, workspaceId, threadId)
			if presentError(ctx, c, err) {
				return
			}
		}

		usecase := uc.NewThreadUsecase()
		state, err := usecase.ToggleArchive(ctx, workspaceId, actorIdFromContext(ctx), thread)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.ThreadStateResponse{ThreadId: threadId, State: string(state)})
	}
}

func handleEscalateThread(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		threadId := c.Param("thread_id")

		var body dto.EscalateThreadBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewThreadUsecase()
		supportCase, err := usecase.Escalate(ctx, workspaceId, actorIdFromContext(ctx), threadId, body.Reason,
			models.ThreadPriority(body.Priority))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"support_case": dto.AdaptSupportCaseDto(supportCase)})
	}
}

func handleAssignThread(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workspaceId := c.Param("workspace_id")
		threadId := c.Param("thread_id")

		var body dto.AssignThreadBody
		if err := c.ShouldBindJSON(&body); presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewThreadUsecase()
		err := usecase.Assign(ctx, workspaceId, actorIdFromContext(ctx), threadId, body.AssigneeId, body.NotifyAgent)
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}
