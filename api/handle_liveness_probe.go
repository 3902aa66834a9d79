package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freelancehub/agency-inbox/dto"
	"github.com/freelancehub/agency-inbox/usecases"
	"github.com/freelancehub/agency-inbox/utils"
)

func handleLivenessProbe(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := uc.NewLivenessUsecase()
		err := usecase.Liveness(ctx)
		if err != nil {
			utils.LoggerFromContext(ctx).WarnContext(ctx, "collaborator service is unreachable", "error", err.Error())
			c.JSON(http.StatusServiceUnavailable, dto.AdaptLivenessStatus(err))
			return
		}

		c.JSON(http.StatusOK, dto.AdaptLivenessStatus(nil))
	}
}
