package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/freelancehub/agency-inbox/dto"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/pure_utils"
	"github.com/freelancehub/agency-inbox/repositories"
	"github.com/freelancehub/agency-inbox/utils"
)

// StatusClientClosedRequest is used when the caller went away before the response was written.
const StatusClientClosedRequest = 499

func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	status, response := adaptError(err)
	logger := utils.LoggerFromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError && status != http.StatusBadGateway:
		utils.LogAndReportSentryError(ctx, err)
	case status == http.StatusBadGateway:
		logger.WarnContext(ctx, fmt.Sprintf("collaborator error: %v", err))
	default:
		logger.InfoContext(ctx, fmt.Sprintf("%d error: %v", status, err))
	}

	c.JSON(status, response)
	return true
}

func adaptError(err error) (int, dto.APIErrorResponse) {
	var validationErrors validator.ValidationErrors
	var typeError *json.UnmarshalTypeError
	var fieldErrors models.FieldValidationError

	switch {
	case errors.As(err, &validationErrors):
		return http.StatusBadRequest, dto.APIErrorResponse{
			Message:   strings.Join(pure_utils.Map(validationErrors, adaptFieldValidationError), ", "),
			ErrorCode: dto.InvalidInput,
		}
	case errors.As(err, &typeError):
		message := fmt.Sprintf("expected type %s, got type %s", typeError.Type.String(), typeError.Value)
		if typeError.Field != "" {
			message = fmt.Sprintf("field `%s` expected type %s, got type %s",
				typeError.Field, typeError.Type.String(), typeError.Value)
		}
		return http.StatusBadRequest, dto.APIErrorResponse{Message: message, ErrorCode: dto.InvalidInput}
	case errors.As(err, &fieldErrors):
		return http.StatusBadRequest, dto.APIErrorResponse{Message: fieldErrors.Error(), ErrorCode: dto.InvalidInput}

	case models.IsCancellation(err):
		return StatusClientClosedRequest, dto.APIErrorResponse{Message: "request cancelled", ErrorCode: dto.Cancelled}

	case errors.Is(err, models.ErrUnresolvedActor):
		code := dto.UnresolvedActor
		if errors.Is(err, models.ErrInvalidAssignment) {
			code = dto.InvalidAssignment
		}
		return http.StatusUnauthorized, dto.APIErrorResponse{Message: models.ErrUnresolvedActor.Error(), ErrorCode: code}
	case errors.Is(err, models.ErrInvalidAssignment):
		return http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.InvalidAssignment}
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.InvalidInput}
	case errors.Is(err, io.EOF):
		return http.StatusBadRequest, dto.APIErrorResponse{Message: "request body is empty", ErrorCode: dto.InvalidInput}
	}

	// The collaborator message is passed through untouched, along with the status it maps to.
	if message, ok := repositories.CollaboratorMessage(err); ok {
		code := dto.WriteFailed
		if errors.Is(err, models.ErrFetchFailed) {
			code = dto.FetchFailed
		}
		return collaboratorStatus(err), dto.APIErrorResponse{Message: message, ErrorCode: code}
	}

	switch {
	case errors.Is(err, models.BadParameterError):
		return http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()}
	case errors.Is(err, models.UnAuthorizedError):
		return http.StatusUnauthorized, dto.APIErrorResponse{Message: err.Error()}
	case errors.Is(err, models.ForbiddenError):
		return http.StatusForbidden, dto.APIErrorResponse{Message: err.Error()}
	case errors.Is(err, models.NotFoundError):
		return http.StatusNotFound, dto.APIErrorResponse{Message: err.Error()}
	case errors.Is(err, models.ConflictError):
		return http.StatusConflict, dto.APIErrorResponse{Message: err.Error()}
	case errors.Is(err, models.ErrFetchFailed):
		return http.StatusBadGateway, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.FetchFailed}
	case errors.Is(err, models.ErrWriteFailed):
		return http.StatusBadGateway, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.WriteFailed}
	}

	return http.StatusInternalServerError, dto.APIErrorResponse{Message: "internal server error"}
}

// collaboratorStatus keeps the client error statuses of the collaborator service. Anything else
// is a failure of the upstream service.
func collaboratorStatus(err error) int {
	switch {
	case errors.Is(err, models.BadParameterError):
		return http.StatusBadRequest
	case errors.Is(err, models.ForbiddenError):
		return http.StatusForbidden
	case errors.Is(err, models.NotFoundError):
		return http.StatusNotFound
	case errors.Is(err, models.ConflictError):
		return http.StatusConflict
	}
	return http.StatusBadGateway
}
