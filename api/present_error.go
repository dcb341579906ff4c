package api

import (
	"context"
	"net/http"

	"github.com/momconnect/hub/dto"
	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/utils"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.UnAuthorizedError):
		c.JSON(http.StatusUnauthorized, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ConflictError):
		c.JSON(http.StatusConflict, dto.APIErrorResponse{Message: err.Error()})
	default:
		utils.LogAndReportSentryError(ctx, err)
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{Message: "internal error"})
	}
	return true
}
