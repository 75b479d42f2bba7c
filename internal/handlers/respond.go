package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	"github.com/vidverse/vidverse_backend/internal/dto"
	"github.com/vidverse/vidverse_backend/internal/middleware"
)

// respondSuccess writes the standard success envelope.
func respondSuccess(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, dto.NewAPIResponse(statusCode, data, message))
}

// respondError is the single boundary translator from domain errors to the
// error envelope. Internal errors are logged in full but never leak their
// detail to production clients.
func respondError(c *gin.Context, err error, isProduction bool) {
	statusCode := apperrors.StatusCode(err)

	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if statusCode >= http.StatusInternalServerError {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Request failed", slog.String("error", err.Error()))
		if isProduction {
			message = "Internal server error"
		}
	}

	c.JSON(statusCode, dto.NewAPIError(statusCode, message))
}
