package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/running-records-go/internal/loader"
	"github.com/jengzang/running-records-go/internal/service"
	"github.com/jengzang/running-records-go/pkg/response"
)

// writeError maps load and query failures onto HTTP responses.
// ErrNoData is not a failure: the caller's empty payload is sent with 200.
func writeError(c *gin.Context, logger *slog.Logger, err error, empty any) {
	switch {
	case errors.Is(err, loader.ErrNoData):
		response.NoData(c, empty)
	case errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, err.Error())
	case errors.Is(err, loader.ErrInvalidSchema):
		logger.Warn("activity data rejected", slog.String("error", err.Error()))
		response.Unprocessable(c, err.Error())
	case loader.IsSourceUnavailable(err):
		logger.Error("activity store unavailable", slog.String("error", err.Error()))
		response.Unavailable(c, "activity store unavailable")
	default:
		logger.Error("request failed", slog.String("error", err.Error()))
		response.InternalError(c, err.Error())
	}
}
