package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/running-records-go/internal/export"
	"github.com/jengzang/running-records-go/internal/loader"
	"github.com/jengzang/running-records-go/internal/metrics"
	"github.com/jengzang/running-records-go/internal/service"
	"github.com/jengzang/running-records-go/pkg/response"
)

// ExportHandler serves cleaned records as downloadable tables
type ExportHandler struct {
	dashboardService *service.DashboardService
	logger           *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(dashboardService *service.DashboardService, logger *slog.Logger) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Export handles GET /api/v1/export/:format
// An empty selection still produces a file with only the header row.
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.Param("format")
	contentType, ext, err := export.ContentType(format)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	q, err := parseQuery(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	records, err := h.dashboardService.Activities(c.Request.Context(), q)
	if err != nil && !errors.Is(err, loader.ErrNoData) {
		writeError(c, h.logger, err, nil)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, ext, records); err != nil {
		h.logger.Error("export failed", slog.String("format", ext), slog.String("error", err.Error()))
		response.InternalError(c, "failed to encode export")
		return
	}

	metrics.IncExport(ext)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="activities.%s"`, ext))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
