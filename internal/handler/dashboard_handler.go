package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/running-records-go/internal/models"
	"github.com/jengzang/running-records-go/internal/service"
	"github.com/jengzang/running-records-go/pkg/response"
)

// DashboardHandler handles HTTP requests for the dashboard views
type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// load parses the query and builds the dashboard, writing the response on failure.
func (h *DashboardHandler) load(c *gin.Context, empty any) (*service.Dashboard, bool) {
	q, err := parseQuery(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}

	dashboard, err := h.dashboardService.Dashboard(c.Request.Context(), q)
	if err != nil {
		writeError(c, h.logger, err, empty)
		return nil, false
	}
	return dashboard, true
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, ok := h.load(c, service.Dashboard{
		Activities:  []models.ActivityRecord{},
		Monthly:     []models.MonthlyAggregate{},
		FastestPace: []models.ShoeFastestPace{},
		ShoeUsage:   []models.ShoeUsage{},
		RollingPace: []models.RollingPace{},
	})
	if !ok {
		return
	}
	response.Success(c, dashboard)
}

// GetActivities handles GET /api/v1/activities
func (h *DashboardHandler) GetActivities(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	records, err := h.dashboardService.Activities(c.Request.Context(), q)
	if err != nil {
		writeError(c, h.logger, err, []models.ActivityRecord{})
		return
	}
	response.Success(c, records)
}

// GetMonthly handles GET /api/v1/stats/monthly
func (h *DashboardHandler) GetMonthly(c *gin.Context) {
	if d, ok := h.load(c, []models.MonthlyAggregate{}); ok {
		response.Success(c, d.Monthly)
	}
}

// GetFastestPace handles GET /api/v1/stats/shoes/fastest-pace
func (h *DashboardHandler) GetFastestPace(c *gin.Context) {
	if d, ok := h.load(c, []models.ShoeFastestPace{}); ok {
		response.Success(c, d.FastestPace)
	}
}

// GetShoeUsage handles GET /api/v1/stats/shoes/usage
func (h *DashboardHandler) GetShoeUsage(c *gin.Context) {
	if d, ok := h.load(c, []models.ShoeUsage{}); ok {
		response.Success(c, d.ShoeUsage)
	}
}

// GetRollingPace handles GET /api/v1/stats/rolling-pace
func (h *DashboardHandler) GetRollingPace(c *gin.Context) {
	if d, ok := h.load(c, []models.RollingPace{}); ok {
		response.Success(c, d.RollingPace)
	}
}
