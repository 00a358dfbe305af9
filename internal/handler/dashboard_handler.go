package handler

import (
	"net/http"

	"github.com/AcebergChristian/jushuitan-sub000/internal/middleware"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/service"
	"github.com/AcebergChristian/jushuitan-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	clock            Clock
}

func NewDashboardHandler(dashboardService service.DashboardService, clock Clock) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, clock: clock}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/dashboard", middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	{
		group.GET("/stats", h.GetStats)
		group.GET("/chart-data", h.GetChartData)
	}
}

// @Summary      Get Dashboard Statistics
// @Description  User, goods and store counts plus sales for the as-of day, week-to-date and month-to-date
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        as_of  query     string  false  "Reference day YYYY-MM-DD (default today)"
// @Success      200    {object}  response.Response{data=service.DashboardStats}
// @Failure      400    {object}  response.Response "Invalid date format"
// @Failure      401    {object}  response.Response "Unauthorized"
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	asOf, err := h.clock.Day("as_of", c.Query("as_of"))
	if err != nil {
		fail(c, err)
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), asOf)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// @Summary      Get Dashboard Chart Data
// @Description  Daily sales and order counts for the seven days ending on as_of
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        as_of  query     string  false  "Reference day YYYY-MM-DD (default today)"
// @Success      200    {object}  response.Response{data=[]service.ChartPoint}
// @Failure      400    {object}  response.Response "Invalid date format"
// @Router       /dashboard/chart-data [get]
func (h *DashboardHandler) GetChartData(c *gin.Context) {
	asOf, err := h.clock.Day("as_of", c.Query("as_of"))
	if err != nil {
		fail(c, err)
		return
	}

	points, err := h.dashboardService.ChartData(c.Request.Context(), asOf)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, points))
}
