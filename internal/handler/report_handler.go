package handler

import (
	"net/http"

	"github.com/AcebergChristian/jushuitan-sub000/internal/middleware"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/service"
	"github.com/AcebergChristian/jushuitan-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	storeService   service.StoreService
	summaryService service.SummaryService
	clock          Clock
}

func NewReportHandler(storeService service.StoreService, summaryService service.SummaryService, clock Clock) *ReportHandler {
	return &ReportHandler{storeService: storeService, summaryService: summaryService, clock: clock}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.RequireRole(model.RoleAdmin, model.RoleUser)
	router.GET("/stores_data/", auth, h.StoresData)
	router.GET("/user_goods_summary/", auth, h.UserGoodsSummary)
}

// StoresData lists visible store rows with a weighted summary
// @Summary      Store summary
// @Description  Store aggregates visible to the caller with ad spend and refunds joined. Summary rates are weighted by total sales.
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "First day (YYYY-MM-DD) of last order time"
// @Param        end_date    query     string  false  "Last day (YYYY-MM-DD) of last order time"
// @Success      200         {object}  response.SummaryResponse{data=[]model.StoreAggregate,summary=service.StoreSummary}
// @Failure      400         {object}  response.Response
// @Router       /stores_data/ [get]
func (h *ReportHandler) StoresData(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		unauthorized(c)
		return
	}
	window, err := h.clock.Window(c)
	if err != nil {
		fail(c, err)
		return
	}

	report, err := h.storeService.StoreSummary(c.Request.Context(), v, window)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.WithSummary(http.StatusOK, "ok", report.Rows, report.Summary))
}

// UserGoodsSummary rolls up each user's entitled goods
// @Summary      User goods summary
// @Description  Admins get one row per user, others only their own. Rates are the mean of per-goods rates.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "First day (YYYY-MM-DD) of order time"
// @Param        end_date    query     string  false  "Last day (YYYY-MM-DD) of order time"
// @Success      200         {object}  response.Response{data=[]service.UserGoodsSummary}
// @Failure      400         {object}  response.Response
// @Router       /user_goods_summary/ [get]
func (h *ReportHandler) UserGoodsSummary(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		unauthorized(c)
		return
	}
	window, err := h.clock.Window(c)
	if err != nil {
		fail(c, err)
		return
	}

	rows, err := h.summaryService.UserGoodsSummary(c.Request.Context(), v, window)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
