package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/middleware"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/service"
	"github.com/AcebergChristian/jushuitan-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncService service.SyncService
	clock       Clock
}

func NewSyncHandler(syncService service.SyncService, clock Clock) *SyncHandler {
	return &SyncHandler{syncService: syncService, clock: clock}
}

func (h *SyncHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.RequireRole(model.RoleAdmin)
	router.POST("/sync_jushuitan_data", admin, h.SyncAll)
	router.POST("/sync_goods/", admin, h.SyncGoods)
}

// syncDay reads sync_date from the JSON body or the query string. A missing
// body is allowed.
func (h *SyncHandler) syncDay(c *gin.Context) (time.Time, error) {
	var req service.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return time.Time{}, errors.Join(service.ErrInvalidInput, err)
	}
	if req.SyncDate == "" {
		req.SyncDate = c.Query("sync_date")
	}
	return h.clock.Day("sync_date", req.SyncDate)
}

// SyncAll ingests one day of orders and rebuilds the day's goods and stores
// @Summary      Sync orders, goods and stores
// @Description  Pulls the day's orders from the order platform, stores them deduplicated and rebuilds goods and store aggregates. sync_date defaults to today.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SyncRequest  false  "Target day"
// @Success      200      {object}  response.Response{data=service.SyncResult}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response "Day is already syncing"
// @Failure      502      {object}  response.Response "Order platform unavailable"
// @Router       /sync_jushuitan_data [post]
func (h *SyncHandler) SyncAll(c *gin.Context) {
	day, err := h.syncDay(c)
	if err != nil {
		fail(c, err)
		return
	}
	result, err := h.syncService.SyncAll(c.Request.Context(), day)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessMessage(http.StatusOK, result.Message, result))
}

// SyncGoods rebuilds goods and store aggregates without storing orders
// @Summary      Sync goods and stores
// @Description  Rebuilds the day's goods and store aggregates from the order platform without ingesting orders
// @Tags         sync
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SyncRequest  false  "Target day"
// @Success      200      {object}  response.Response{data=service.SyncResult}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /sync_goods/ [post]
func (h *SyncHandler) SyncGoods(c *gin.Context) {
	day, err := h.syncDay(c)
	if err != nil {
		fail(c, err)
		return
	}
	result, err := h.syncService.SyncAggregates(c.Request.Context(), day)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessMessage(http.StatusOK, result.Message, result))
}
