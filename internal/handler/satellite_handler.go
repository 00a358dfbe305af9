package handler

import (
	"net/http"

	"github.com/AcebergChristian/jushuitan-sub000/internal/middleware"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/service"
	"github.com/AcebergChristian/jushuitan-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type SatelliteHandler struct {
	satelliteService service.SatelliteService
	auditService     service.AuditService
}

func NewSatelliteHandler(satelliteService service.SatelliteService, auditService service.AuditService) *SatelliteHandler {
	return &SatelliteHandler{satelliteService: satelliteService, auditService: auditService}
}

func (h *SatelliteHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.RequireRole(model.RoleAdmin)
	router.POST("/ad_spends", admin, h.ImportAdSpends)
	router.POST("/bill_records", admin, h.ImportBills)
}

// ImportAdSpends upserts advertising cost rows by ad id
// @Summary      Import ad spend
// @Tags         satellite
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      []service.AdSpendRequest  true  "Ad spend rows"
// @Success      200      {object}  response.Response{data=service.ImportResult}
// @Failure      400      {object}  response.Response
// @Router       /ad_spends [post]
func (h *SatelliteHandler) ImportAdSpends(c *gin.Context) {
	var reqs []service.AdSpendRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	res, err := h.satelliteService.ImportAdSpends(c.Request.Context(), reqs)
	if err != nil {
		fail(c, err)
		return
	}
	record(c, h.auditService, service.AuditEntry{Action: model.ActionImportAdSpend, Details: res})
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// ImportBills upserts settlement bill rows by bill id
// @Summary      Import bill records
// @Tags         satellite
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      []service.BillRecordRequest  true  "Bill rows"
// @Success      200      {object}  response.Response{data=service.ImportResult}
// @Failure      400      {object}  response.Response
// @Router       /bill_records [post]
func (h *SatelliteHandler) ImportBills(c *gin.Context) {
	var reqs []service.BillRecordRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	res, err := h.satelliteService.ImportBills(c.Request.Context(), reqs)
	if err != nil {
		fail(c, err)
		return
	}
	record(c, h.auditService, service.AuditEntry{Action: model.ActionImportBills, Details: res})
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
