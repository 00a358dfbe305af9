package handler

import (
	"net/http"
	"strings"

	"github.com/AcebergChristian/jushuitan-sub000/internal/middleware"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/service"
	"github.com/AcebergChristian/jushuitan-sub000/pkg/pagination"
	"github.com/AcebergChristian/jushuitan-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/audit-logs")
	group.Use(middleware.RequireRole(model.RoleAdmin))
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs lists recorded sync runs and admin changes, newest first
// @Summary      Get audit logs
// @Description  Sync runs, user changes and satellite imports with the acting user
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        action  query     string  false  "Only entries with this action, e.g. SYNC_ORDERS"
// @Success      200     {object}  response.PageResponse{data=[]service.AuditLogResponse}
// @Router       /audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), strings.TrimSpace(c.Query("action")), params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Page(http.StatusOK, logs, total, params.Offset, params.Limit))
}
