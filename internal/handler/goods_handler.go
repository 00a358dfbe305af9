package handler

import (
	"errors"
	"net/http"

	"github.com/AcebergChristian/jushuitan-sub000/internal/middleware"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/service"
	"github.com/AcebergChristian/jushuitan-sub000/pkg/pagination"
	"github.com/AcebergChristian/jushuitan-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type GoodsHandler struct {
	goodsService service.GoodsService
}

func NewGoodsHandler(goodsService service.GoodsService) *GoodsHandler {
	return &GoodsHandler{goodsService: goodsService}
}

func (h *GoodsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/goods/", h.ListGoods)
	router.GET("/goods_dict/", h.GoodsDict)
	router.GET("/store_goods_detail/:store_id", middleware.RequireRole(model.RoleAdmin, model.RoleUser), h.StoreGoodsDetail)
}

// ListGoods returns goods rows with ad spend and refunds joined
// @Summary      List goods
// @Description  Paged goods aggregates, newest first, optionally filtered by name
// @Tags         goods
// @Produce      json
// @Param        skip    query     int     false  "Rows to skip (default 0)"
// @Param        limit   query     int     false  "Page size 1-100 (default 100)"
// @Param        search  query     string  false  "Goods name substring"
// @Success      200     {object}  response.PageResponse{data=[]model.GoodsAggregate}
// @Failure      400     {object}  response.Response
// @Router       /goods/ [get]
func (h *GoodsHandler) ListGoods(c *gin.Context) {
	params, err := pagination.ParseOffset(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	rows, total, err := h.goodsService.ListGoods(c.Request.Context(), c.Query("search"), params.Offset, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Page(http.StatusOK, rows, total, params.Offset, params.Limit))
}

// GoodsDict lists distinct goods for selectors
// @Summary      Goods dictionary
// @Tags         goods
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.GoodsDictEntry}
// @Router       /goods_dict/ [get]
func (h *GoodsHandler) GoodsDict(c *gin.Context) {
	dict, err := h.goodsService.GoodsDict(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, dict))
}

// StoreGoodsDetail groups one shop's goods rows by goods id
// @Summary      Store goods detail
// @Description  Goods of one shop grouped by goods id. Users without access to the shop get a 200 response with error=true and empty data.
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        store_id  path      string  true  "Store id, with or without the _YYYYMMDD suffix"
// @Success      200       {object}  response.Response{data=[]service.StoreGoodsRow}
// @Failure      400       {object}  response.Response
// @Router       /store_goods_detail/{store_id} [get]
func (h *GoodsHandler) StoreGoodsDetail(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		unauthorized(c)
		return
	}

	rows, err := h.goodsService.StoreGoodsDetail(c.Request.Context(), v, c.Param("store_id"))
	if errors.Is(err, service.ErrForbidden) {
		c.JSON(http.StatusOK, response.Denied(http.StatusOK, "no permission to view this store"))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
